package retouch

import (
	"sort"
	"time"

	"salonbook/models"
)

// DefaultThreshold is how many days ahead of the due date an alert fires.
const DefaultThreshold = 15

// overdueOffset pushes every overdue alert ahead of every upcoming one in
// the ascending priority sort.
const overdueOffset = 100

// PriorityScore orders alerts: overdue ones (daysUntilDue <= 0) score
// daysUntilDue-100, upcoming ones score daysUntilDue. Lower sorts first.
func PriorityScore(daysUntilDue int) int {
	if daysUntilDue <= 0 {
		return daysUntilDue - overdueOffset
	}
	return daysUntilDue
}

// DaysUntil counts calendar days from today to due. Both dates are rebuilt
// at UTC midnight so a DST shift in between cannot add or drop a day. A due
// instant past midnight counts as the next day.
func DaysUntil(due, today time.Time) int {
	dueDay := utcDay(due)
	if !due.Equal(models.DayOf(due)) {
		dueDay = dueDay.AddDate(0, 0, 1)
	}
	return int(dueDay.Sub(utcDay(today)).Hours() / 24)
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Compute returns an alert for every (client, retouch-tracked service) whose
// last completed appointment puts the next visit within threshold days,
// sorted by PriorityScore.
func Compute(clients []models.Client, appointments []models.Appointment, services []models.Service, today time.Time, threshold int) []models.RetouchAlert {
	loc := today.Location()

	tracked := make(map[string]models.Service)
	for _, s := range services {
		if s.RetouchPeriod > 0 {
			tracked[s.ID] = s
		}
	}
	if len(tracked) == 0 {
		return nil
	}

	// latest completed visit per client and service
	type key struct{ client, service string }
	last := make(map[key]time.Time)
	for _, a := range appointments {
		if a.Status != models.StatusCompleted {
			continue
		}
		if _, ok := tracked[a.Service.ID]; !ok {
			continue
		}
		d, err := models.ParseDate(a.Date, loc)
		if err != nil {
			continue
		}
		k := key{a.ClientID, a.Service.ID}
		if prev, ok := last[k]; !ok || d.After(prev) {
			last[k] = d
		}
	}

	var alerts []models.RetouchAlert
	for _, c := range clients {
		for id, s := range tracked {
			lastVisit, ok := last[key{c.ID, id}]
			if !ok {
				continue
			}
			due := lastVisit.AddDate(0, s.RetouchPeriod, 0)
			days := DaysUntil(due, today)
			if days > threshold {
				continue
			}
			alerts = append(alerts, models.RetouchAlert{
				ClientID:      c.ID,
				ClientName:    c.Name,
				ServiceID:     s.ID,
				ServiceName:   s.Name,
				LastVisit:     lastVisit.Format(models.DateLayout),
				DueDate:       due,
				DaysUntilDue:  days,
				Overdue:       days <= 0,
				PriorityScore: PriorityScore(days),
			})
		}
	}
	sortAlerts(alerts)
	return alerts
}

// BestPerClient keeps the lowest-scoring alert of each client.
func BestPerClient(alerts []models.RetouchAlert) []models.RetouchAlert {
	best := make(map[string]models.RetouchAlert)
	for _, a := range alerts {
		if cur, ok := best[a.ClientID]; !ok || a.PriorityScore < cur.PriorityScore {
			best[a.ClientID] = a
		}
	}
	out := make([]models.RetouchAlert, 0, len(best))
	for _, a := range best {
		out = append(out, a)
	}
	sortAlerts(out)
	return out
}

func sortAlerts(alerts []models.RetouchAlert) {
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].PriorityScore != alerts[j].PriorityScore {
			return alerts[i].PriorityScore < alerts[j].PriorityScore
		}
		if alerts[i].ClientName != alerts[j].ClientName {
			return alerts[i].ClientName < alerts[j].ClientName
		}
		return alerts[i].ServiceName < alerts[j].ServiceName
	})
}
