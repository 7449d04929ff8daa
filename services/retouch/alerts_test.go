package retouch

import (
	"testing"
	"time"
	_ "time/tzdata"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func visit(client, service, date string, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{ClientID: client, Service: models.Service{ID: service}, Date: date, Status: status}
}

func fixture() ([]models.Client, []models.Service) {
	clients := []models.Client{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bruna"},
		{ID: "c", Name: "Carla"},
	}
	services := []models.Service{
		{ID: "micro", Name: "Microblading", RetouchPeriod: 6},
		{ID: "lash", Name: "Lashes", RetouchPeriod: 1},
		{ID: "brow", Name: "Brows", RetouchPeriod: 2},
		{ID: "cut", Name: "Cut"},
	}
	return clients, services
}

func TestPriorityScore(t *testing.T) {
	assert.Equal(t, 2, PriorityScore(2))
	assert.Equal(t, -100, PriorityScore(0))
	assert.Equal(t, -105, PriorityScore(-5))
	assert.Less(t, PriorityScore(-5), PriorityScore(2), "overdue sorts before due soon")
}

func TestDaysUntil(t *testing.T) {
	due := time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, DaysUntil(due, today))
	assert.Equal(t, 0, DaysUntil(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, -3, DaysUntil(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), today))
}

func TestDaysUntilAcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks fall back on 2026-11-01.
	due := time.Date(2026, 11, 5, 0, 0, 0, 0, ny)
	assert.Equal(t, 16, DaysUntil(due, time.Date(2026, 10, 20, 9, 0, 0, 0, ny)))
	assert.Equal(t, 15, DaysUntil(due, time.Date(2026, 10, 21, 23, 30, 0, 0, ny)))

	clients, services := fixture()
	appts := []models.Appointment{visit("a", "lash", "2026-10-05", models.StatusCompleted)}
	alerts := Compute(clients, appts, services, time.Date(2026, 10, 21, 9, 0, 0, 0, ny), DefaultThreshold)
	require.Len(t, alerts, 1)
	assert.Equal(t, 15, alerts[0].DaysUntilDue)
}

func TestComputeSixMonthRetouchIsDueToday(t *testing.T) {
	clients, services := fixture()
	appts := []models.Appointment{visit("a", "micro", "2026-04-19", models.StatusCompleted)}

	alerts := Compute(clients, appts, services, today, 0)
	require.Len(t, alerts, 1)
	assert.Equal(t, 0, alerts[0].DaysUntilDue)
	assert.True(t, alerts[0].Overdue)
	assert.Equal(t, "2026-04-19", alerts[0].LastVisit)
	assert.Equal(t, "Microblading", alerts[0].ServiceName)
}

func TestComputeOrdersOverdueFirst(t *testing.T) {
	clients, services := fixture()
	appts := []models.Appointment{
		visit("a", "micro", "2026-04-19", models.StatusCompleted), // due today
		visit("b", "lash", "2026-09-25", models.StatusCompleted),  // due in 6 days
		visit("c", "brow", "2026-08-14", models.StatusCompleted),  // 5 days overdue
		visit("c", "micro", "2026-10-01", models.StatusCompleted), // far away
		visit("b", "cut", "2026-01-01", models.StatusCompleted),   // not tracked
	}

	alerts := Compute(clients, appts, services, today, DefaultThreshold)
	var got []string
	for _, a := range alerts {
		got = append(got, a.ClientID+"/"+a.ServiceID)
	}
	assert.Equal(t, []string{"c/brow", "a/micro", "b/lash"}, got)
	assert.Equal(t, -105, alerts[0].PriorityScore)
}

func TestComputeUsesLatestCompletedVisit(t *testing.T) {
	clients, services := fixture()
	appts := []models.Appointment{
		visit("b", "lash", "2026-08-01", models.StatusCompleted),
		visit("b", "lash", "2026-10-10", models.StatusCompleted),
		visit("b", "lash", "2026-10-18", models.StatusScheduled),
		visit("b", "lash", "2026-10-18", models.StatusCanceled),
	}
	alerts := Compute(clients, appts, services, today, 30)
	require.Len(t, alerts, 1)
	assert.Equal(t, "2026-10-10", alerts[0].LastVisit)
	assert.Equal(t, 21, alerts[0].DaysUntilDue)

	assert.Empty(t, Compute(clients, appts, services, today, DefaultThreshold))
}

func TestBestPerClient(t *testing.T) {
	clients, services := fixture()
	appts := []models.Appointment{
		visit("c", "lash", "2026-09-25", models.StatusCompleted),
		visit("c", "brow", "2026-08-14", models.StatusCompleted),
		visit("a", "lash", "2026-09-28", models.StatusCompleted),
	}
	best := BestPerClient(Compute(clients, appts, services, today, DefaultThreshold))
	require.Len(t, best, 2)
	assert.Equal(t, "c", best[0].ClientID)
	assert.Equal(t, "brow", best[0].ServiceID)
	assert.Equal(t, "a", best[1].ClientID)
}
