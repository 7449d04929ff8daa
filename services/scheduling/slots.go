package scheduling

import (
	"time"

	"salonbook/models"
)

// SlotQuery is the input to ComputeSlots.
type SlotQuery struct {
	Professional    models.Professional
	Date            time.Time // any instant on the requested day
	DurationMinutes int
	// Appointments may hold any appointments; only the professional's ones
	// on Date are considered.
	Appointments []models.Appointment
	Salon        models.SalonSettings
	Now          time.Time
	// ClientFacing hides everything except fully free blocks inside working
	// hours, and hides the whole day when it is not a working day. Admin
	// queries see every block with flags instead.
	ClientFacing bool
}

// WorkingWindow returns the professional's working minutes, falling back to
// the salon hours for whichever bound is unset. ok is false when neither is
// configured.
func WorkingWindow(pro models.Professional, salon models.SalonSettings) (openMin, closeMin int, ok bool) {
	openStr, closeStr := salon.OpenTime, salon.CloseTime
	if pro.StartTime != "" {
		openStr = pro.StartTime
	}
	if pro.EndTime != "" {
		closeStr = pro.EndTime
	}
	var err error
	if openMin, err = models.ParseClock(openStr); err != nil {
		return 0, 0, false
	}
	if closeMin, err = models.ParseClock(closeStr); err != nil {
		return 0, 0, false
	}
	return openMin, closeMin, openMin < closeMin
}

// WorksOn reports whether weekday falls on the professional's working days,
// or the salon's when the professional has none configured.
func WorksOn(pro models.Professional, salon models.SalonSettings, weekday time.Weekday) bool {
	days := pro.WorkingDays
	if len(days) == 0 {
		days = salon.WorkingDays
	}
	for _, d := range days {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// BookedSlots collects the slot labels occupied by professionalID on date.
func BookedSlots(appointments []models.Appointment, professionalID, date string) map[string]bool {
	booked := make(map[string]bool)
	for _, a := range appointments {
		if a.Professional.ID != professionalID || a.Date != date {
			continue
		}
		for _, s := range a.Slots() {
			booked[s] = true
		}
	}
	return booked
}

// ComputeSlots returns one block per candidate start slot, in day order.
// A block is fully free when every slot it needs exists before midnight,
// none is booked, and, on the current day, none has already started.
func ComputeSlots(q SlotQuery) []models.SlotBlock {
	day := models.DayOf(q.Date)
	if q.ClientFacing && !WorksOn(q.Professional, q.Salon, day.Weekday()) {
		return nil
	}

	dateStr := day.Format(models.DateLayout)
	booked := BookedSlots(q.Appointments, q.Professional.ID, dateStr)
	needed := models.SlotsNeeded(q.DurationMinutes)
	openMin, closeMin, hasHours := WorkingWindow(q.Professional, q.Salon)

	sameDay := !q.Now.IsZero() && q.Now.In(day.Location()).Format(models.DateLayout) == dateStr
	isPast := func(i int) bool {
		if !sameDay {
			return false
		}
		// Wall-clock start, so DST-change days keep labels aligned.
		m := i * models.SlotMinutes
		start := time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, day.Location())
		return start.Before(q.Now)
	}

	blocks := make([]models.SlotBlock, 0, models.SlotsPerDay)
	for i := 0; i < models.SlotsPerDay; i++ {
		block := models.SlotBlock{StartSlot: models.SlotLabel(i), IsFullyFree: true}

		// No wraparound past midnight.
		if i+needed > models.SlotsPerDay {
			block.IsFullyFree = false
		}
		for j := i; j < i+needed && j < models.SlotsPerDay; j++ {
			label := models.SlotLabel(j)
			block.OccupiedSlots = append(block.OccupiedSlots, label)
			if booked[label] || isPast(j) {
				block.IsFullyFree = false
			}
		}

		startMin := i * models.SlotMinutes
		endMin := (i + needed) * models.SlotMinutes
		if !hasHours || startMin < openMin || endMin > closeMin {
			block.OutsideWorkingHours = true
		}

		if q.ClientFacing && (!block.IsFullyFree || block.OutsideWorkingHours) {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Available keeps only fully free blocks.
func Available(blocks []models.SlotBlock) []models.SlotBlock {
	var out []models.SlotBlock
	for _, b := range blocks {
		if b.IsFullyFree {
			out = append(out, b)
		}
	}
	return out
}

// FindBlock returns the block starting at start.
func FindBlock(blocks []models.SlotBlock, start string) (models.SlotBlock, bool) {
	for _, b := range blocks {
		if b.StartSlot == start {
			return b, true
		}
	}
	return models.SlotBlock{}, false
}
