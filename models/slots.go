package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// SlotMinutes is the width of one bookable slot.
	SlotMinutes = 30
	// SlotsPerDay covers 00:00 through 23:30.
	SlotsPerDay = 24 * 60 / SlotMinutes

	DateLayout    = "2006-01-02"
	slotSeparator = " / "
)

// SlotBlock describes a contiguous run of slots starting at StartSlot long
// enough to cover a service.
type SlotBlock struct {
	StartSlot           string   `json:"startSlot"`
	OccupiedSlots       []string `json:"occupiedSlots"`
	IsFullyFree         bool     `json:"isFullyFree"`
	OutsideWorkingHours bool     `json:"outsideWorkingHours,omitempty"`
}

// Time returns the value stored in Appointment.Time for this block.
func (b SlotBlock) Time() string {
	return JoinSlots(b.OccupiedSlots)
}

// SlotsNeeded is ceil(minutes / 30); non-positive durations take one slot.
func SlotsNeeded(minutes int) int {
	if minutes <= 0 {
		return 1
	}
	return (minutes + SlotMinutes - 1) / SlotMinutes
}

// SlotLabel formats slot index i as "HH:MM".
func SlotLabel(i int) string {
	m := i * SlotMinutes
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DayLabels returns every slot label of a day in order.
func DayLabels() []string {
	labels := make([]string, SlotsPerDay)
	for i := range labels {
		labels[i] = SlotLabel(i)
	}
	return labels
}

// ParseClock converts "HH:MM" to minutes past midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SlotIndex returns the index of a slot label, or -1 when the label is not a
// 30-minute boundary.
func SlotIndex(label string) int {
	m, err := ParseClock(label)
	if err != nil || m%SlotMinutes != 0 {
		return -1
	}
	return m / SlotMinutes
}

// SplitSlots splits an Appointment.Time value into its slot labels.
func SplitSlots(t string) []string {
	var out []string
	for _, part := range strings.Split(t, "/") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinSlots is the inverse of SplitSlots.
func JoinSlots(labels []string) string {
	return strings.Join(labels, slotSeparator)
}

// ParseDate parses a "YYYY-MM-DD" date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
