package service

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// Bookable slot labels, keyed off day-of-week. Weekends run a short morning
// schedule; weekdays run half-hour steps with a lunch gap.
var (
	weekendSlots = []string{"10:00 AM", "11:00 AM"}
	weekdaySlots = []string{
		"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM",
		"11:00 AM", "11:30 AM", "01:00 PM", "01:30 PM",
		"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
		"04:00 PM",
	}
)

var slotLabelPattern = regexp.MustCompile(`^(0[1-9]|1[0-2]):([0-5][0-9]) (AM|PM)$`)

// AvailabilityEngine computes bookable time slots for a calendar date and
// resolves a (date, slot label) pair into a single instant. SlotsFor is a pure
// function of the date relative to the engine's clock.
type AvailabilityEngine struct {
	now func() time.Time
}

// NewAvailabilityEngine returns an engine using the given clock. A nil clock
// defaults to time.Now.
func NewAvailabilityEngine(now func() time.Time) *AvailabilityEngine {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityEngine{now: now}
}

// SlotsFor returns the ordered slot labels bookable on date. Dates strictly
// before today yield nil.
func (e *AvailabilityEngine) SlotsFor(date time.Time) []string {
	today := truncateToDay(e.now())
	if truncateToDay(date).Before(today) {
		return nil
	}

	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return append([]string(nil), weekendSlots...)
	default:
		return append([]string(nil), weekdaySlots...)
	}
}

// ResolveInstant combines a calendar date with a 12-hour clock label into one
// instant, zeroing seconds and sub-second precision. 12:xx AM maps to hour 0,
// 12:xx PM stays hour 12, any other PM hour adds 12.
func (e *AvailabilityEngine) ResolveInstant(date time.Time, slotLabel string) (time.Time, error) {
	m := slotLabelPattern.FindStringSubmatch(slotLabel)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidSlotLabel, slotLabel)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	switch m[3] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
