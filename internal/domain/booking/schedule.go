package booking

import (
	"fmt"
	"time"
)

// closedClock marks a day as closed when both ends of the window carry it.
const closedClock = "00:00"

type DaySchedule struct {
	DayOfWeek int
	StartTime string // HH:MM, barber wall-clock
	EndTime   string
}

// NormalizeClock strips a trailing seconds component: "09:00:00" -> "09:00".
func NormalizeClock(clock string) string {
	if len(clock) == 8 {
		return clock[:5]
	}
	return clock
}

func (d DaySchedule) normalized() DaySchedule {
	d.StartTime = NormalizeClock(d.StartTime)
	d.EndTime = NormalizeClock(d.EndTime)
	return d
}

// Closed reports whether the entry encodes a closed day (00:00–00:00),
// which is distinct from a zero-length open window.
func (d DaySchedule) Closed() bool {
	n := d.normalized()
	return n.StartTime == closedClock && n.EndTime == closedClock
}

// Window anchors the wall-clock times onto the given calendar date. The
// date's location decides which absolute instants the schedule maps to.
func (d DaySchedule) Window(date time.Time) (start, end time.Time, err error) {
	n := d.normalized()

	start, err = atClock(date, n.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", d.StartTime, err)
	}
	end, err = atClock(date, n.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q: %w", d.EndTime, err)
	}
	return start, end, nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
