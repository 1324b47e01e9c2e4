package booking

import "time"

// OpenWeekdays collects the weekdays that have a non-closed schedule
// entry. Date-picker eligibility is driven by this set alone; the slot
// computation stays the authority on whether a day actually has room.
func OpenWeekdays(entries []DaySchedule) map[int]bool {
	open := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			continue
		}
		if !e.Closed() {
			open[e.DayOfWeek] = true
		}
	}
	return open
}

// DateSelectable reports whether date can be offered at all: today or
// later (dates strictly before today are never eligible) and a weekday
// the barber is open on. today must already be truncated to midnight in
// the barber's timezone.
func DateSelectable(date, today time.Time, open map[int]bool) bool {
	if date.Before(today) {
		return false
	}
	return open[int(date.Weekday())]
}
