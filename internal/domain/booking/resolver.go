package booking

import (
	"errors"
	"time"
)

// SlotStep is the fixed distance between candidate start times.
const SlotStep = 5 * time.Minute

// DefaultBlockDuration covers existing appointments whose service can no
// longer be resolved.
const DefaultBlockDuration = 30 * time.Minute

var ErrInvalidDuration = errors.New("service duration must be positive")

// Reason explains an empty slot list. It is a normal outcome of the
// computation, never an error: callers branch on it to tell the user why
// the day has nothing bookable.
type Reason string

const (
	ReasonNone    Reason = ""        // slots were produced
	ReasonNotSet  Reason = "not_set" // barber has no schedule row for this weekday
	ReasonClosed  Reason = "closed"  // schedule row present, marked closed
	ReasonNoSlots Reason = "no_slots"
)

func (r Reason) Message() string {
	switch r {
	case ReasonNotSet:
		return "Barber has not set availability for this day."
	case ReasonClosed:
		return "Barber is closed on this day."
	case ReasonNoSlots:
		return "No available slots for this day."
	}
	return ""
}

// Blocked is an occupied interval [Start, End) on the selected date.
type Blocked struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open semantics so back-to-back bookings touch
// without conflicting.
func (b Blocked) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// ResolveSlots computes the bookable start instants on date for a service
// of the given duration. schedule is the weekday's entry, nil when the
// barber never configured that day; blocked are the intervals already
// taken. The function is pure: no clock, no I/O, safe for concurrent use.
//
// Candidates start at the window open, advance in SlotStep increments and
// are kept while candidate+duration <= window close (a slot ending exactly
// at closing time is valid). A mis-ordered open window yields zero slots
// rather than an error: that is a schedule configuration problem, not a
// resolver failure.
func ResolveSlots(
	date time.Time,
	duration time.Duration,
	schedule *DaySchedule,
	blocked []Blocked,
) ([]time.Time, Reason, error) {

	if duration <= 0 {
		return nil, ReasonNone, ErrInvalidDuration
	}

	if schedule == nil {
		return nil, ReasonNotSet, nil
	}
	if schedule.Closed() {
		return nil, ReasonClosed, nil
	}

	windowStart, windowEnd, err := schedule.Window(date)
	if err != nil {
		return nil, ReasonNone, err
	}

	var slots []time.Time
	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(SlotStep) {
		if conflicts(cur, cur.Add(duration), blocked) {
			continue
		}
		slots = append(slots, cur)
	}

	if len(slots) == 0 {
		return nil, ReasonNoSlots, nil
	}
	return slots, ReasonNone, nil
}

func conflicts(start, end time.Time, blocked []Blocked) bool {
	for _, b := range blocked {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
