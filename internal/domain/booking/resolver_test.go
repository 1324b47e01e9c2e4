package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // a Monday

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func openDay(start, end string) *DaySchedule {
	return &DaySchedule{DayOfWeek: 1, StartTime: start, EndTime: end}
}

func TestResolveSlots_FullOpenDay(t *testing.T) {
	slots, reason, err := ResolveSlots(testDate, 30*time.Minute, openDay("09:00", "17:00"), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNone, reason)

	// 09:00 through 16:30 in 5-minute steps.
	require.Len(t, slots, 91)
	assert.Equal(t, at(9, 0), slots[0])
	assert.Equal(t, at(9, 5), slots[1])
	assert.Equal(t, at(16, 30), slots[len(slots)-1])
}

func TestResolveSlots_LastSlotEndsExactlyAtClose(t *testing.T) {
	slots, reason, err := ResolveSlots(testDate, 60*time.Minute, openDay("09:00", "10:00"), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNone, reason)
	require.Len(t, slots, 1)
	assert.Equal(t, at(9, 0), slots[0])
}

func TestResolveSlots_BlockedIntervalRemovesOverlaps(t *testing.T) {
	blocked := []Blocked{{Start: at(10, 0), End: at(10, 30)}}

	slots, reason, err := ResolveSlots(testDate, 30*time.Minute, openDay("09:00", "17:00"), blocked)
	require.NoError(t, err)
	assert.Equal(t, ReasonNone, reason)

	assert.Contains(t, slots, at(9, 30))  // ends exactly when the block starts
	assert.Contains(t, slots, at(10, 30)) // starts exactly when the block ends
	for _, s := range slots {
		assert.False(t, s.After(at(9, 30)) && s.Before(at(10, 30)),
			"slot %s overlaps the blocked interval", s.Format("15:04"))
	}
}

func TestResolveSlots_FullyBookedDay(t *testing.T) {
	blocked := []Blocked{{Start: at(9, 0), End: at(12, 0)}}

	slots, reason, err := ResolveSlots(testDate, 30*time.Minute, openDay("09:00", "12:00"), blocked)
	require.NoError(t, err)
	assert.Equal(t, ReasonNoSlots, reason)
	assert.Empty(t, slots)
}

func TestResolveSlots_NoScheduleEntry(t *testing.T) {
	slots, reason, err := ResolveSlots(testDate, 30*time.Minute, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNotSet, reason)
	assert.Empty(t, slots)
}

func TestResolveSlots_ClosedDay(t *testing.T) {
	slots, reason, err := ResolveSlots(testDate, 30*time.Minute, openDay("00:00", "00:00"), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, reason)
	assert.Empty(t, slots)
}

func TestResolveSlots_ClosedDayWithSeconds(t *testing.T) {
	_, reason, err := ResolveSlots(testDate, 30*time.Minute, openDay("00:00:00", "00:00:00"), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonClosed, reason)
}

func TestResolveSlots_MisorderedWindow(t *testing.T) {
	slots, reason, err := ResolveSlots(testDate, 30*time.Minute, openDay("17:00", "09:00"), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNoSlots, reason)
	assert.Empty(t, slots)
}

func TestResolveSlots_DurationLongerThanWindow(t *testing.T) {
	slots, reason, err := ResolveSlots(testDate, 90*time.Minute, openDay("09:00", "10:00"), nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonNoSlots, reason)
	assert.Empty(t, slots)
}

func TestResolveSlots_InvalidDuration(t *testing.T) {
	_, _, err := ResolveSlots(testDate, 0, openDay("09:00", "17:00"), nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, _, err = ResolveSlots(testDate, -5*time.Minute, openDay("09:00", "17:00"), nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestResolveSlots_MalformedClock(t *testing.T) {
	_, _, err := ResolveSlots(testDate, 30*time.Minute, openDay("nine", "17:00"), nil)
	assert.Error(t, err)
}

func TestBlocked_Overlaps(t *testing.T) {
	b := Blocked{Start: at(10, 0), End: at(10, 30)}

	assert.True(t, b.Overlaps(at(10, 0), at(10, 30)))
	assert.True(t, b.Overlaps(at(9, 45), at(10, 15)))
	assert.True(t, b.Overlaps(at(10, 15), at(10, 45)))
	assert.True(t, b.Overlaps(at(9, 0), at(12, 0)))

	// Back-to-back bookings touch without conflicting.
	assert.False(t, b.Overlaps(at(9, 30), at(10, 0)))
	assert.False(t, b.Overlaps(at(10, 30), at(11, 0)))
}

func TestReason_Message(t *testing.T) {
	assert.Equal(t, "Barber has not set availability for this day.", ReasonNotSet.Message())
	assert.Equal(t, "Barber is closed on this day.", ReasonClosed.Message())
	assert.Equal(t, "No available slots for this day.", ReasonNoSlots.Message())
	assert.Equal(t, "", ReasonNone.Message())
}
