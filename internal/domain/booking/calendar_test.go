package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenWeekdays(t *testing.T) {
	entries := []DaySchedule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 2, StartTime: "00:00", EndTime: "00:00"}, // closed
		{DayOfWeek: 3, StartTime: "09:00:00", EndTime: "17:00:00"},
		{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"}, // out of range, ignored
	}

	open := OpenWeekdays(entries)
	assert.Equal(t, map[int]bool{1: true, 3: true}, open)
}

func TestDateSelectable(t *testing.T) {
	today := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // Monday
	open := map[int]bool{1: true, 3: true}

	assert.True(t, DateSelectable(today, today, open))
	assert.True(t, DateSelectable(today.AddDate(0, 0, 2), today, open)) // Wednesday

	assert.False(t, DateSelectable(today.AddDate(0, 0, -7), today, open)) // past Monday
	assert.False(t, DateSelectable(today.AddDate(0, 0, 1), today, open))  // Tuesday, no entry
}
