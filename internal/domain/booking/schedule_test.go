package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:00", NormalizeClock("09:00:00"))
	assert.Equal(t, "09:00", NormalizeClock("09:00"))
	assert.Equal(t, "23:55", NormalizeClock("23:55:30"))
	assert.Equal(t, "", NormalizeClock(""))
}

func TestDaySchedule_Closed(t *testing.T) {
	assert.True(t, DaySchedule{StartTime: "00:00", EndTime: "00:00"}.Closed())
	assert.True(t, DaySchedule{StartTime: "00:00:00", EndTime: "00:00:00"}.Closed())

	assert.False(t, DaySchedule{StartTime: "00:00", EndTime: "17:00"}.Closed())
	assert.False(t, DaySchedule{StartTime: "09:00", EndTime: "09:00"}.Closed())
}

func TestDaySchedule_WindowUsesDateLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, 3, 9, 0, 0, 0, 0, ny)
	d := DaySchedule{StartTime: "09:00", EndTime: "17:00"}

	start, end, err := d.Window(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, ny), start)
	assert.Equal(t, time.Date(2026, 3, 9, 17, 0, 0, 0, ny), end)
	assert.Equal(t, ny, start.Location())
}

func TestDaySchedule_WindowRejectsGarbage(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, _, err := DaySchedule{StartTime: "soon", EndTime: "17:00"}.Window(date)
	assert.Error(t, err)

	_, _, err = DaySchedule{StartTime: "09:00", EndTime: "late"}.Window(date)
	assert.Error(t, err)
}
