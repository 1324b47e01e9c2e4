package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
)

type fakeScheduleRepo struct {
	stored     []models.WeeklyAvailability
	replaceErr error
	replaced   int
}

func (f *fakeScheduleRepo) ListSchedule(_ context.Context, barberID uint) ([]models.WeeklyAvailability, error) {
	var out []models.WeeklyAvailability
	for _, e := range f.stored {
		if e.BarberID == barberID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ReplaceSchedule(_ context.Context, barberID uint, entries []models.WeeklyAvailability) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced++
	f.stored = entries
	return nil
}

func TestReplaceWeeklySchedule_StoresNormalizedEntries(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := NewReplaceWeeklySchedule(repo, nil, nil)

	entries, err := uc.Execute(context.Background(), 1, []DayInput{
		{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "17:00:00"},
		{DayOfWeek: 2, StartTime: "00:00", EndTime: "00:00"}, // closed day is valid
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "09:00", entries[0].StartTime)
	assert.Equal(t, "17:00", entries[0].EndTime)
	assert.Equal(t, uint(1), entries[0].BarberID)
	assert.Equal(t, 1, repo.replaced)
}

func TestReplaceWeeklySchedule_EmptySetClearsWeek(t *testing.T) {
	repo := &fakeScheduleRepo{stored: []models.WeeklyAvailability{{BarberID: 1, DayOfWeek: 1}}}
	uc := NewReplaceWeeklySchedule(repo, nil, nil)

	entries, err := uc.Execute(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, repo.stored)
}

func TestReplaceWeeklySchedule_Validation(t *testing.T) {
	uc := NewReplaceWeeklySchedule(&fakeScheduleRepo{}, nil, nil)
	ctx := context.Background()

	open := func(day int) DayInput {
		return DayInput{DayOfWeek: day, StartTime: "09:00", EndTime: "17:00"}
	}

	_, err := uc.Execute(ctx, 1, []DayInput{
		open(0), open(1), open(2), open(3), open(4), open(5), open(6),
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
	})
	assert.True(t, httperr.IsBusiness(err, "too_many_days"))

	_, err = uc.Execute(ctx, 1, []DayInput{{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_weekday"))

	_, err = uc.Execute(ctx, 1, []DayInput{open(1), open(1)})
	assert.True(t, httperr.IsBusiness(err, "duplicate_weekday"))

	_, err = uc.Execute(ctx, 1, []DayInput{{DayOfWeek: 1, StartTime: "late", EndTime: "17:00"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	_, err = uc.Execute(ctx, 1, []DayInput{{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}})
	assert.True(t, httperr.IsBusiness(err, "start_after_end"))

	_, err = uc.Execute(ctx, 1, []DayInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}})
	assert.True(t, httperr.IsBusiness(err, "start_after_end"), "zero-length open window is rejected")
}

func TestReplaceWeeklySchedule_StoreFailure(t *testing.T) {
	repo := &fakeScheduleRepo{replaceErr: errors.New("connection refused")}
	uc := NewReplaceWeeklySchedule(repo, nil, nil)

	_, err := uc.Execute(context.Background(), 1, []DayInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
	})
	assert.Error(t, err)
}

func TestGetWeeklySchedule(t *testing.T) {
	repo := &fakeScheduleRepo{stored: []models.WeeklyAvailability{
		{BarberID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{BarberID: 2, DayOfWeek: 3, StartTime: "10:00", EndTime: "16:00"},
	}}
	uc := NewGetWeeklySchedule(repo)

	entries, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].DayOfWeek)
}
