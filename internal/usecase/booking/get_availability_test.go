package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
)

// futureMonday is far enough out that the past-date guard never trips.
var futureMonday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func availabilityFixture() *fakeRepo {
	repo := newFakeRepo()
	repo.profiles[1] = &models.Profile{ID: 1, Username: "tony", Role: models.RoleBarber, Timezone: "UTC"}
	repo.services[10] = &models.Service{ID: 10, BarberID: 1, Name: "Haircut", DurationMin: 30, Active: true}
	repo.schedule = []models.WeeklyAvailability{
		{ID: 1, BarberID: 1, DayOfWeek: 1, StartTime: "09:00:00", EndTime: "17:00:00"},
	}
	return repo
}

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{BarberID: 1, ServiceID: 10, Date: futureMonday}
}

func TestGetAvailability_ProducesSlots(t *testing.T) {
	repo := availabilityFixture()
	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	assert.Equal(t, domain.ReasonNone, result.Reason)
	require.Len(t, result.Slots, 91)
	assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "09:30"}, result.Slots[0])
	assert.Equal(t, domain.TimeSlot{Start: "16:30", End: "17:00"}, result.Slots[len(result.Slots)-1])
}

func TestGetAvailability_BookedIntervalExcluded(t *testing.T) {
	repo := availabilityFixture()
	repo.appointments = []models.Appointment{
		{ID: 1, BarberID: 1, AppointmentTime: futureMonday.Add(10 * time.Hour), DurationMin: 30, Status: "scheduled"},
	}
	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	starts := make(map[string]bool, len(result.Slots))
	for _, s := range result.Slots {
		starts[s.Start] = true
	}

	assert.True(t, starts["09:30"], "slot ending at block start must stay")
	assert.True(t, starts["10:30"], "slot starting at block end must stay")
	assert.False(t, starts["09:35"])
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:25"])
}

func TestGetAvailability_UnknownDurationBlocksDefault(t *testing.T) {
	repo := availabilityFixture()
	repo.appointments = []models.Appointment{
		{ID: 1, BarberID: 1, AppointmentTime: futureMonday.Add(10 * time.Hour), DurationMin: 0, Status: "scheduled"},
	}
	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	starts := make(map[string]bool, len(result.Slots))
	for _, s := range result.Slots {
		starts[s.Start] = true
	}

	// Zero stored duration falls back to a 30-minute block.
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:25"])
	assert.True(t, starts["10:30"])
}

func TestGetAvailability_ReasonNotSet(t *testing.T) {
	repo := availabilityFixture()
	repo.schedule = nil
	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonNotSet, result.Reason)
	assert.Empty(t, result.Slots)
}

func TestGetAvailability_ReasonClosed(t *testing.T) {
	repo := availabilityFixture()
	repo.schedule = []models.WeeklyAvailability{
		{ID: 1, BarberID: 1, DayOfWeek: 1, StartTime: "00:00:00", EndTime: "00:00:00"},
	}
	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonClosed, result.Reason)
	assert.Empty(t, result.Slots)
}

func TestGetAvailability_DuplicateWeekdayRowsFirstWins(t *testing.T) {
	repo := availabilityFixture()
	repo.schedule = []models.WeeklyAvailability{
		{ID: 1, BarberID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: 2, BarberID: 1, DayOfWeek: 1, StartTime: "12:00", EndTime: "18:00"},
	}
	uc := NewGetAvailability(repo)

	result, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	require.NotEmpty(t, result.Slots)
	assert.Equal(t, "09:00", result.Slots[0].Start)
	assert.Equal(t, "09:30", result.Slots[len(result.Slots)-1].Start)
}

func TestGetAvailability_ScheduleFailureIsAnError(t *testing.T) {
	repo := availabilityFixture()
	repo.scheduleErr = errors.New("connection refused")
	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), availabilityInput())
	require.Error(t, err)

	// A store failure must never masquerade as an empty day.
	assert.ErrorContains(t, err, "loading weekly schedule")
	assert.False(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestGetAvailability_AppointmentFailureIsAnError(t *testing.T) {
	repo := availabilityFixture()
	repo.appointmentsErr = errors.New("connection refused")
	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), availabilityInput())
	require.Error(t, err)
	assert.ErrorContains(t, err, "loading appointments")
}

func TestGetAvailability_PastDate(t *testing.T) {
	repo := availabilityFixture()
	uc := NewGetAvailability(repo)

	in := availabilityInput()
	in.Date = time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))
}

func TestGetAvailability_UnknownService(t *testing.T) {
	repo := availabilityFixture()
	uc := NewGetAvailability(repo)

	in := availabilityInput()
	in.ServiceID = 99

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailability_ZeroDurationService(t *testing.T) {
	repo := availabilityFixture()
	repo.services[10].DurationMin = 0
	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), availabilityInput())
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))
}
