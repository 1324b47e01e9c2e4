package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
)

func stateFixture(status string) *fakeRepo {
	repo := availabilityFixture()
	repo.profiles[2] = &models.Profile{ID: 2, Username: "alice", Role: models.RoleCustomer, Timezone: "UTC"}
	repo.appointments = []models.Appointment{
		{
			ID:              5,
			BarberID:        1,
			CustomerID:      2,
			AppointmentTime: futureMonday.Add(10 * time.Hour),
			DurationMin:     30,
			Status:          status,
		},
	}
	return repo
}

func TestCancelAppointment_AsBarber(t *testing.T) {
	repo := stateFixture("scheduled")
	uc := NewCancelAppointment(repo, nil)

	ap, err := uc.ExecuteAsBarber(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", ap.Status)
	require.NotNil(t, ap.CancelledAt)
	require.Len(t, repo.updated, 1)
}

func TestCancelAppointment_AsCustomer(t *testing.T) {
	repo := stateFixture("scheduled")
	uc := NewCancelAppointment(repo, nil)

	ap, err := uc.ExecuteAsCustomer(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
}

func TestCancelAppointment_WrongOwner(t *testing.T) {
	repo := stateFixture("scheduled")
	uc := NewCancelAppointment(repo, nil)

	_, err := uc.ExecuteAsBarber(context.Background(), 99, 5)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = uc.ExecuteAsCustomer(context.Background(), 99, 5)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCancelAppointment_AlreadyCancelled(t *testing.T) {
	repo := stateFixture("cancelled")
	uc := NewCancelAppointment(repo, nil)

	_, err := uc.ExecuteAsBarber(context.Background(), 1, 5)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Empty(t, repo.updated)
}

func TestCompleteAppointment(t *testing.T) {
	repo := stateFixture("scheduled")
	uc := NewCompleteAppointment(repo, nil)

	ap, err := uc.Execute(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCompleteAppointment_Cancelled(t *testing.T) {
	repo := stateFixture("cancelled")
	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 5)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
