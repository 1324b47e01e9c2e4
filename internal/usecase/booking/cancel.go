package booking

import (
	"context"

	"github.com/barbera-app/barbera-api/internal/audit"
	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ExecuteAsBarber cancels one of the barber's own appointments.
func (uc *CancelAppointment) ExecuteAsBarber(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return uc.cancel(ctx, ap, &barberID)
}

// ExecuteAsCustomer cancels a booking the customer made.
func (uc *CancelAppointment) ExecuteAsCustomer(
	ctx context.Context,
	customerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForCustomer(ctx, appointmentID, customerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return uc.cancel(ctx, ap, &customerID)
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	actorID *uint,
) (*models.Appointment, error) {

	barber, err := uc.repo.GetProfileByID(ctx, ap.BarberID)
	if err != nil {
		return nil, err
	}

	// Cancellation is a state change, never a delete: the row stays for
	// audit and the exclusion constraint frees the window by status.
	now := timezone.NowIn(barber.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
