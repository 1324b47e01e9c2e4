package booking

import (
	"context"
	"time"

	"github.com/barbera-app/barbera-api/internal/audit"
	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID   uint
	CustomerID uint
	ServiceID  uint

	AppointmentTime time.Time

	// PaymentRef is the Stripe payment-intent id (or free_<uuid>).
	// Booking is idempotent on it: a second call with the same reference
	// returns the stored appointment untouched.
	PaymentRef    string
	PaymentStatus string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	if in.PaymentRef == "" {
		return nil, httperr.ErrBusiness("missing_payment_ref")
	}

	// Replayed confirmation (webhook retry, verify after webhook, ...):
	// return what was stored the first time.
	existing, err := uc.repo.GetAppointmentByPaymentRef(ctx, in.PaymentRef)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	service, err := uc.repo.GetService(ctx, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	status := in.PaymentStatus
	if status == "" {
		status = string(domain.PaymentPaid)
	}

	ap := &models.Appointment{
		BarberID:        in.BarberID,
		CustomerID:      in.CustomerID,
		ServiceID:       in.ServiceID,
		AppointmentTime: in.AppointmentTime.UTC(),
		DurationMin:     service.DurationMin,
		Status:          string(domain.InitialStatus()),
		PaymentStatus:   status,
		PaymentRef:      in.PaymentRef,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		// Two confirmations raced past the pre-check; the unique index on
		// payment_ref decided, so hand back the winner's row.
		if httperr.IsBusiness(err, "duplicate_payment_ref") {
			stored, ferr := uc.repo.GetAppointmentByPaymentRef(ctx, in.PaymentRef)
			if ferr != nil {
				return nil, ferr
			}
			if stored != nil {
				return stored, nil
			}
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
