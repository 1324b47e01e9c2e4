package booking

import (
	"context"
	"time"

	"github.com/barbera-app/barbera-api/internal/models"
)

// Repository is the read/write contract the booking use cases depend on.
// Handed in at construction time (never reached through package state) so
// tests can substitute fakes.
type Repository interface {
	// -------- Profile --------
	GetProfileByID(
		ctx context.Context,
		id uint,
	) (*models.Profile, error)

	GetBarberByUsername(
		ctx context.Context,
		username string,
	) (*models.Profile, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barberID uint,
		serviceID uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
		barberID uint,
	) ([]models.Service, error)

	// -------- Weekly schedule --------
	ListScheduleForWeekday(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WeeklyAvailability, error)

	ListSchedule(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklyAvailability, error)

	// -------- Appointment (create / idempotency) --------
	GetAppointmentByPaymentRef(
		ctx context.Context,
		paymentRef string,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentForCustomer(
		ctx context.Context,
		appointmentID uint,
		customerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)
}
