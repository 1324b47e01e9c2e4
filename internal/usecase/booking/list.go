package booking

import (
	"context"
	"time"

	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/timezone"
)

type AppointmentSummary struct {
	ID              uint      `json:"id"`
	AppointmentTime time.Time `json:"appointment_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CustomerName    string    `json:"customer_name,omitempty"`
	BarberName      string    `json:"barber_name,omitempty"`
	ServiceName     string    `json:"service_name"`
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lists the barber's appointments on one calendar day, resolved in
// the barber's timezone.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]AppointmentSummary, error) {

	barber, err := uc.repo.GetProfileByID(ctx, barberID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(barber.Timezone)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	return uc.listPeriod(ctx, barberID, start, end)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]AppointmentSummary, error) {

	barber, err := uc.repo.GetProfileByID(ctx, barberID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(barber.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.listPeriod(ctx, barberID, start, end)
}

// ForCustomer lists everything the customer has booked, newest first.
func (uc *ListAppointments) ForCustomer(
	ctx context.Context,
	customerID uint,
) ([]AppointmentSummary, error) {

	appointments, err := uc.repo.ListAppointmentsForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentSummary, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentSummary{
			ID:              ap.ID,
			AppointmentTime: ap.AppointmentTime,
			EndTime:         ap.EndTime(),
			Status:          ap.Status,
			PaymentStatus:   ap.PaymentStatus,
			BarberName:      ap.Barber.Username,
			ServiceName:     ap.Service.Name,
		})
	}

	return out, nil
}

func (uc *ListAppointments) listPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]AppointmentSummary, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentSummary, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentSummary{
			ID:              ap.ID,
			AppointmentTime: ap.AppointmentTime,
			EndTime:         ap.EndTime(),
			Status:          ap.Status,
			PaymentStatus:   ap.PaymentStatus,
			CustomerName:    ap.Customer.Username,
			ServiceName:     ap.Service.Name,
		})
	}

	return out, nil
}
