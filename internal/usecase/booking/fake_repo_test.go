package booking

import (
	"context"
	"errors"
	"time"

	"github.com/barbera-app/barbera-api/internal/models"
)

var (
	errProfileNotFound     = errors.New("profile not found")
	errServiceNotFound     = errors.New("service not found")
	errAppointmentNotFound = errors.New("appointment not found")
)

// fakeRepo is an in-memory stand-in for the gorm repository. Error fields
// force the corresponding call to fail; createFn overrides the default
// append behaviour when a test needs to simulate constraint violations.
type fakeRepo struct {
	profiles map[uint]*models.Profile
	services map[uint]*models.Service

	schedule    []models.WeeklyAvailability
	scheduleErr error

	appointments    []models.Appointment
	appointmentsErr error

	byRef    map[string]*models.Appointment
	byRefErr error

	created  []*models.Appointment
	createFn func(ap *models.Appointment) error

	updated []*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profiles: make(map[uint]*models.Profile),
		services: make(map[uint]*models.Service),
		byRef:    make(map[string]*models.Appointment),
	}
}

func (f *fakeRepo) GetProfileByID(_ context.Context, id uint) (*models.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, errProfileNotFound
}

func (f *fakeRepo) GetBarberByUsername(_ context.Context, username string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.Username == username && p.Role == models.RoleBarber {
			return p, nil
		}
	}
	return nil, errProfileNotFound
}

func (f *fakeRepo) GetService(_ context.Context, barberID, serviceID uint) (*models.Service, error) {
	if s, ok := f.services[serviceID]; ok && s.BarberID == barberID {
		return s, nil
	}
	return nil, errServiceNotFound
}

func (f *fakeRepo) ListServices(_ context.Context, barberID uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.BarberID == barberID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListScheduleForWeekday(_ context.Context, barberID uint, weekday int) ([]models.WeeklyAvailability, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	var out []models.WeeklyAvailability
	for _, e := range f.schedule {
		if e.BarberID == barberID && e.DayOfWeek == weekday {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListSchedule(_ context.Context, barberID uint) ([]models.WeeklyAvailability, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	var out []models.WeeklyAvailability
	for _, e := range f.schedule {
		if e.BarberID == barberID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointmentByPaymentRef(_ context.Context, paymentRef string) (*models.Appointment, error) {
	if f.byRefErr != nil {
		return nil, f.byRefErr
	}
	return f.byRef[paymentRef], nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.createFn != nil {
		return f.createFn(ap)
	}
	ap.ID = uint(len(f.created) + 1)
	f.created = append(f.created, ap)
	f.byRef[ap.PaymentRef] = ap
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	for i := range f.appointments {
		ap := &f.appointments[i]
		if ap.ID == appointmentID && ap.BarberID == barberID {
			return ap, nil
		}
	}
	return nil, errAppointmentNotFound
}

func (f *fakeRepo) GetAppointmentForCustomer(_ context.Context, appointmentID, customerID uint) (*models.Appointment, error) {
	for i := range f.appointments {
		ap := &f.appointments[i]
		if ap.ID == appointmentID && ap.CustomerID == customerID {
			return ap, nil
		}
	}
	return nil, errAppointmentNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.updated = append(f.updated, ap)
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	if f.appointmentsErr != nil {
		return nil, f.appointmentsErr
	}
	return f.inRange(barberID, start, end), nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	if f.appointmentsErr != nil {
		return nil, f.appointmentsErr
	}
	return f.inRange(barberID, start, end), nil
}

func (f *fakeRepo) ListAppointmentsForCustomer(_ context.Context, customerID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CustomerID == customerID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) inRange(barberID uint, start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && !ap.AppointmentTime.Before(start) && ap.AppointmentTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out
}
