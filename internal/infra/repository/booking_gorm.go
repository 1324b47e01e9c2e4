package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/usecase/schedule"
)

// Postgres error classes the insert path translates into business errors.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *BookingGormRepository) GetProfileByID(
	ctx context.Context,
	id uint,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *BookingGormRepository) GetBarberByUsername(
	ctx context.Context,
	username string,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Where("username = ? AND role = ?", username, models.RoleBarber).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	barberID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", serviceID, barberID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	barberID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND active = true", barberID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

func (r *BookingGormRepository) ListScheduleForWeekday(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.WeeklyAvailability, error) {

	var rows []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, weekday).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListSchedule(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklyAvailability, error) {

	var rows []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceSchedule swaps the whole weekly set in one transaction.
func (r *BookingGormRepository) ReplaceSchedule(
	ctx context.Context,
	barberID uint,
	entries []models.WeeklyAvailability,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// --------------------------------------------------
// Appointment (create / idempotency)
// --------------------------------------------------

// GetAppointmentByPaymentRef returns (nil, nil) when no appointment
// carries the reference; a non-nil error is a store failure.
func (r *BookingGormRepository) GetAppointmentByPaymentRef(
	ctx context.Context,
	paymentRef string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("payment_ref = ?", paymentRef).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Create(ap).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			// appointments_no_overlap fired: someone else took the window
			// between the advisory slot check and this insert.
			return httperr.ErrBusiness("time_conflict")
		case pgUniqueViolation:
			return httperr.ErrBusiness("duplicate_payment_ref")
		}
	}

	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForCustomer(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", appointmentID, customerID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability / listings
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("appointment_time", "duration_min").
		Where(
			"barber_id = ? AND status = 'scheduled' AND appointment_time >= ? AND appointment_time < ?",
			barberID, start, end,
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"barber_id = ? AND appointment_time >= ? AND appointment_time < ?",
			barberID, start, end,
		).
		Order("appointment_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("appointment_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time checks
var (
	_ domain.Repository   = (*BookingGormRepository)(nil)
	_ schedule.Repository = (*BookingGormRepository)(nil)
)
