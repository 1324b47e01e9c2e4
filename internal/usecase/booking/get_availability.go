package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute turns the barber's weekday schedule plus that day's booked
// appointments into the list of offerable start times. Empty results come
// back with a Reason; a non-nil error always means a retrieval or input
// failure, never "nothing free".
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (domain.AvailabilityResult, error) {

	var out domain.AvailabilityResult

	barber, err := uc.repo.GetProfileByID(ctx, in.BarberID)
	if err != nil {
		return out, fmt.Errorf("loading barber profile: %w", err)
	}

	today := timezone.StartOfDay(timezone.NowIn(barber.Timezone))
	if in.Date.Before(today) {
		return out, httperr.ErrBusiness("date_in_past")
	}

	service, err := uc.repo.GetService(ctx, in.BarberID, in.ServiceID)
	if err != nil {
		return out, httperr.ErrBusiness("service_not_found")
	}
	if service.DurationMin <= 0 {
		return out, httperr.ErrBusiness("invalid_duration")
	}
	duration := time.Duration(service.DurationMin) * time.Minute

	weekday := int(in.Date.Weekday())

	rows, err := uc.repo.ListScheduleForWeekday(ctx, in.BarberID, weekday)
	if err != nil {
		return out, fmt.Errorf("loading weekly schedule: %w", err)
	}

	var schedule *domain.DaySchedule
	if len(rows) > 0 {
		// The store enforces one row per weekday; if an anomaly slips
		// through we deterministically take the first by id.
		schedule = &domain.DaySchedule{
			DayOfWeek: rows[0].DayOfWeek,
			StartTime: rows[0].StartTime,
			EndTime:   rows[0].EndTime,
		}
	}

	dayStart := timezone.StartOfDay(in.Date)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return out, fmt.Errorf("loading appointments: %w", err)
	}

	blocked := make([]domain.Blocked, 0, len(appointments))
	for _, ap := range appointments {
		dur := time.Duration(ap.DurationMin) * time.Minute
		if dur <= 0 {
			dur = domain.DefaultBlockDuration
		}
		blocked = append(blocked, domain.Blocked{
			Start: ap.AppointmentTime.In(in.Date.Location()),
			End:   ap.AppointmentTime.In(in.Date.Location()).Add(dur),
		})
	}

	starts, reason, err := domain.ResolveSlots(in.Date, duration, schedule, blocked)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) {
			return out, httperr.ErrBusiness("invalid_duration")
		}
		return out, err
	}

	out.Reason = reason
	out.Slots = make([]domain.TimeSlot, 0, len(starts))
	for _, s := range starts {
		out.Slots = append(out.Slots, domain.TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(duration).Format("15:04"),
		})
	}

	return out, nil
}
