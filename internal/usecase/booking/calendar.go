package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/barbera-app/barbera-api/internal/cache"
	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/timezone"
)

// Calendar computes which dates the picker may enable at all. It looks
// only at the weekly schedule, so a date can be offered even though every
// slot on it later turns out taken; Execute on GetAvailability decides.
type Calendar struct {
	repo  domain.Repository
	cache *cache.ScheduleCache
}

func NewCalendar(repo domain.Repository, scheduleCache *cache.ScheduleCache) *Calendar {
	return &Calendar{repo: repo, cache: scheduleCache}
}

func (uc *Calendar) Execute(
	ctx context.Context,
	barberID uint,
	horizonDays int,
) ([]string, error) {

	if horizonDays <= 0 {
		horizonDays = 60
	}

	entries, err := uc.loadSchedule(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("loading weekly schedule: %w", err)
	}

	daySchedules := make([]domain.DaySchedule, 0, len(entries))
	for _, e := range entries {
		daySchedules = append(daySchedules, domain.DaySchedule{
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	open := domain.OpenWeekdays(daySchedules)

	barber, err := uc.repo.GetProfileByID(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("loading barber profile: %w", err)
	}
	today := timezone.StartOfDay(timezone.NowIn(barber.Timezone))

	dates := make([]string, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		d := today.AddDate(0, 0, i)
		if domain.DateSelectable(d, today, open) {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}

	return dates, nil
}

func (uc *Calendar) loadSchedule(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklyAvailability, error) {

	if uc.cache != nil {
		if entries, ok := uc.cache.Get(ctx, barberID); ok {
			return entries, nil
		}
	}

	entries, err := uc.repo.ListSchedule(ctx, barberID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, barberID, entries, 5*time.Minute)
	}

	return entries, nil
}
