package schedule

import (
	"context"
	"time"

	"github.com/barbera-app/barbera-api/internal/audit"
	"github.com/barbera-app/barbera-api/internal/cache"
	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/models"
)

// Repository is the schedule store contract: read all entries, or replace
// the whole weekly set atomically (delete-all-then-insert-all). Partial
// updates are deliberately not offered.
type Repository interface {
	ListSchedule(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklyAvailability, error)

	ReplaceSchedule(
		ctx context.Context,
		barberID uint,
		entries []models.WeeklyAvailability,
	) error
}

type DayInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ReplaceWeeklySchedule struct {
	repo  Repository
	cache *cache.ScheduleCache
	audit *audit.Dispatcher
}

func NewReplaceWeeklySchedule(
	repo Repository,
	scheduleCache *cache.ScheduleCache,
	audit *audit.Dispatcher,
) *ReplaceWeeklySchedule {
	return &ReplaceWeeklySchedule{
		repo:  repo,
		cache: scheduleCache,
		audit: audit,
	}
}

func (uc *ReplaceWeeklySchedule) Execute(
	ctx context.Context,
	barberID uint,
	days []DayInput,
) ([]models.WeeklyAvailability, error) {

	if len(days) > 7 {
		return nil, httperr.ErrBusiness("too_many_days")
	}

	seen := make(map[int]bool, len(days))
	entries := make([]models.WeeklyAvailability, 0, len(days))

	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, httperr.ErrBusiness("invalid_weekday")
		}
		if seen[d.DayOfWeek] {
			return nil, httperr.ErrBusiness("duplicate_weekday")
		}
		seen[d.DayOfWeek] = true

		start := domain.NormalizeClock(d.StartTime)
		end := domain.NormalizeClock(d.EndTime)

		if !validClock(start) || !validClock(end) {
			return nil, httperr.ErrBusiness("invalid_time")
		}

		entry := models.WeeklyAvailability{
			BarberID:  barberID,
			DayOfWeek: d.DayOfWeek,
			StartTime: start,
			EndTime:   end,
		}

		// An open day must have an ordered window; closed (00:00–00:00)
		// is the one sanctioned start==end encoding.
		ds := domain.DaySchedule{DayOfWeek: d.DayOfWeek, StartTime: start, EndTime: end}
		if !ds.Closed() && start >= end {
			return nil, httperr.ErrBusiness("start_after_end")
		}

		entries = append(entries, entry)
	}

	if err := uc.repo.ReplaceSchedule(ctx, barberID, entries); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, barberID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &barberID,
		Action: "schedule_replaced",
		Entity: "weekly_availability",
	})

	return entries, nil
}

func validClock(clock string) bool {
	_, err := time.Parse("15:04", clock)
	return err == nil
}
