package schedule

import (
	"context"

	"github.com/barbera-app/barbera-api/internal/models"
)

type GetWeeklySchedule struct {
	repo Repository
}

func NewGetWeeklySchedule(repo Repository) *GetWeeklySchedule {
	return &GetWeeklySchedule{repo: repo}
}

func (uc *GetWeeklySchedule) Execute(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklyAvailability, error) {
	return uc.repo.ListSchedule(ctx, barberID)
}
