package handlers

import (
	"time"

	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/timezone"
)

// Wall-clock inputs are always resolved in the barber's stored timezone;
// the implicit server-local fallback is deliberately avoided.

func locationFor(p *models.Profile) *time.Location {
	if p != nil {
		return timezone.Location(p.Timezone)
	}
	return timezone.Location("")
}

func parseDateFor(p *models.Profile, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFor(p),
	)
}

func parseDateTimeFor(
	p *models.Profile,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFor(p),
	)
}
