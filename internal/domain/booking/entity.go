package booking

import (
	"time"

	"github.com/barbera-app/barbera-api/internal/models"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time // midnight in the barber's timezone
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResult pairs the slot list with the reason it is empty.
// Callers must branch on "empty with reason" vs. a returned error: the
// former is actionable by the user, the latter is a retrievable failure.
type AvailabilityResult struct {
	Slots  []TimeSlot `json:"slots"`
	Reason Reason     `json:"reason,omitempty"`
}

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
