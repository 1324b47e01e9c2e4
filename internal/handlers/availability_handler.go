package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/middleware"
	ucSchedule "github.com/barbera-app/barbera-api/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	getUC     *ucSchedule.GetWeeklySchedule
	replaceUC *ucSchedule.ReplaceWeeklySchedule
}

func NewAvailabilityHandler(
	getUC *ucSchedule.GetWeeklySchedule,
	replaceUC *ucSchedule.ReplaceWeeklySchedule,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getUC:     getUC,
		replaceUC: replaceUC,
	}
}

type WeeklyScheduleUpdateRequest struct {
	Days []ucSchedule.DayInput `json:"days" binding:"required"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	entries, err := h.getUC.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Could not load weekly schedule.")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Update replaces the whole weekly set: the editor always saves all seven
// days together, so partial writes are not supported.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req WeeklyScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	entries, err := h.replaceUC.Execute(c.Request.Context(), barberID, req.Days)
	if err != nil {
		for _, code := range []string{
			"too_many_days", "invalid_weekday", "duplicate_weekday",
			"invalid_time", "start_after_end",
		} {
			if httperr.IsBusiness(err, code) {
				httperr.BadRequest(c, code, "Invalid weekly schedule.")
				return
			}
		}
		httperr.Internal(c, "failed_to_save_schedule", "Could not save weekly schedule.")
		return
	}

	c.JSON(http.StatusOK, entries)
}
