package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/httpresp"
	"github.com/barbera-app/barbera-api/internal/models"
	ucBooking "github.com/barbera-app/barbera-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucBooking.GetAvailability
	calendarUC     *ucBooking.Calendar
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	calendarUC *ucBooking.Calendar,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		calendarUC:     calendarUC,
	}
}

func (h *PublicHandler) findBarber(c *gin.Context) (*models.Profile, bool) {
	username := c.Param("username")

	var barber models.Profile
	if err := h.db.
		Where("username = ? AND role = ?", username, models.RoleBarber).
		First(&barber).Error; err != nil {

		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return nil, false
	}
	return &barber, true
}

// ======================================================
// PROFILE PAGE
// ======================================================

func (h *PublicHandler) GetProfile(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	var services []models.Service
	h.db.
		Where("barber_id = ? AND active = true", barber.ID).
		Order("id ASC").
		Find(&services)

	var ratingAvg float64
	var ratingCount int64
	h.db.Model(&models.Review{}).
		Where("barber_id = ?", barber.ID).
		Count(&ratingCount)
	if ratingCount > 0 {
		h.db.Model(&models.Review{}).
			Where("barber_id = ?", barber.ID).
			Select("AVG(rating)").
			Scan(&ratingAvg)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":         barber.ID,
			"username":   barber.Username,
			"bio":        barber.Bio,
			"location":   barber.Location,
			"avatar_url": barber.AvatarURL,
		},
		"services":     services,
		"rating_avg":   ratingAvg,
		"rating_count": ratingCount,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barber_id = ? AND active = true", barber.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListPosts(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	var posts []models.Post
	if err := h.db.
		Where("barber_id = ?", barber.ID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_posts", "Could not load portfolio.")
		return
	}

	httpresp.List(c, posts)
}

func (h *PublicHandler) ListReviews(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("barber_id = ?", barber.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load reviews.")
		return
	}

	httpresp.List(c, reviews)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	date, err := parseDateFor(barber, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	result, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:  barber.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.BadRequest(c, "service_not_found", "Invalid service.")
		case httperr.IsBusiness(err, "invalid_duration"):
			httperr.BadRequest(c, "invalid_duration", "Service has no valid duration.")
		case httperr.IsBusiness(err, "date_in_past"):
			httperr.BadRequest(c, "date_in_past", "Date is in the past.")
		default:
			// Retrieval failure: transient, retry; never shown as
			// "barber unavailable".
			httperr.Unavailable(c, "availability_fetch_failed", "Could not check availability, please retry.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    dateStr,
		"slots":   result.Slots,
		"reason":  result.Reason,
		"message": result.Reason.Message(),
	})
}

func (h *PublicHandler) Calendar(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	days := 60
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 180 {
			httperr.BadRequest(c, "invalid_days", "Horizon must be 1-180 days.")
			return
		}
		days = parsed
	}

	dates, err := h.calendarUC.Execute(c.Request.Context(), barber.ID, days)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Unavailable(c, "calendar_fetch_failed", "Could not load calendar, please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"selectable_dates": dates})
}
