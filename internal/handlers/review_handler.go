package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/barbera-app/barbera-api/internal/audit"
	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/middleware"
	"github.com/barbera-app/barbera-api/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, auditor *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: auditor}
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"max=500"`
}

// Create lets a customer review an appointment of theirs that has been
// completed. One review per appointment; the unique index backs that up
// under concurrent submits.
func (h *ReviewHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Rating must be 1-5 and comment at most 500 characters.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND customer_id = ?", req.AppointmentID, customerID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not save review.")
		return
	}

	if ap.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "appointment_not_completed", "Only completed appointments can be reviewed.")
		return
	}

	review := models.Review{
		BarberID:      ap.BarberID,
		CustomerID:    customerID,
		AppointmentID: ap.ID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := h.db.Create(&review).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			httperr.Conflict(c, "already_reviewed", "This appointment already has a review.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not save review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &customerID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	c.JSON(http.StatusCreated, review)
}
