package handlers

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"

	domain "github.com/barbera-app/barbera-api/internal/domain/booking"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/middleware"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/payments"
	ucBooking "github.com/barbera-app/barbera-api/internal/usecase/booking"
)

const maxWebhookBytes = 64 << 10

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db             *gorm.DB
	stripe         *payments.Client
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
}

func NewPaymentHandler(
	db *gorm.DB,
	stripeClient *payments.Client,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PaymentHandler {
	return &PaymentHandler{
		db:             db,
		stripe:         stripeClient,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

// ======================================================
// CHECKOUT
// ======================================================

type CheckoutRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// Checkout starts a booking. The requested slot is re-resolved against the
// live schedule first, so a stale picker cannot pay for a taken slot. Free
// services skip Stripe entirely and book under a free_<uuid> reference.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Barber, service, date and start time are required.")
		return
	}

	var barber models.Profile
	if err := h.db.
		Where("id = ? AND role = ?", req.BarberID, models.RoleBarber).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	date, err := parseDateFor(&barber, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	appointmentTime, err := parseDateTimeFor(&barber, req.Date, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid start time.")
		return
	}

	result, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:  barber.ID,
			ServiceID: req.ServiceID,
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
			httperr.Unavailable(c, "availability_fetch_failed", "Could not check availability, please retry.")
		}
		return
	}

	if !slotOffered(result.Slots, req.StartTime) {
		httperr.Conflict(c, "slot_taken", "That time is no longer available.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND barber_id = ? AND active = true", req.ServiceID, barber.ID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Invalid service.")
		return
	}

	if service.Price <= 0 {
		ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
			BarberID:        barber.ID,
			CustomerID:      customerID,
			ServiceID:       service.ID,
			AppointmentTime: appointmentTime,
			PaymentRef:      "free_" + uuid.NewString(),
			PaymentStatus:   string(domain.PaymentPaid),
		})
		if err != nil {
			mapBookingErrors(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"free": true, "appointment": ap})
		return
	}

	session, err := h.stripe.CreateCheckoutSession(payments.CheckoutInput{
		ServiceName:      service.Name,
		AmountCents:      int64(math.Round(service.Price * 100)),
		AppointmentTime:  appointmentTime,
		BarberID:         barber.ID,
		CustomerID:       customerID,
		ServiceID:        service.ID,
		ConnectAccountID: barber.StripeAccountID,
	})
	if err != nil {
		httperr.Internal(c, "checkout_failed", "Could not start checkout.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	})
}

func slotOffered(slots []domain.TimeSlot, start string) bool {
	for _, s := range slots {
		if s.Start == start {
			return true
		}
	}
	return false
}

// ======================================================
// VERIFY
// ======================================================

// Verify lets the success page confirm a paid session without waiting for
// the webhook. Booking is idempotent on the payment reference, so whichever
// of the two paths lands first wins and the other sees the same row.
func (h *PaymentHandler) Verify(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		httperr.BadRequest(c, "missing_session_id", "Session id is required.")
		return
	}

	session, err := h.stripe.GetCheckoutSession(sessionID)
	if err != nil {
		httperr.BadRequest(c, "session_not_found", "Unknown checkout session.")
		return
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusOK, gin.H{"paid": false})
		return
	}

	ap, err := h.bookFromSession(c, session)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paid": true, "appointment": ap})
}

// ======================================================
// WEBHOOK
// ======================================================

func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		httperr.BadRequest(c, "unreadable_payload", "Could not read payload.")
		return
	}

	event, err := h.stripe.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		httperr.BadRequest(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	if event.Type == "checkout.session.completed" {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			httperr.BadRequest(c, "invalid_payload", "Malformed event payload.")
			return
		}

		if _, err := h.bookFromSession(c, &session); err != nil {
			// Stripe retries on non-2xx; a transient store failure will be
			// delivered again.
			log.Println("webhook booking failed:", err)
			httperr.Internal(c, "booking_failed", "Could not record booking.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// ======================================================
// SESSION -> BOOKING
// ======================================================

func (h *PaymentHandler) bookFromSession(
	c *gin.Context,
	session *stripe.CheckoutSession,
) (*models.Appointment, error) {

	barberID, err1 := strconv.ParseUint(session.Metadata["barber_id"], 10, 64)
	customerID, err2 := strconv.ParseUint(session.Metadata["customer_id"], 10, 64)
	serviceID, err3 := strconv.ParseUint(session.Metadata["service_id"], 10, 64)
	appointmentTime, err4 := time.Parse(time.RFC3339, session.Metadata["appointment_time"])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, httperr.ErrBusiness("invalid_session_metadata")
	}

	paymentRef := session.ID
	if session.PaymentIntent != nil {
		paymentRef = session.PaymentIntent.ID
	}

	return h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarberID:        uint(barberID),
		CustomerID:      uint(customerID),
		ServiceID:       uint(serviceID),
		AppointmentTime: appointmentTime,
		PaymentRef:      paymentRef,
		PaymentStatus:   string(domain.PaymentPaid),
	})
}

func mapBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "That time was just booked by someone else.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Invalid service.")
	case httperr.IsBusiness(err, "invalid_duration"):
		httperr.BadRequest(c, "invalid_duration", "Service has no valid duration.")
	case httperr.IsBusiness(err, "invalid_session_metadata"):
		httperr.BadRequest(c, "invalid_session_metadata", "Session is missing booking details.")
	case httperr.IsBusiness(err, "missing_payment_ref"):
		httperr.BadRequest(c, "missing_payment_ref", "Payment reference is required.")
	default:
		httperr.Internal(c, "booking_failed", "Could not record booking.")
	}
}

// ======================================================
// CONNECT
// ======================================================

func (h *PaymentHandler) Onboard(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Profile
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	accountID, err := h.stripe.EnsureConnectAccount(barber.StripeAccountID)
	if err != nil {
		httperr.Internal(c, "connect_failed", "Could not set up payouts account.")
		return
	}

	if accountID != barber.StripeAccountID {
		if err := h.db.Model(&models.Profile{}).
			Where("id = ?", barberID).
			Update("stripe_account_id", accountID).Error; err != nil {
			httperr.Internal(c, "failed_to_update_profile", "Could not save payouts account.")
			return
		}
	}

	url, err := h.stripe.OnboardingLink(accountID)
	if err != nil {
		httperr.Internal(c, "connect_failed", "Could not create onboarding link.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *PaymentHandler) Dashboard(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Profile
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	if barber.StripeAccountID == "" {
		httperr.BadRequest(c, "not_onboarded", "Set up payouts before opening the dashboard.")
		return
	}

	url, err := h.stripe.DashboardLink(barber.StripeAccountID)
	if err != nil {
		httperr.Internal(c, "connect_failed", "Could not create dashboard link.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
