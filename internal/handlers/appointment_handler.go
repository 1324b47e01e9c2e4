package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/httpresp"
	"github.com/barbera-app/barbera-api/internal/middleware"
	"github.com/barbera-app/barbera-api/internal/timezone"
	ucBooking "github.com/barbera-app/barbera-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	listUC     *ucBooking.ListAppointments
	cancelUC   *ucBooking.CancelAppointment
	completeUC *ucBooking.CompleteAppointment
}

func NewAppointmentHandler(
	listUC *ucBooking.ListAppointments,
	cancelUC *ucBooking.CancelAppointment,
	completeUC *ucBooking.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		listUC:     listUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
	}
}

// ======================================================
// BARBER SIDE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = timezone.Now().Format("2006-01-02")
	}

	date, err := parseDateFor(nil, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listUC.ByDate(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid year or month.")
		return
	}

	out, err := h.listUC.ByMonth(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.ExecuteAsBarber(c.Request.Context(), barberID, uint(id))
	if err != nil {
		mapStateErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), barberID, uint(id))
	if err != nil {
		mapStateErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CUSTOMER SIDE
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.listUC.ForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) CancelMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.ExecuteAsCustomer(c.Request.Context(), customerID, uint(id))
	if err != nil {
		mapStateErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapStateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Appointment is not in a changeable state.")
	default:
		httperr.Internal(c, "appointment_update_failed", "Could not update appointment.")
	}
}
