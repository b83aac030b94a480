package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/middleware"
	"github.com/fadecrew/barbershop-api/internal/payments"
	ucbooking "github.com/fadecrew/barbershop-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC   *ucbooking.CreateBooking
	getUC      *ucbooking.GetBooking
	listUC     *ucbooking.ListBookings
	cancelUC   *ucbooking.CancelBooking
	completeUC *ucbooking.CompleteBooking
	calendarUC *ucbooking.GetCalendar
	payments   *payments.Client
}

func NewBookingHandler(
	createUC *ucbooking.CreateBooking,
	getUC *ucbooking.GetBooking,
	listUC *ucbooking.ListBookings,
	cancelUC *ucbooking.CancelBooking,
	completeUC *ucbooking.CompleteBooking,
	calendarUC *ucbooking.GetCalendar,
	pay *payments.Client,
) *BookingHandler {
	return &BookingHandler{
		createUC:   createUC,
		getUC:      getUC,
		listUC:     listUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		calendarUC: calendarUC,
		payments:   pay,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID   uint   `json:"barberId" binding:"required"`
	ServiceIDs []uint `json:"serviceIds" binding:"required"`

	// Either a slot id or a raw window.
	SlotID    uint   `json:"slotId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Phone string `json:"phone" binding:"required"`
	Notes string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := ucbooking.CreateBookingInput{
		BarberID:   req.BarberID,
		ServiceIDs: req.ServiceIDs,
		SlotID:     req.SlotID,
		Phone:      req.Phone,
		Notes:      req.Notes,
	}

	if req.SlotID == 0 {
		start, err := parseRFC3339(req.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_time", "Invalid start time.")
			return
		}
		end, err := parseRFC3339(req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_time", "Invalid end time.")
			return
		}
		in.StartTime = start
		in.EndTime = end
	}

	if p := middleware.GetPrincipal(c); p != nil {
		uid := p.UserID
		in.UserID = &uid
	}

	b, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	resp := gin.H{"booking": b}

	// Payment is a convenience, not part of the reservation: a checkout
	// failure never rolls the booking back.
	if h.payments != nil {
		url, perr := h.payments.CreateBookingPreference(c.Request.Context(), b, b.Barbershop.Name)
		if perr != nil {
			log.Warn().Err(perr).Str("booking_code", b.Code).Msg("payment preference failed")
		} else {
			resp["payment_url"] = url
		}
	}

	httpresp.Created(c, "Booking created successfully", resp)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.getUC.Execute(c.Request.Context(), id, p.UserID, p.Role, p.BarbershopID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, "Booking retrieved successfully", gin.H{"booking": b})
}

func (h *BookingHandler) List(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	f := domain.ListFilter{
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}
	if id, ok := queryID(c, "barberId"); ok {
		f.BarberID = &id
	}
	if id, ok := queryID(c, "barbershopId"); ok {
		f.BarbershopID = &id
	}
	if from, err := parseRFC3339(c.Query("from")); err == nil && c.Query("from") != "" {
		f.From = &from
	}
	if to, err := parseRFC3339(c.Query("to")); err == nil && c.Query("to") != "" {
		f.To = &to
	}

	bookings, total, err := h.listUC.Execute(c.Request.Context(), p.UserID, p.Role, p.BarbershopID, f)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	limit := f.Limit
	if limit < 1 {
		limit = 10
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	httpresp.Paginated(c, "Bookings retrieved successfully", "bookings", bookings, httpresp.Pagination{
		Page:       f.Page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), id, p.UserID, p.Role, p.BarbershopID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, "Booking cancelled successfully", gin.H{"booking": b})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), id, p.UserID, p.Role, p.BarbershopID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, "Booking completed successfully", gin.H{"booking": b})
}

// ======================================================
// CALENDAR
// ======================================================

func (h *BookingHandler) Calendar(c *gin.Context) {
	barberID, ok := queryID(c, "barberId")
	if !ok {
		httperr.BadRequest(c, "missing_barber_id", "Barber ID and date are required.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Barber ID and date are required.")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.calendarUC.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, "Calendar retrieved successfully", gin.H{"slots": slots})
}
