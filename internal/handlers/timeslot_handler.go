package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/httpresp"
	"github.com/fadecrew/barbershop-api/internal/middleware"
	ucbooking "github.com/fadecrew/barbershop-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type TimeslotHandler struct {
	availabilityUC *ucbooking.GetAvailability
	blockUC        *ucbooking.BlockSlot
	unblockUC      *ucbooking.UnblockSlot
}

func NewTimeslotHandler(
	availabilityUC *ucbooking.GetAvailability,
	blockUC *ucbooking.BlockSlot,
	unblockUC *ucbooking.UnblockSlot,
) *TimeslotHandler {
	return &TimeslotHandler{
		availabilityUC: availabilityUC,
		blockUC:        blockUC,
		unblockUC:      unblockUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BlockSlotRequest struct {
	BarberID  uint   `json:"barberId" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Reason    string `json:"reason"`
}

// ======================================================
// AVAILABLE
// ======================================================

func (h *TimeslotHandler) Available(c *gin.Context) {
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

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID: barberID,
		Date:     date,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	msg := "Available slots retrieved successfully"
	if len(slots) == 0 {
		msg = "Barber is not working on this day"
	}
	httpresp.OK(c, msg, slots)
}

// ======================================================
// BLOCK / UNBLOCK
// ======================================================

func (h *TimeslotHandler) Block(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

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

	slot, err := h.blockUC.Execute(
		c.Request.Context(),
		ucbooking.BlockSlotInput{
			BarberID:  req.BarberID,
			StartTime: start,
			EndTime:   end,
			Reason:    req.Reason,
		},
		p.UserID, p.Role, p.BarbershopID,
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, "Slot blocked successfully", gin.H{"slot": slot})
}

func (h *TimeslotHandler) Unblock(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid slot id.")
		return
	}

	if err := h.unblockUC.Execute(c.Request.Context(), id, p.UserID, p.Role, p.BarbershopID); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, "Slot unblocked successfully", nil)
}
