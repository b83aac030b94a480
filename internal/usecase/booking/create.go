package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fadecrew/barbershop-api/internal/audit"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID   uint
	ServiceIDs []uint

	// Either a pre-generated slot id or a raw window; SlotID wins when
	// both are present.
	SlotID    uint
	StartTime time.Time
	EndTime   time.Time

	Phone string
	Notes string

	// Nil for guest bookings.
	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo       domain.Repository
	audit      *audit.Dispatcher
	allowGuest bool
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	allowGuest bool,
) *CreateBooking {
	return &CreateBooking{
		repo:       repo,
		audit:      audit,
		allowGuest: allowGuest,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.UserID == nil && !uc.allowGuest {
		return nil, httperr.ErrBusiness("guest_booking_disabled")
	}
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("services_not_found")
	}

	// 1. Barber must exist (capabilities preloaded).
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// 2. The requested window (or referenced slot) must be free.
	window, slot, err := uc.resolveWindow(ctx, barber.ID, in)
	if err != nil {
		return nil, err
	}

	// 3. Every service must exist under the barber's shop.
	services, err := uc.repo.GetServices(ctx, barber.BarbershopID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("services_not_found")
	}

	// 4. The barber must be capable of all of them.
	capable := make(map[uint]bool, len(barber.Services))
	for _, s := range barber.Services {
		capable[s.ID] = true
	}
	for _, s := range services {
		if !capable[s.ID] {
			return nil, httperr.ErrBusiness("barber_cannot_perform")
		}
	}

	// 5. The window must fit the combined duration.
	totalPrice := 0
	totalDuration := 0
	for _, s := range services {
		totalPrice += s.PriceCents
		totalDuration += s.DurationMin
	}
	if time.Duration(totalDuration)*time.Minute > window.Duration() {
		return nil, httperr.ErrBusiness("insufficient_duration")
	}

	b := &models.Booking{
		Code:             uuid.NewString(),
		UserID:           in.UserID,
		BarberID:         barber.ID,
		BarbershopID:     barber.BarbershopID,
		TotalPriceCents:  totalPrice,
		TotalDurationMin: totalDuration,
		Status:           string(domain.InitialStatus()),
		Phone:            in.Phone,
		Notes:            in.Notes,
	}

	items := make([]models.BookingService, 0, len(services))
	for _, s := range services {
		items = append(items, models.BookingService{
			ServiceID:   s.ID,
			PriceCents:  s.PriceCents,
			DurationMin: s.DurationMin,
		})
	}

	if err := uc.repo.ReserveAndCreate(ctx, slot, b, items); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barber.BarbershopID,
		UserID:       in.UserID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	// Return the fully populated aggregate.
	return uc.repo.GetBookingByID(ctx, b.ID)
}

// resolveWindow turns the input into a concrete window plus the slot to
// reserve, pre-checking availability. The authoritative check happens
// again inside the reservation transaction.
func (uc *CreateBooking) resolveWindow(
	ctx context.Context,
	barberID uint,
	in CreateBookingInput,
) (domain.Window, *models.Slot, error) {

	if in.SlotID != 0 {
		slot, err := uc.repo.GetSlot(ctx, in.SlotID)
		if err != nil || slot.BarberID != barberID {
			return domain.Window{}, nil, httperr.ErrBusiness("slot_not_found")
		}
		if slot.IsBooked || slot.IsBlocked {
			return domain.Window{}, nil, httperr.ErrBusiness("slot_unavailable")
		}
		return domain.Window{Start: slot.StartTime, End: slot.EndTime}, slot, nil
	}

	if !in.StartTime.Before(in.EndTime) {
		return domain.Window{}, nil, httperr.ErrBusiness("invalid_window")
	}

	conflict, err := uc.repo.HasConflict(ctx, barberID, in.StartTime, in.EndTime)
	if err != nil {
		return domain.Window{}, nil, err
	}
	if conflict {
		return domain.Window{}, nil, httperr.ErrBusiness("time_conflict")
	}

	slot := &models.Slot{
		BarberID:  barberID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	return domain.Window{Start: in.StartTime, End: in.EndTime}, slot, nil
}
