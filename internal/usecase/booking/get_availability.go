package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	grain time.Duration
}

func NewGetAvailability(repo domain.Repository, grain time.Duration) *GetAvailability {
	return &GetAvailability{repo: repo, grain: grain}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barber.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	// in.Date is a calendar date; re-anchor its Y/M/D in the shop's
	// timezone instead of converting the instant (which could land on
	// the previous or next day).
	loc := timezone.Location(shop.Timezone)
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	open, close, ok := resolveSchedule(barber.WorkingHours, shop.WorkingHours, date)
	if !ok {
		// Closed day, absent schedule and malformed schedule all read
		// the same way: nothing to offer.
		return []domain.TimeSlot{}, nil
	}

	busySlots, err := uc.repo.ListBusySlots(ctx, barber.ID, open, close)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Window, 0, len(busySlots))
	for _, s := range busySlots {
		busy = append(busy, domain.Window{Start: s.StartTime, End: s.EndTime})
	}

	windows := domain.AvailableWindows(open, close, uc.grain, busy)

	out := make([]domain.TimeSlot, 0, len(windows))
	for _, w := range windows {
		out = append(out, domain.TimeSlot{
			ID:           uuid.NewString(),
			StartTime:    w.Start,
			EndTime:      w.End,
			IsAvailable:  true,
			BarberID:     barber.ID,
			BarbershopID: barber.BarbershopID,
		})
	}

	return out, nil
}

// resolveSchedule prefers the barber's own schedule and falls back to
// the shop default. Unparsable data is treated as closed.
func resolveSchedule(barberRaw, shopRaw []byte, date time.Time) (open, close time.Time, ok bool) {
	if sched, err := domain.ParseSchedule(barberRaw); err == nil && len(sched) > 0 {
		return sched.Resolve(date)
	}

	sched, err := domain.ParseSchedule(shopRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return sched.Resolve(date)
}
