package booking

import (
	"context"
	"time"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/timezone"
)

type GetCalendar struct {
	repo domain.Repository
}

func NewGetCalendar(repo domain.Repository) *GetCalendar {
	return &GetCalendar{repo: repo}
}

// Execute returns every persisted slot for the barber's day, each
// annotated with its booking (when one exists). Released slots show up
// as available history.
func (uc *GetCalendar) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.CalendarSlot, error) {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barber.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	// Same calendar-date anchoring as availability: the day runs in the
	// shop's timezone.
	loc := timezone.Location(shop.Timezone)
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	// Next midnight, not from+24h: DST transition days are 23 or 25 hours.
	to := time.Date(date.Year(), date.Month(), date.Day()+1, 0, 0, 0, 0, loc)

	slots, err := uc.repo.ListSlotsForDay(ctx, barberID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CalendarSlot, 0, len(slots))
	for _, s := range slots {
		cs := domain.CalendarSlot{
			ID:          s.ID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			IsAvailable: !s.IsBooked && !s.IsBlocked,
			IsBooked:    s.IsBooked,
			IsBlocked:   s.IsBlocked,
		}
		if s.Booking != nil {
			cs.Booking = &domain.CalendarBooking{
				ID:     s.Booking.ID,
				Code:   s.Booking.Code,
				Status: s.Booking.Status,
			}
		}
		out = append(out, cs)
	}

	return out, nil
}
