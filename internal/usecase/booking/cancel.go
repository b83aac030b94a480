package booking

import (
	"context"
	"time"

	"github.com/fadecrew/barbershop-api/internal/audit"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
	"github.com/fadecrew/barbershop-api/internal/timezone"
)

type CancelBooking struct {
	repo domain.Repository

	audit *audit.Dispatcher

	// Fallback when the shop has no lead time of its own.
	defaultLead time.Duration
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	defaultLead time.Duration,
) *CancelBooking {
	return &CancelBooking{
		repo:        repo,
		audit:       audit,
		defaultLead: defaultLead,
	}
}

// Execute cancels a booking on behalf of the given principal. Only the
// booking's owner, an admin of its barbershop, or a superadmin may
// cancel; guests' bookings are staff-cancellable only.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	principalID uint,
	role string,
	principalShopID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if !mayManage(b, principalID, role, principalShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	lead := uc.defaultLead
	if b.Barbershop.CancelLeadMin > 0 {
		lead = time.Duration(b.Barbershop.CancelLeadMin) * time.Minute
	}

	now := timezone.NowIn(b.Barbershop.Timezone)
	if err := domain.Cancel(b, now, lead); err != nil {
		return nil, err
	}

	if err := uc.repo.CancelAndRelease(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       &principalID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}

func mayManage(b *models.Booking, principalID uint, role string, principalShopID *uint) bool {
	switch role {
	case models.RoleSuperadmin:
		return true
	case models.RoleAdmin:
		return principalShopID != nil && *principalShopID == b.BarbershopID
	default:
		return b.UserID != nil && *b.UserID == principalID
	}
}
