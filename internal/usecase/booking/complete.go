package booking

import (
	"context"

	"github.com/fadecrew/barbershop-api/internal/audit"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
	"github.com/fadecrew/barbershop-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute marks an appointment done. Restricted to the assigned barber,
// an admin of the shop, or a superadmin.
func (uc *CompleteBooking) Execute(
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

	if !uc.mayComplete(ctx, b, principalID, role, principalShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	now := timezone.NowIn(b.Barbershop.Timezone)
	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       &principalID,
		Action:       "booking_completed",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}

func (uc *CompleteBooking) mayComplete(
	ctx context.Context,
	b *models.Booking,
	principalID uint,
	role string,
	principalShopID *uint,
) bool {
	switch role {
	case models.RoleSuperadmin:
		return true
	case models.RoleAdmin:
		return principalShopID != nil && *principalShopID == b.BarbershopID
	case models.RoleBarber:
		barber, err := uc.repo.GetBarberByUserID(ctx, principalID)
		return err == nil && barber.ID == b.BarberID
	default:
		return false
	}
}
