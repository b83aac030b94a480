package booking

import (
	"context"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
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

	if !uc.mayView(ctx, b, principalID, role, principalShopID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return b, nil
}

func (uc *GetBooking) mayView(
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
		return b.UserID != nil && *b.UserID == principalID
	}
}
