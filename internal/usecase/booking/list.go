package booking

import (
	"context"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists bookings visible to the principal: clients see their
// own, barbers see their agenda, admins see their shop, superadmins see
// everything. Extra filters narrow within that scope.
func (uc *ListBookings) Execute(
	ctx context.Context,
	principalID uint,
	role string,
	principalShopID *uint,
	f domain.ListFilter,
) ([]models.Booking, int64, error) {

	switch role {
	case models.RoleClient:
		f.UserID = &principalID
	case models.RoleBarber:
		barber, err := uc.repo.GetBarberByUserID(ctx, principalID)
		if err != nil {
			return nil, 0, httperr.ErrBusiness("barber_not_found")
		}
		f.BarberID = &barber.ID
	case models.RoleAdmin:
		if principalShopID == nil {
			return nil, 0, httperr.ErrBusiness("forbidden")
		}
		f.BarbershopID = principalShopID
	case models.RoleSuperadmin:
		// unrestricted
	default:
		return nil, 0, httperr.ErrBusiness("forbidden")
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	return uc.repo.ListBookings(ctx, f)
}
