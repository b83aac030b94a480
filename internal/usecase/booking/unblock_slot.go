package booking

import (
	"context"

	"github.com/fadecrew/barbershop-api/internal/audit"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

type UnblockSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnblockSlot(repo domain.Repository, audit *audit.Dispatcher) *UnblockSlot {
	return &UnblockSlot{repo: repo, audit: audit}
}

// Execute removes an administrative block. Blocks carry no booking
// history, so the row is deleted outright; booked slots are never
// touched here.
func (uc *UnblockSlot) Execute(
	ctx context.Context,
	slotID uint,
	principalID uint,
	role string,
	principalShopID *uint,
) error {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return httperr.ErrBusiness("slot_not_found")
	}
	if !slot.IsBlocked || slot.IsBooked {
		return httperr.ErrBusiness("invalid_state")
	}

	barber, err := uc.repo.GetBarber(ctx, slot.BarberID)
	if err != nil {
		return httperr.ErrBusiness("barber_not_found")
	}

	if role != models.RoleSuperadmin {
		if principalShopID == nil || *principalShopID != barber.BarbershopID {
			return httperr.ErrBusiness("forbidden")
		}
	}

	if err := uc.repo.DeleteBlock(ctx, slot.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barber.BarbershopID,
		UserID:       &principalID,
		Action:       "slot_unblocked",
		Entity:       "slot",
		EntityID:     &slot.ID,
	})

	return nil
}
