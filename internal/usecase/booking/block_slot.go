package booking

import (
	"context"
	"time"

	"github.com/fadecrew/barbershop-api/internal/audit"
	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

type BlockSlotInput struct {
	BarberID  uint
	StartTime time.Time
	EndTime   time.Time
	Reason    string
}

type BlockSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBlockSlot(repo domain.Repository, audit *audit.Dispatcher) *BlockSlot {
	return &BlockSlot{repo: repo, audit: audit}
}

// Execute places an administrative block on the barber's agenda.
// Restricted to admins of the barber's shop and superadmins.
func (uc *BlockSlot) Execute(
	ctx context.Context,
	in BlockSlotInput,
	principalID uint,
	role string,
	principalShopID *uint,
) (*models.Slot, error) {

	if !in.StartTime.Before(in.EndTime) {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	if role != models.RoleSuperadmin {
		if principalShopID == nil || *principalShopID != barber.BarbershopID {
			return nil, httperr.ErrBusiness("forbidden")
		}
	}

	slot := &models.Slot{
		BarberID:    barber.ID,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsBlocked:   true,
		BlockReason: in.Reason,
	}

	if err := uc.repo.CreateBlock(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barber.BarbershopID,
		UserID:       &principalID,
		Action:       "slot_blocked",
		Entity:       "slot",
		EntityID:     &slot.ID,
	})

	return slot, nil
}
