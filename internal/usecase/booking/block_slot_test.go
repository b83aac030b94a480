package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

func TestBlockSlot(t *testing.T) {
	ctx := context.Background()
	start := monday.Add(12 * time.Hour)
	end := monday.Add(14 * time.Hour)

	t.Run("shop admin blocks a window", func(t *testing.T) {
		repo := newFakeRepo()
		shop, barber, _ := seedShopAndBarber(repo)
		uc := NewBlockSlot(repo, nil)

		slot, err := uc.Execute(ctx, BlockSlotInput{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   end,
			Reason:    "lunch",
		}, 7, models.RoleAdmin, &shop.ID)
		require.NoError(t, err)

		assert.True(t, slot.IsBlocked)
		assert.False(t, slot.IsBooked)
		assert.Equal(t, "lunch", slot.BlockReason)
		assert.NotZero(t, slot.ID)
	})

	t.Run("blocked window vanishes from availability", func(t *testing.T) {
		repo := newFakeRepo()
		shop, barber, _ := seedShopAndBarber(repo)
		blockUC := NewBlockSlot(repo, nil)
		availUC := NewGetAvailability(repo, time.Hour)

		_, err := blockUC.Execute(ctx, BlockSlotInput{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   end,
		}, 7, models.RoleAdmin, &shop.ID)
		require.NoError(t, err)

		slots, err := availUC.Execute(ctx, domain.AvailabilityInput{BarberID: barber.ID, Date: monday})
		require.NoError(t, err)
		assert.Len(t, slots, 6)
		for _, s := range slots {
			assert.NotEqual(t, 12, s.StartTime.Hour())
			assert.NotEqual(t, 13, s.StartTime.Hour())
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		repo := newFakeRepo()
		shop, barber, _ := seedShopAndBarber(repo)
		uc := NewBlockSlot(repo, nil)

		_, err := uc.Execute(ctx, BlockSlotInput{
			BarberID:  barber.ID,
			StartTime: end,
			EndTime:   start,
		}, 7, models.RoleAdmin, &shop.ID)
		assert.True(t, httperr.IsBusiness(err, "invalid_window"))
	})

	t.Run("admin of another shop is forbidden", func(t *testing.T) {
		repo := newFakeRepo()
		_, barber, _ := seedShopAndBarber(repo)
		uc := NewBlockSlot(repo, nil)

		otherShop := uint(99)
		_, err := uc.Execute(ctx, BlockSlotInput{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   end,
		}, 7, models.RoleAdmin, &otherShop)
		assert.True(t, httperr.IsBusiness(err, "forbidden"))
	})

	t.Run("superadmin may block anywhere", func(t *testing.T) {
		repo := newFakeRepo()
		_, barber, _ := seedShopAndBarber(repo)
		uc := NewBlockSlot(repo, nil)

		_, err := uc.Execute(ctx, BlockSlotInput{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   end,
		}, 1, models.RoleSuperadmin, nil)
		assert.NoError(t, err)
	})
}

func TestUnblockSlot(t *testing.T) {
	ctx := context.Background()
	start := monday.Add(12 * time.Hour)

	t.Run("block rows are deleted outright", func(t *testing.T) {
		repo := newFakeRepo()
		shop, barber, _ := seedShopAndBarber(repo)
		slot := repo.addSlot(models.Slot{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			IsBlocked: true,
		})
		uc := NewUnblockSlot(repo, nil)

		require.NoError(t, uc.Execute(ctx, slot.ID, 7, models.RoleAdmin, &shop.ID))

		_, err := repo.GetSlot(ctx, slot.ID)
		assert.Error(t, err)
	})

	t.Run("booked slots are untouchable", func(t *testing.T) {
		repo := newFakeRepo()
		shop, barber, _ := seedShopAndBarber(repo)
		slot := repo.addSlot(models.Slot{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			IsBooked:  true,
		})
		uc := NewUnblockSlot(repo, nil)

		err := uc.Execute(ctx, slot.ID, 7, models.RoleAdmin, &shop.ID)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("unknown slot", func(t *testing.T) {
		repo := newFakeRepo()
		shop, _, _ := seedShopAndBarber(repo)
		uc := NewUnblockSlot(repo, nil)

		err := uc.Execute(ctx, 99, 7, models.RoleAdmin, &shop.ID)
		assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
	})

	t.Run("admin of another shop is forbidden", func(t *testing.T) {
		repo := newFakeRepo()
		_, barber, _ := seedShopAndBarber(repo)
		slot := repo.addSlot(models.Slot{
			BarberID:  barber.ID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			IsBlocked: true,
		})
		uc := NewUnblockSlot(repo, nil)

		otherShop := uint(99)
		err := uc.Execute(ctx, slot.ID, 7, models.RoleAdmin, &otherShop)
		assert.True(t, httperr.IsBusiness(err, "forbidden"))
	})
}
