package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("active = ?", true).
		First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetBarberByUserID(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	barbershopID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND barbershop_id = ? AND active = true", ids, barbershopID).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) ListBusySlots(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND (is_booked OR is_blocked) AND start_time < ? AND end_time > ?",
			barberID, to, from,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) HasConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where(
			"barber_id = ? AND (is_booked OR is_blocked) AND start_time < ? AND end_time > ?",
			barberID, end, start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ListSlotsForDay(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Preload("Booking").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, from, to,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) CreateBlock(
	ctx context.Context,
	slot *models.Slot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts int64
		if err := tx.
			Model(&models.Slot{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND (is_booked OR is_blocked) AND start_time < ? AND end_time > ?",
				slot.BarberID, slot.EndTime, slot.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(slot).Error
	})
}

func (r *BookingGormRepository) DeleteBlock(
	ctx context.Context,
	slotID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Slot{}, slotID).Error
}

// --------------------------------------------------
// Booking (atomic reserve + create)
// --------------------------------------------------

func (r *BookingGormRepository) ReserveAndCreate(
	ctx context.Context,
	slot *models.Slot,
	b *models.Booking,
	items []models.BookingService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Re-validate under lock: the pre-check outside the transaction
		// may have raced another booking.
		q := tx.
			Model(&models.Slot{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND (is_booked OR is_blocked) AND start_time < ? AND end_time > ?",
				slot.BarberID, slot.EndTime, slot.StartTime,
			)
		if slot.ID != 0 {
			q = q.Where("id <> ?", slot.ID)
		}

		var conflicts int64
		if err := q.Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		slot.IsBooked = true
		if slot.ID == 0 {
			if err := tx.Create(slot).Error; err != nil {
				return err
			}
		} else {
			res := tx.
				Model(&models.Slot{}).
				Where("id = ? AND NOT is_booked AND NOT is_blocked", slot.ID).
				Update("is_booked", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("slot_unavailable")
			}
		}

		b.SlotID = slot.ID
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].BookingID = b.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Barber").
		Preload("Barbershop").
		Preload("Slot").
		Preload("Services.Service").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.BarbershopID != nil {
		q = q.Where("barbershop_id = ?", *f.BarbershopID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.
		Preload("User").
		Preload("Barber").
		Preload("Barbershop").
		Preload("Slot").
		Preload("Services.Service").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *BookingGormRepository) CancelAndRelease(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", b.ID).
			Updates(map[string]any{
				"status":       b.Status,
				"cancelled_at": b.CancelledAt,
			}).Error; err != nil {
			return err
		}

		// Release, never delete: the slot row stays behind as history.
		return tx.
			Model(&models.Slot{}).
			Where("id = ?", b.SlotID).
			Update("is_booked", false).Error
	})
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
			"completed_at": b.CompletedAt,
		}).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
