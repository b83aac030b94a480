package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/datatypes"

	domain "github.com/fadecrew/barbershop-api/internal/domain/booking"
	"github.com/fadecrew/barbershop-api/internal/httperr"
	"github.com/fadecrew/barbershop-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory domain.Repository mirroring the Postgres
// repository's semantics, including the conflict re-check inside
// ReserveAndCreate.
type fakeRepo struct {
	mu sync.Mutex

	shops    map[uint]*models.Barbershop
	barbers  map[uint]*models.Barber
	services map[uint]*models.Service
	slots    map[uint]*models.Slot
	bookings map[uint]*models.Booking

	nextSlotID    uint
	nextBookingID uint

	// Forced failure for the reservation transaction.
	reserveErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:         make(map[uint]*models.Barbershop),
		barbers:       make(map[uint]*models.Barber),
		services:      make(map[uint]*models.Service),
		slots:         make(map[uint]*models.Slot),
		bookings:      make(map[uint]*models.Booking),
		nextSlotID:    1,
		nextBookingID: 1,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------- Seeding helpers --------

func (f *fakeRepo) addShop(shop models.Barbershop) *models.Barbershop {
	f.shops[shop.ID] = &shop
	return &shop
}

func (f *fakeRepo) addBarber(b models.Barber) *models.Barber {
	f.barbers[b.ID] = &b
	return &b
}

func (f *fakeRepo) addService(s models.Service) *models.Service {
	f.services[s.ID] = &s
	return &s
}

func (f *fakeRepo) addSlot(s models.Slot) *models.Slot {
	if s.ID == 0 {
		s.ID = f.nextSlotID
	}
	if s.ID >= f.nextSlotID {
		f.nextSlotID = s.ID + 1
	}
	f.slots[s.ID] = &s
	return &s
}

func (f *fakeRepo) addBooking(b models.Booking) *models.Booking {
	if b.ID == 0 {
		b.ID = f.nextBookingID
	}
	if b.ID >= f.nextBookingID {
		f.nextBookingID = b.ID + 1
	}
	f.bookings[b.ID] = &b
	return &b
}

// -------- Catalog --------

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.shops[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b, ok := f.barbers[id]; ok && b.Active {
		cp := *b
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBarberByUserID(_ context.Context, userID uint) (*models.Barber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.barbers {
		if b.UserID != nil && *b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetServices(_ context.Context, barbershopID uint, ids []uint) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.services[id]; ok && s.BarbershopID == barbershopID && s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

// -------- Slots --------

func (f *fakeRepo) GetSlot(_ context.Context, id uint) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.slots[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListBusySlots(_ context.Context, barberID uint, from, to time.Time) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Slot
	for _, s := range f.slots {
		if s.BarberID != barberID || (!s.IsBooked && !s.IsBlocked) {
			continue
		}
		if s.StartTime.Before(to) && from.Before(s.EndTime) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasConflict(_ context.Context, barberID uint, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasConflictLocked(barberID, start, end, 0), nil
}

func (f *fakeRepo) hasConflictLocked(barberID uint, start, end time.Time, excludeSlotID uint) bool {
	for _, s := range f.slots {
		if s.BarberID != barberID || s.ID == excludeSlotID {
			continue
		}
		if !s.IsBooked && !s.IsBlocked {
			continue
		}
		if s.StartTime.Before(end) && start.Before(s.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) ListSlotsForDay(_ context.Context, barberID uint, from, to time.Time) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Slot
	for _, s := range f.slots {
		if s.BarberID != barberID {
			continue
		}
		if s.StartTime.Before(to) && !s.StartTime.Before(from) {
			cp := *s
			for _, b := range f.bookings {
				if b.SlotID == s.ID {
					bcp := *b
					cp.Booking = &bcp
					break
				}
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateBlock(_ context.Context, slot *models.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasConflictLocked(slot.BarberID, slot.StartTime, slot.EndTime, 0) {
		return httperr.ErrBusiness("time_conflict")
	}

	slot.ID = f.nextSlotID
	f.nextSlotID++
	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteBlock(_ context.Context, slotID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.slots[slotID]; !ok {
		return errNotFound
	}
	delete(f.slots, slotID)
	return nil
}

// -------- Booking (atomic) --------

func (f *fakeRepo) ReserveAndCreate(
	_ context.Context,
	slot *models.Slot,
	b *models.Booking,
	items []models.BookingService,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.reserveErr != nil {
		return f.reserveErr
	}

	if f.hasConflictLocked(slot.BarberID, slot.StartTime, slot.EndTime, slot.ID) {
		return httperr.ErrBusiness("time_conflict")
	}

	if slot.ID == 0 {
		slot.ID = f.nextSlotID
		f.nextSlotID++
	} else {
		stored, ok := f.slots[slot.ID]
		if !ok || stored.IsBooked || stored.IsBlocked {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	slot.IsBooked = true
	scp := *slot
	f.slots[slot.ID] = &scp

	b.ID = f.nextBookingID
	f.nextBookingID++
	b.SlotID = slot.ID
	b.Services = append([]models.BookingService(nil), items...)
	bcp := *b
	f.bookings[b.ID] = &bcp
	return nil
}

func (f *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, errNotFound
	}

	cp := *b
	if s, ok := f.slots[b.SlotID]; ok {
		cp.Slot = *s
	}
	if shop, ok := f.shops[b.BarbershopID]; ok {
		cp.Barbershop = *shop
	}
	if barber, ok := f.barbers[b.BarberID]; ok {
		cp.Barber = *barber
	}
	return &cp, nil
}

func (f *fakeRepo) ListBookings(_ context.Context, flt domain.ListFilter) ([]models.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Booking
	for _, b := range f.bookings {
		if flt.UserID != nil && (b.UserID == nil || *b.UserID != *flt.UserID) {
			continue
		}
		if flt.BarberID != nil && b.BarberID != *flt.BarberID {
			continue
		}
		if flt.BarbershopID != nil && b.BarbershopID != *flt.BarbershopID {
			continue
		}
		if flt.Status != "" && b.Status != flt.Status {
			continue
		}
		matched = append(matched, *b)
	}

	total := int64(len(matched))

	offset := (flt.Page - 1) * flt.Limit
	if offset >= len(matched) {
		return []models.Booking{}, total, nil
	}
	end := offset + flt.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepo) CancelAndRelease(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.bookings[b.ID]
	if !ok {
		return errNotFound
	}
	stored.Status = b.Status
	stored.CancelledAt = b.CancelledAt

	if s, ok := f.slots[b.SlotID]; ok {
		s.IsBooked = false
	}
	return nil
}

func (f *fakeRepo) UpdateBookingStatus(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.bookings[b.ID]
	if !ok {
		return errNotFound
	}
	stored.Status = b.Status
	stored.CancelledAt = b.CancelledAt
	stored.CompletedAt = b.CompletedAt
	return nil
}

// -------- Shared fixtures --------

const weekSchedule = `{
	"monday":    {"isOpen": true, "open": "09:00", "close": "17:00"},
	"tuesday":   {"isOpen": true, "open": "09:00", "close": "17:00"},
	"wednesday": {"isOpen": true, "open": "09:00", "close": "17:00"},
	"thursday":  {"isOpen": true, "open": "09:00", "close": "17:00"},
	"friday":    {"isOpen": true, "open": "09:00", "close": "17:00"}
}`

// seedShopAndBarber wires one shop, one barber and two offerings the
// barber can perform (30 and 60 minutes).
func seedShopAndBarber(f *fakeRepo) (*models.Barbershop, *models.Barber, []*models.Service) {
	shop := f.addShop(models.Barbershop{
		ID:       1,
		Name:     "Fade Crew",
		Slug:     "fade-crew",
		Timezone: "UTC",
		WorkingHours: datatypes.JSON(weekSchedule),
	})

	cut := f.addService(models.Service{
		ID:           1,
		BarbershopID: shop.ID,
		Name:         "Haircut",
		PriceCents:   5000,
		DurationMin:  60,
		Active:       true,
	})
	beard := f.addService(models.Service{
		ID:           2,
		BarbershopID: shop.ID,
		Name:         "Beard Trim",
		PriceCents:   2500,
		DurationMin:  30,
		Active:       true,
	})

	barber := f.addBarber(models.Barber{
		ID:           1,
		BarbershopID: shop.ID,
		DisplayName:  "Marcus",
		Services:     []models.Service{*cut, *beard},
		Active:       true,
	})

	return shop, barber, []*models.Service{cut, beard}
}
