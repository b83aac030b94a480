package booking

import (
	"context"
	"time"

	"github.com/fadecrew/barbershop-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetBarberByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	// GetServices returns the offerings matching ids that belong to the
	// given barbershop; callers compare lengths to detect misses.
	GetServices(
		ctx context.Context,
		barbershopID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Slots --------
	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.Slot, error)

	// ListBusySlots returns booked-or-blocked windows for the barber
	// intersecting [from, to), ordered by start.
	ListBusySlots(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Slot, error)

	HasConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// ListSlotsForDay returns every slot (busy or released) with its
	// booking preloaded, for the calendar view.
	ListSlotsForDay(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Slot, error)

	CreateBlock(
		ctx context.Context,
		slot *models.Slot,
	) error

	DeleteBlock(
		ctx context.Context,
		slotID uint,
	) error

	// -------- Booking (atomic) --------

	// ReserveAndCreate runs in a single transaction: re-checks the
	// window for conflicts under a row lock, marks or creates the slot
	// as booked, inserts the booking and its line items. Either all
	// writes land or none do. slot.ID == 0 means a raw window (create
	// the slot); otherwise an existing free slot is claimed.
	ReserveAndCreate(
		ctx context.Context,
		slot *models.Slot,
		b *models.Booking,
		items []models.BookingService,
	) error

	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	ListBookings(
		ctx context.Context,
		f ListFilter,
	) ([]models.Booking, int64, error)

	// CancelAndRelease persists the cancelled booking and clears the
	// linked slot's IsBooked flag in one transaction. The slot row is
	// retained for audit history.
	CancelAndRelease(
		ctx context.Context,
		b *models.Booking,
	) error

	// UpdateBookingStatus persists only the lifecycle columns (status,
	// cancelled_at, completed_at); line items and totals are immutable.
	UpdateBookingStatus(
		ctx context.Context,
		b *models.Booking,
	) error
}
