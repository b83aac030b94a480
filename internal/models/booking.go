package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public reference, safe to hand to guests.
	Code string `gorm:"size:36;uniqueIndex;not null" json:"code"`

	// Nil for guest bookings.
	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	SlotID uint `gorm:"uniqueIndex" json:"slot_id"`
	Slot   Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot"`

	// Totals are snapshots taken at booking time; later price edits on
	// the offerings do not touch them.
	TotalPriceCents  int `json:"total_price_cents"`
	TotalDurationMin int `json:"total_duration_min"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	Phone string `gorm:"size:20;not null" json:"phone"`
	Notes string `gorm:"size:500" json:"notes"`

	Services []BookingService `gorm:"foreignKey:BookingID" json:"services"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService is one line item: the price and duration of a single
// offering frozen at booking time. Created once, never mutated.
type BookingService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"index" json:"booking_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	PriceCents  int `json:"price_cents"`
	DurationMin int `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
}
