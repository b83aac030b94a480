package models

import "time"

// Slot is a reserved window on a barber's agenda: either a confirmed
// booking's time range or an administrative block. Rows where
// IsBooked || IsBlocked are covered by the slots_busy_no_overlap
// exclusion constraint, so two busy windows for the same barber can
// never overlap.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	IsBooked  bool `gorm:"default:false" json:"is_booked"`
	IsBlocked bool `gorm:"default:false" json:"is_blocked"`

	BlockReason string `gorm:"size:255" json:"block_reason,omitempty"`

	// Back-reference for the calendar view.
	Booking *Booking `gorm:"foreignKey:SlotID" json:"booking,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
