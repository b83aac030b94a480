package models

import (
	"time"

	"gorm.io/datatypes"
)

type Barbershop struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	Type        string `gorm:"size:50" json:"type"`

	Address   string  `gorm:"size:255" json:"address"`
	Phone     string  `gorm:"size:20" json:"phone"`
	Email     string  `gorm:"size:100" json:"email"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Rating float64 `gorm:"default:0" json:"rating"`

	// Public URLs of the shop gallery, jsonb array.
	Images datatypes.JSON `gorm:"type:jsonb" json:"images"`

	// Shop-wide default schedule; barbers without a schedule of their
	// own inherit it.
	WorkingHours datatypes.JSON `gorm:"type:jsonb" json:"working_hours"`

	Timezone string `gorm:"size:64;default:'UTC'" json:"timezone"`

	CancelLeadMin int `gorm:"default:120" json:"cancel_lead_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
