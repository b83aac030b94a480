package models

import (
	"time"

	"gorm.io/datatypes"
)

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barbershop"`

	// Linked account, when the barber logs in themselves.
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Bio         string `gorm:"size:500" json:"bio"`

	Specialties datatypes.JSON `gorm:"type:jsonb" json:"specialties"`

	// Per-barber schedule; empty means the shop default applies.
	WorkingHours datatypes.JSON `gorm:"type:jsonb" json:"working_hours"`

	// Capability: which offerings this barber can perform.
	Services []Service `gorm:"many2many:barber_services;" json:"services,omitempty"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
