package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Branch is a sub-location of a venue (a hall, terrace or screen room that
// can be booked independently). Owned by the booking subsystem; the
// entitlement engine only counts rows and gates creation.
type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	VenueID   uint           `gorm:"not null;index" json:"venue_id"`
	Name      string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Address   string         `gorm:"type:varchar(255);default:''" json:"address" validate:"max=255"`
	SeatCount int            `gorm:"default:0" json:"seat_count" validate:"min=0"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Branch) Validate() error {
	return validator.New().Struct(b)
}
