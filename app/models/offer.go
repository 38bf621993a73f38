package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Offer is a promotional offer published by a venue. Soft-deleted or
// deactivated offers do not count against the plan's offer limit.
type Offer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	VenueID     uint           `gorm:"not null;index" json:"venue_id"`
	Title       string         `gorm:"type:varchar(200)" json:"title" validate:"required,min=2,max=200"`
	Description string         `gorm:"type:text" json:"description" validate:"max=2000"`
	DiscountPct int            `gorm:"default:0" json:"discount_pct" validate:"min=0,max=100"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Offer) Validate() error {
	return validator.New().Struct(o)
}
