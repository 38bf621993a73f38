package models

import (
	"time"
)

// Booking is a seat reservation for a match, written by the reservation
// workflow. The engine reads it only to aggregate the monthly booking count.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	MatchID   uint      `gorm:"not null;index" json:"match_id"`
	Seats     int       `gorm:"default:1" json:"seats"`
	Status    string    `gorm:"type:varchar(32);not null;default:'confirmed'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
