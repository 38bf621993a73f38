package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Match is a scheduled viewing event at a branch. The monthly quota counts
// matches by their creation timestamp, not the kickoff date: a match created
// last month never counts against this month's allowance.
type Match struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	VenueID   uint           `gorm:"not null;index" json:"venue_id"`
	BranchID  uint           `gorm:"not null;index" json:"branch_id"`
	Title     string         `gorm:"type:varchar(200)" json:"title" validate:"required,min=2,max=200"`
	KickoffAt time.Time      `gorm:"not null;index" json:"kickoff_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Match) Validate() error {
	return validator.New().Struct(m)
}
