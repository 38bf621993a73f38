package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Staff invitation states. Only accepted members count against the staff
// limit; pending and declined invitations are free.
const (
	StaffInvitationInvited  = "invited"
	StaffInvitationAccepted = "accepted"
	StaffInvitationDeclined = "declined"
)

// StaffMember is an employee account attached to a venue via an invitation.
type StaffMember struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	VenueID          uint           `gorm:"not null;index" json:"venue_id"`
	Email            string         `gorm:"type:varchar(200);not null" json:"email" validate:"required,email"`
	Role             string         `gorm:"type:varchar(50);default:'staff'" json:"role"`
	InvitationStatus string         `gorm:"type:varchar(32);not null;default:'invited';index" json:"invitation_status"`
	InvitedAt        time.Time      `gorm:"autoCreateTime" json:"invited_at"`
	AcceptedAt       *time.Time     `gorm:"default:null" json:"accepted_at,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *StaffMember) Validate() error {
	return validator.New().Struct(s)
}

// IsAccepted reports whether the invitation was accepted.
func (s *StaffMember) IsAccepted() bool {
	return s.InvitationStatus == StaffInvitationAccepted
}
