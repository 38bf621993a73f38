package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription status tags. The column is a free-form string rather than an
// enum so billing can introduce new states (past_due was bolted on once
// already) without a schema change. Gating logic never branches on these
// values except for the cancelled override; entitlement is computed from
// expires_at vs now.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// Subscription is the current paid tier of a venue. One logical record per
// venue is "current" (the latest by starts_at); history rows are retained.
//
// The stored status lags reality: between expires_at and the next sweep run
// the column may still read "active". It is authoritative only for reporting
// and billing triggers, never for entitlement checks.
type Subscription struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UUID            string    `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	VenueID         uint      `gorm:"not null;index" json:"venue_id"`
	PlanID          uint      `gorm:"not null;index" json:"plan_id"`
	ScheduledPlanID *uint     `gorm:"default:null" json:"scheduled_plan_id,omitempty"`
	Status          string    `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`
	StartsAt        time.Time `gorm:"not null" json:"starts_at"`
	ExpiresAt       time.Time `gorm:"not null;index" json:"expires_at"`
	AutoRenew       bool      `gorm:"default:true" json:"auto_renew"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a public UUID when none was set explicitly.
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}

// IsCancelled reports whether the subscription was explicitly cancelled.
// Cancellation is a terminal override: a cancelled record grants nothing
// even while expires_at is still in the future.
func (s *Subscription) IsCancelled() bool {
	return s.Status == SubscriptionStatusCancelled
}

// HasScheduledDowngrade reports whether a plan change is pending for the
// next billing boundary.
func (s *Subscription) HasScheduledDowngrade() bool {
	return s.ScheduledPlanID != nil
}
