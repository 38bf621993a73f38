package models

import (
	"time"
)

// Resource identifies a countable, limit-enforced tenant resource.
type Resource string

const (
	ResourceBranches Resource = "branches"
	ResourceMatches  Resource = "matches"
	ResourceBookings Resource = "bookings"
	ResourceStaff    Resource = "staff_members"
	ResourceOffers   Resource = "offers"
)

// Feature is a plan feature flag name.
type Feature string

const (
	FeatureAnalytics         Feature = "analytics"
	FeatureBranding          Feature = "branding"
	FeaturePrioritySupport   Feature = "priority_support"
	FeatureChat              Feature = "chat"
	FeatureQRScanner         Feature = "qr_scanner"
	FeatureOccupancyTracking Feature = "occupancy_tracking"
)

// AllFeatures lists every known feature flag, in report order.
var AllFeatures = []Feature{
	FeatureAnalytics,
	FeatureBranding,
	FeaturePrioritySupport,
	FeatureChat,
	FeatureQRScanner,
	FeatureOccupancyTracking,
}

// Plan is a subscription tier with resource limits and feature flags.
// Limit columns are nullable on purpose: nil means unlimited. Plans are
// read-only from the engine's perspective; authoring happens in the admin
// backend.
type Plan struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Slug                 string    `gorm:"type:varchar(50);uniqueIndex" json:"slug"`
	Name                 string    `gorm:"type:varchar(100)" json:"name"`
	PriceCents           int       `gorm:"default:0" json:"price_cents"`
	IsActive             bool      `gorm:"default:true;index" json:"is_active"`
	MaxBranches          *int      `gorm:"default:null" json:"max_branches"`
	MaxMatchesPerMonth   *int      `gorm:"default:null" json:"max_matches_per_month"`
	MaxBookingsPerMonth  *int      `gorm:"default:null" json:"max_bookings_per_month"`
	MaxStaffMembers      *int      `gorm:"default:null" json:"max_staff_members"`
	MaxOffers            *int      `gorm:"default:null" json:"max_offers"`
	HasAnalytics         bool      `gorm:"default:false" json:"has_analytics"`
	HasBranding          bool      `gorm:"default:false" json:"has_branding"`
	HasPrioritySupport   bool      `gorm:"default:false" json:"has_priority_support"`
	HasChat              bool      `gorm:"default:false" json:"has_chat"`
	HasQRScanner         bool      `gorm:"default:false" json:"has_qr_scanner"`
	HasOccupancyTracking bool      `gorm:"default:false" json:"has_occupancy_tracking"`
	CommissionRate       *float64  `gorm:"default:null" json:"commission_rate"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// LimitFor returns the plan limit for a resource; nil means unlimited.
func (p *Plan) LimitFor(resource Resource) *int {
	switch resource {
	case ResourceBranches:
		return p.MaxBranches
	case ResourceMatches:
		return p.MaxMatchesPerMonth
	case ResourceBookings:
		return p.MaxBookingsPerMonth
	case ResourceStaff:
		return p.MaxStaffMembers
	case ResourceOffers:
		return p.MaxOffers
	default:
		return nil
	}
}

// HasFeature resolves a feature flag by name. Unknown flags are false.
func (p *Plan) HasFeature(flag Feature) bool {
	switch flag {
	case FeatureAnalytics:
		return p.HasAnalytics
	case FeatureBranding:
		return p.HasBranding
	case FeaturePrioritySupport:
		return p.HasPrioritySupport
	case FeatureChat:
		return p.HasChat
	case FeatureQRScanner:
		return p.HasQRScanner
	case FeatureOccupancyTracking:
		return p.HasOccupancyTracking
	default:
		return false
	}
}

// FeatureMap returns all feature flags of the plan keyed by flag name.
func (p *Plan) FeatureMap() map[Feature]bool {
	m := make(map[Feature]bool, len(AllFeatures))
	for _, f := range AllFeatures {
		m[f] = p.HasFeature(f)
	}
	return m
}
