package repository

import (
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"gorm.io/gorm"
)

// VenueRepository defines the interface for venue (tenant) database operations
type VenueRepository interface {
	Create(venue *models.Venue) error
	GetByID(id uint) (*models.Venue, error)
	GetByUUID(uuid string) (*models.Venue, error)
	GetByAPIKeyHash(hash string) (*models.Venue, error)
	Update(venue *models.Venue) error
	TouchAPIKeyUsage(id uint) error
	Count() (int64, error)
}

// PlanRepository is the plan catalog: read-only plan lookups.
// Plan authoring is an external admin concern, so no write path exists here.
type PlanRepository interface {
	GetByID(id uint) (*models.Plan, error)
	GetBySlug(slug string) (*models.Plan, error)
	ListActive() ([]models.Plan, error)
}

// SubscriptionRepository defines the interface for subscription records.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	// GetCurrentByVenue returns the latest subscription record for a venue,
	// or gorm.ErrRecordNotFound when the venue never subscribed.
	GetCurrentByVenue(venueID uint) (*models.Subscription, error)
	// ScheduleDowngrade stores a pending plan change; it takes effect at the
	// next billing boundary, outside this engine.
	ScheduleDowngrade(subID uint, planID uint) error
	Cancel(subID uint) error
	// MarkExpired conditionally flips status to expired. The update is a
	// no-op on records already expired or cancelled, so overlapping sweep
	// runs cannot corrupt concurrently-cancelled rows.
	MarkExpired(subID uint) (bool, error)
	// ListExpirable returns subscriptions whose validity window has lapsed
	// but whose status still reads active or past_due.
	ListExpirable(now time.Time, limit int) ([]models.Subscription, error)
}

// UsageRepository aggregates current resource usage per venue from the
// tables owned by the booking, staffing and promotion subsystems. All reads
// are venue-scoped; monthly counters are scoped to the current calendar
// month by the resource's creation timestamp.
type UsageRepository interface {
	CountBranches(venueID uint) (int64, error)
	CountMatchesInWindow(venueID uint, from, to time.Time) (int64, error)
	CountBookingsInWindow(venueID uint, from, to time.Time) (int64, error)
	CountAcceptedStaff(venueID uint) (int64, error)
	CountActiveOffers(venueID uint) (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Venue        VenueRepository
	Plan         PlanRepository
	Subscription SubscriptionRepository
	Usage        UsageRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Venue:        NewVenueRepository(db),
		Plan:         NewPlanRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Usage:        NewUsageRepository(db),
	}
}
