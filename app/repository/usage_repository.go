package repository

import (
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"gorm.io/gorm"
)

// usageRepository implements the UsageRepository interface with read-only
// aggregation queries against the tables owned by the other subsystems.
type usageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository instance
func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

// CountBranches returns the cumulative branch count of a venue
func (r *usageRepository) CountBranches(venueID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Branch{}).
		Where("venue_id = ?", venueID).
		Count(&count).Error
	return count, err
}

// CountMatchesInWindow counts matches created inside [from, to)
func (r *usageRepository) CountMatchesInWindow(venueID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Match{}).
		Where("venue_id = ? AND created_at >= ? AND created_at < ?", venueID, from, to).
		Count(&count).Error
	return count, err
}

// CountBookingsInWindow counts bookings created inside [from, to)
func (r *usageRepository) CountBookingsInWindow(venueID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("venue_id = ? AND created_at >= ? AND created_at < ?", venueID, from, to).
		Count(&count).Error
	return count, err
}

// CountAcceptedStaff counts staff members with an accepted invitation.
// Pending and declined invitations do not consume quota.
func (r *usageRepository) CountAcceptedStaff(venueID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.StaffMember{}).
		Where("venue_id = ? AND invitation_status = ?", venueID, models.StaffInvitationAccepted).
		Count(&count).Error
	return count, err
}

// CountActiveOffers counts non-deleted, active offers. Soft-deleted rows are
// excluded by GORM's default scope on DeletedAt.
func (r *usageRepository) CountActiveOffers(venueID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Offer{}).
		Where("venue_id = ? AND is_active = ?", venueID, true).
		Count(&count).Error
	return count, err
}
