package repository

import (
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new subscription record
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// GetByID retrieves a subscription by its ID
func (r *subscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetCurrentByVenue returns the latest subscription record for a venue.
// History rows are retained, so "current" is the newest by starts_at.
func (r *subscriptionRepository) GetCurrentByVenue(venueID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("venue_id = ?", venueID).
		Order("starts_at DESC").
		Order("id DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ScheduleDowngrade stores a pending plan change on the subscription. The
// plan swap itself happens at the next billing boundary, outside this engine.
func (r *subscriptionRepository) ScheduleDowngrade(subID uint, planID uint) error {
	return r.db.Model(&models.Subscription{}).
		Where("id = ?", subID).
		Update("scheduled_plan_id", planID).Error
}

// Cancel marks a subscription as explicitly cancelled. Terminal; the sweeper
// never touches cancelled records.
func (r *subscriptionRepository) Cancel(subID uint) error {
	return r.db.Model(&models.Subscription{}).
		Where("id = ?", subID).
		Updates(map[string]interface{}{
			"status":            models.SubscriptionStatusCancelled,
			"scheduled_plan_id": nil,
		}).Error
}

// MarkExpired flips status to expired for a lapsed subscription. The WHERE
// clause restricts the write to active/past_due rows, which makes re-runs
// no-ops and protects records cancelled by a concurrent request.
func (r *subscriptionRepository) MarkExpired(subID uint) (bool, error) {
	tx := r.db.Model(&models.Subscription{}).
		Where("id = ? AND status IN ?", subID, []string{
			models.SubscriptionStatusActive,
			models.SubscriptionStatusPastDue,
		}).
		Update("status", models.SubscriptionStatusExpired)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// ListExpirable returns subscriptions whose validity window has lapsed but
// whose stored status still reads active or past_due.
func (r *subscriptionRepository) ListExpirable(now time.Time, limit int) ([]models.Subscription, error) {
	var subs []models.Subscription
	q := r.db.Where("expires_at <= ? AND status IN ?", now, []string{
		models.SubscriptionStatusActive,
		models.SubscriptionStatusPastDue,
	}).Order("expires_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&subs).Error
	return subs, err
}
