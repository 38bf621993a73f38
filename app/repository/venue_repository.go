package repository

import (
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"gorm.io/gorm"
)

// venueRepository implements the VenueRepository interface
type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository instance
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

// Create creates a new venue in the database
func (r *venueRepository) Create(venue *models.Venue) error {
	return r.db.Create(venue).Error
}

// GetByID retrieves a venue by its ID
func (r *venueRepository) GetByID(id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetByUUID retrieves a venue by its public UUID
func (r *venueRepository) GetByUUID(uuid string) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.Where("uuid = ?", uuid).First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetByAPIKeyHash retrieves a venue by the SHA-256 hash of its API key.
// Revoked keys never match because revocation clears the stored hash.
func (r *venueRepository) GetByAPIKeyHash(hash string) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.Where("api_key_hash = ? AND api_key_hash != ''", hash).First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// Update updates an existing venue in the database
func (r *venueRepository) Update(venue *models.Venue) error {
	return r.db.Save(venue).Error
}

// TouchAPIKeyUsage refreshes the last-used timestamp, best-effort.
func (r *venueRepository) TouchAPIKeyUsage(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Venue{}).
		Where("id = ?", id).
		Update("api_key_last_used_at", &now).Error
}

// Count returns the total number of venues
func (r *venueRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Venue{}).Count(&count).Error
	return count, err
}
