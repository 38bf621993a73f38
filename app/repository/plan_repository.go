package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/cache"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

const (
	planCacheKeyByID  = "plans:id:%d"
	planCacheKeySlug  = "plans:slug:%s"
	planCacheDuration = 5 * time.Minute
)

// planRepository implements the PlanRepository interface. Plans are
// read-mostly, so lookups are cached in Redis with a short TTL; the cache is
// best-effort and every miss or cache fault falls through to the database.
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// GetByID retrieves a plan by its ID
func (r *planRepository) GetByID(id uint) (*models.Plan, error) {
	key := fmt.Sprintf(planCacheKeyByID, id)
	if plan := cachedPlan(key); plan != nil {
		return plan, nil
	}

	var plan models.Plan
	if err := r.db.First(&plan, id).Error; err != nil {
		return nil, err
	}
	storePlan(key, &plan)
	return &plan, nil
}

// GetBySlug retrieves a plan by its unique slug
func (r *planRepository) GetBySlug(slug string) (*models.Plan, error) {
	key := fmt.Sprintf(planCacheKeySlug, slug)
	if plan := cachedPlan(key); plan != nil {
		return plan, nil
	}

	var plan models.Plan
	if err := r.db.Where("slug = ?", slug).First(&plan).Error; err != nil {
		return nil, err
	}
	storePlan(key, &plan)
	return &plan, nil
}

// ListActive returns all plans currently offered, cheapest first
func (r *planRepository) ListActive() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ?", true).
		Order("price_cents ASC").Find(&plans).Error
	return plans, err
}

func cachedPlan(key string) *models.Plan {
	raw, err := cache.Get(key)
	if err != nil || raw == "" {
		return nil
	}
	var plan models.Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		log.Warnf("plan cache: dropping unreadable entry %s: %v", key, err)
		_ = cache.Delete(key)
		return nil
	}
	return &plan
}

func storePlan(key string, plan *models.Plan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := cache.Set(key, string(raw), planCacheDuration); err != nil {
		log.Warnf("plan cache: failed to store %s: %v", key, err)
	}
}
