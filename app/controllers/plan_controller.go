package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

// HandleListPlans serves GET /api/v1/plans: the public plan catalog, cheapest
// first, for upgrade/downgrade pickers. No authentication required.
func HandleListPlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetPlanRepository().ListActive()
	if err != nil {
		fiberlog.Errorf("list plans failed: %v", err)
		return response.Internal(c, "Failed to load plans")
	}
	return response.Success(c, fiber.StatusOK, "Plans", plans)
}

// HandleGetPlan serves GET /api/v1/plans/:slug.
func HandleGetPlan(c *fiber.Ctx) error {
	slug := c.Params("slug")
	plan, err := repository.GetGlobalFactory().GetPlanRepository().GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Plan not found")
		}
		fiberlog.Errorf("load plan %q failed: %v", slug, err)
		return response.Internal(c, "Failed to load plan")
	}
	return response.Success(c, fiber.StatusOK, "Plan", plan)
}
