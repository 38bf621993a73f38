package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

// HandleGetUsageSummary serves GET /api/v1/subscription/usage: the full
// usage/limits/features report consumed by the operator dashboard.
func HandleGetUsageSummary(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	summary, err := Evaluator().BuildSummary(vc.VenueID)
	if err != nil {
		fiberlog.Errorf("usage summary for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to build usage summary")
	}
	return response.Success(c, fiber.StatusOK, "Usage summary", summary)
}

// HandleGetSubscription serves GET /api/v1/subscription: the raw current
// subscription record plus its resolved effective state.
func HandleGetSubscription(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	res, err := Evaluator().Resolve(vc.VenueID)
	if err != nil {
		fiberlog.Errorf("subscription lookup for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load subscription")
	}

	return response.Success(c, fiber.StatusOK, "Subscription", fiber.Map{
		"subscription": res.Subscription,
		"plan":         res.Plan,
		"state":        res.State,
	})
}

// HandleCancelSubscription serves POST /api/v1/subscription/cancel.
// Cancellation is terminal and takes effect immediately for gating, even
// while expires_at is still in the future.
func HandleCancelSubscription(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	repos := repository.GetGlobalRepositories()
	sub, err := repos.Subscription.GetCurrentByVenue(vc.VenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "No subscription to cancel")
		}
		fiberlog.Errorf("cancel lookup for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load subscription")
	}
	if sub.IsCancelled() {
		return response.Success(c, fiber.StatusOK, "Subscription already cancelled", sub)
	}

	if err := repos.Subscription.Cancel(sub.ID); err != nil {
		fiberlog.Errorf("cancel subscription %d for venue %d failed: %v", sub.ID, vc.VenueID, err)
		return response.Internal(c, "Failed to cancel subscription")
	}
	return response.Success(c, fiber.StatusOK, "Subscription cancelled", nil)
}

type downgradeRequest struct {
	PlanSlug string `json:"plan_slug"`
}

// HandleScheduleDowngrade serves POST /api/v1/subscription/downgrade. The
// plan swap itself happens at the next billing boundary; this only records
// the pending change.
func HandleScheduleDowngrade(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req downgradeRequest
	if err := c.BodyParser(&req); err != nil || req.PlanSlug == "" {
		return response.ValidationError(c, "plan_slug is required")
	}

	repos := repository.GetGlobalRepositories()
	plan, err := repos.Plan.GetBySlug(req.PlanSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Plan not found")
		}
		fiberlog.Errorf("downgrade plan lookup %q failed: %v", req.PlanSlug, err)
		return response.Internal(c, "Failed to load plan")
	}

	sub, err := repos.Subscription.GetCurrentByVenue(vc.VenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "No subscription to downgrade")
		}
		fiberlog.Errorf("downgrade lookup for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load subscription")
	}
	if sub.IsCancelled() {
		return response.ValidationError(c, "Cannot downgrade a cancelled subscription")
	}

	if err := repos.Subscription.ScheduleDowngrade(sub.ID, plan.ID); err != nil {
		fiberlog.Errorf("schedule downgrade for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to schedule downgrade")
	}
	return response.Success(c, fiber.StatusOK, "Downgrade scheduled", fiber.Map{
		"scheduled_plan": plan.Slug,
	})
}
