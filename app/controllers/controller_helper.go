package controllers

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/entitlements"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
	"github.com/FanSeatApp/FanSeat/internal/pkg/venuecontext"
)

var (
	evaluator     *entitlements.Evaluator
	evaluatorOnce sync.Once
)

// Evaluator returns the shared entitlement evaluator, built lazily over the
// global repositories. The evaluator itself is stateless and safe to share.
func Evaluator() *entitlements.Evaluator {
	evaluatorOnce.Do(func() {
		repos := repository.GetGlobalRepositories()
		evaluator = entitlements.NewEvaluator(
			repos.Subscription,
			repos.Plan,
			repos.Usage,
			entitlements.NewGracePolicyFromEnv(),
		)
	})
	return evaluator
}

// requireVenue resolves the authenticated venue or writes a 401.
func requireVenue(c *fiber.Ctx) (venuecontext.VenueContext, bool) {
	vc := venuecontext.GetVenueContext(c)
	if !vc.IsAuthenticated {
		return vc, false
	}
	return vc, true
}

// denyOrFail maps a gating outcome to the HTTP surface: engine faults become
// 500, denials become the 403 envelope, and an allowed decision returns
// (nil, true) so the handler can proceed with the actual write.
func denyOrFail(c *fiber.Ctx, decision entitlements.Decision, err error) (error, bool) {
	if err != nil {
		if errors.Is(err, entitlements.ErrPlanMissing) {
			fiberlog.Errorf("entitlement data integrity fault: %v", err)
		} else {
			fiberlog.Errorf("entitlement check failed: %v", err)
		}
		return response.Internal(c, "Entitlement check failed"), false
	}
	if !decision.Allowed {
		return response.Forbidden(c, decision.Reason, decision.Reason), false
	}
	return nil, true
}
