package middleware

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
	"github.com/FanSeatApp/FanSeat/internal/pkg/venuecontext"
)

// FeatureChecker is the slice of the evaluator the feature gate needs.
type FeatureChecker interface {
	HasFeature(venueID uint, flag models.Feature) (bool, error)
}

// RequireFeature guards a feature-gated code path. Denials return the 403
// envelope; engine faults (store unreachable, broken plan reference) return
// 500 and are never downgraded to a deny.
func RequireFeature(checker FeatureChecker, flag models.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vc := venuecontext.GetVenueContext(c)
		if !vc.IsAuthenticated {
			return response.Unauthorized(c, "Authentication required")
		}

		ok, err := checker.HasFeature(vc.VenueID, flag)
		if err != nil {
			fiberlog.Errorf("feature check %q for venue %d failed: %v", flag, vc.VenueID, err)
			return response.Internal(c, "Entitlement check failed")
		}
		if !ok {
			return response.Forbidden(c, "Feature not available on your plan", string(flag))
		}
		return c.Next()
	}
}
