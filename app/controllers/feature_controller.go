package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/entitlements"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

// Feature-gated endpoints. The router wraps each with RequireFeature, so by
// the time a handler runs the venue's plan is known to carry the flag.

// HandleAnalyticsOverview serves GET /api/v1/analytics/overview.
func HandleAnalyticsOverview(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	usage := repository.GetGlobalFactory().GetUsageRepository()
	from, to := entitlements.MonthWindow(Evaluator().Now())

	matches, err := usage.CountMatchesInWindow(vc.VenueID, from, to)
	if err != nil {
		fiberlog.Errorf("analytics overview for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load analytics")
	}
	bookings, err := usage.CountBookingsInWindow(vc.VenueID, from, to)
	if err != nil {
		fiberlog.Errorf("analytics overview for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load analytics")
	}

	return response.Success(c, fiber.StatusOK, "Analytics overview", fiber.Map{
		"period_start":        from,
		"matches_this_month":  matches,
		"bookings_this_month": bookings,
	})
}

// HandleOccupancy serves GET /api/v1/occupancy.
func HandleOccupancy(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	usage := repository.GetGlobalFactory().GetUsageRepository()
	branches, err := usage.CountBranches(vc.VenueID)
	if err != nil {
		fiberlog.Errorf("occupancy for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load occupancy")
	}
	from, to := entitlements.MonthWindow(Evaluator().Now())
	bookings, err := usage.CountBookingsInWindow(vc.VenueID, from, to)
	if err != nil {
		fiberlog.Errorf("occupancy for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to load occupancy")
	}

	return response.Success(c, fiber.StatusOK, "Occupancy", fiber.Map{
		"branches":            branches,
		"bookings_this_month": bookings,
	})
}

type qrScanRequest struct {
	Code string `json:"code"`
}

// HandleQRScan serves POST /api/v1/qr/scan. The actual check-in workflow is
// owned by the booking subsystem; this endpoint only accepts the scan after
// the feature gate has passed.
func HandleQRScan(c *fiber.Ctx) error {
	if _, ok := requireVenue(c); !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req qrScanRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return response.ValidationError(c, "A scan code is required")
	}

	return response.Success(c, fiber.StatusAccepted, "Scan accepted", fiber.Map{
		"code": req.Code,
	})
}
