package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

type createOfferRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DiscountPct int    `json:"discount_pct"`
}

// HandleCreateOffer serves POST /api/v1/offers. Only active, non-deleted
// offers count against the plan limit.
func HandleCreateOffer(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req createOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body")
	}

	decision, err := Evaluator().CanCreateOffer(vc.VenueID)
	if resp, allowed := denyOrFail(c, decision, err); !allowed {
		return resp
	}

	offer := models.Offer{
		VenueID:     vc.VenueID,
		Title:       req.Title,
		Description: req.Description,
		DiscountPct: req.DiscountPct,
		IsActive:    true,
	}
	if err := offer.Validate(); err != nil {
		return response.ValidationError(c, "Invalid offer", err.Error())
	}

	if err := database.GetDB().Create(&offer).Error; err != nil {
		fiberlog.Errorf("create offer for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to create offer")
	}
	return response.Success(c, fiber.StatusCreated, "Offer created", offer)
}
