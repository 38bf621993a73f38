package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

type createMatchRequest struct {
	BranchID  uint      `json:"branch_id"`
	Title     string    `json:"title"`
	KickoffAt time.Time `json:"kickoff_at"`
}

// HandleCreateMatch serves POST /api/v1/matches. Counts against the monthly
// match quota by creation time, not kickoff time.
func HandleCreateMatch(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req createMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body")
	}
	if req.KickoffAt.IsZero() {
		return response.ValidationError(c, "kickoff_at is required")
	}

	decision, err := Evaluator().CanCreateMatch(vc.VenueID)
	if resp, allowed := denyOrFail(c, decision, err); !allowed {
		return resp
	}

	match := models.Match{
		VenueID:   vc.VenueID,
		BranchID:  req.BranchID,
		Title:     req.Title,
		KickoffAt: req.KickoffAt,
	}
	if err := match.Validate(); err != nil {
		return response.ValidationError(c, "Invalid match", err.Error())
	}

	if err := database.GetDB().Create(&match).Error; err != nil {
		fiberlog.Errorf("create match for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to create match")
	}
	return response.Success(c, fiber.StatusCreated, "Match created", match)
}
