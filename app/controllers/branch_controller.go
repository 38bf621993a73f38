package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

type createBranchRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	SeatCount int    `json:"seat_count"`
}

// HandleCreateBranch serves POST /api/v1/branches. The evaluator gates the
// write; enforcement is best-effort per the engine's caller contract, so two
// concurrent requests can momentarily exceed the limit.
func HandleCreateBranch(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req createBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body")
	}

	decision, err := Evaluator().CanCreateBranch(vc.VenueID)
	if resp, allowed := denyOrFail(c, decision, err); !allowed {
		return resp
	}

	branch := models.Branch{
		VenueID:   vc.VenueID,
		Name:      req.Name,
		Address:   req.Address,
		SeatCount: req.SeatCount,
	}
	if err := branch.Validate(); err != nil {
		return response.ValidationError(c, "Invalid branch", err.Error())
	}

	if err := database.GetDB().Create(&branch).Error; err != nil {
		fiberlog.Errorf("create branch for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to create branch")
	}
	return response.Success(c, fiber.StatusCreated, "Branch created", branch)
}
