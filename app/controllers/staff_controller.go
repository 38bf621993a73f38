package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

type inviteStaffRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleInviteStaff serves POST /api/v1/staff/invitations. Only accepted
// invitations consume quota, but the invite itself is gated so a venue at
// its staff limit cannot queue up more members.
func HandleInviteStaff(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req inviteStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body")
	}

	decision, err := Evaluator().CanAddStaff(vc.VenueID)
	if resp, allowed := denyOrFail(c, decision, err); !allowed {
		return resp
	}

	member := models.StaffMember{
		VenueID:          vc.VenueID,
		Email:            req.Email,
		Role:             req.Role,
		InvitationStatus: models.StaffInvitationInvited,
	}
	if member.Role == "" {
		member.Role = "staff"
	}
	if err := member.Validate(); err != nil {
		return response.ValidationError(c, "Invalid staff invitation", err.Error())
	}

	if err := database.GetDB().Create(&member).Error; err != nil {
		fiberlog.Errorf("invite staff for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to create staff invitation")
	}
	return response.Success(c, fiber.StatusCreated, "Staff invitation created", member)
}
