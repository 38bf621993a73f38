package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

type createBookingRequest struct {
	MatchID uint `json:"match_id"`
	Seats   int  `json:"seats"`
}

// HandleCreateBooking serves POST /api/v1/bookings. Counts against the
// monthly booking quota by creation time.
func HandleCreateBooking(c *fiber.Ctx) error {
	vc, ok := requireVenue(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body")
	}
	if req.MatchID == 0 {
		return response.ValidationError(c, "match_id is required")
	}

	decision, err := Evaluator().CanCreateBooking(vc.VenueID)
	if resp, allowed := denyOrFail(c, decision, err); !allowed {
		return resp
	}

	booking := models.Booking{
		VenueID: vc.VenueID,
		MatchID: req.MatchID,
		Seats:   req.Seats,
		Status:  "confirmed",
	}
	if booking.Seats <= 0 {
		booking.Seats = 1
	}

	if err := database.GetDB().Create(&booking).Error; err != nil {
		fiberlog.Errorf("create booking for venue %d failed: %v", vc.VenueID, err)
		return response.Internal(c, "Failed to create booking")
	}
	return response.Success(c, fiber.StatusCreated, "Booking created", booking)
}
