package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
)

type registerVenueRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleRegisterVenue serves POST /api/v1/venues: onboards a venue account
// and issues its API key. The raw key is returned exactly once; only its
// hash is stored.
func HandleRegisterVenue(c *fiber.Ctx) error {
	var req registerVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body")
	}

	venue := models.Venue{
		Name:   req.Name,
		Email:  req.Email,
		Status: models.VENUE_STATUS_ACTIVE,
	}
	if err := venue.Validate(); err != nil {
		return response.ValidationError(c, "Invalid venue", err.Error())
	}

	rawKey, err := venue.IssueAPIKey()
	if err != nil {
		fiberlog.Errorf("issue api key failed: %v", err)
		return response.Internal(c, "Failed to issue API key")
	}

	if err := repository.GetGlobalFactory().GetVenueRepository().Create(&venue); err != nil {
		fiberlog.Errorf("register venue %q failed: %v", req.Email, err)
		return response.Internal(c, "Failed to register venue")
	}

	return response.Success(c, fiber.StatusCreated, "Venue registered", fiber.Map{
		"venue":   venue,
		"api_key": rawKey,
	})
}
