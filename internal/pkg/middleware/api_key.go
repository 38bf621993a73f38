package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/database"
	"github.com/FanSeatApp/FanSeat/internal/pkg/response"
	"github.com/FanSeatApp/FanSeat/internal/pkg/venuecontext"
)

// APIKeyAuthMiddleware authenticates requests carrying a venue API key header.
func APIKeyAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return response.Unauthorized(c, "Missing API key")
		}

		if database.GetDB() == nil {
			fiberlog.Error("api key middleware: database unavailable")
			return response.Internal(c, "Database unavailable")
		}

		hash := models.HashAPIKey(apiKey)
		repo := repository.GetGlobalFactory().GetVenueRepository()
		venue, err := repo.GetByAPIKeyHash(hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Invalid API key")
			}
			fiberlog.Errorf("api key lookup failed: %v", err)
			return response.Internal(c, "API key verification failed")
		}

		if !venue.IsActive() {
			return response.Forbidden(c, "Venue account inactive")
		}

		// Refresh last-used timestamp best-effort.
		if err := repo.TouchAPIKeyUsage(venue.ID); err != nil {
			fiberlog.Warnf("failed to update api key usage timestamp for venue %d: %v", venue.ID, err)
		}

		venuecontext.SetVenueContext(c, venuecontext.VenueContext{
			VenueID:         venue.ID,
			VenueUUID:       venue.UUID,
			Name:            venue.Name,
			IsAuthenticated: true,
		})

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
