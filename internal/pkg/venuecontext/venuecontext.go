package venuecontext

import "github.com/gofiber/fiber/v2"

// Locals key under which the authenticated venue context is stored.
const ContextKey = "VENUE_CONTEXT"

// VenueContext represents the authenticated venue for a request.
type VenueContext struct {
	VenueID         uint   `json:"venue_id"`
	VenueUUID       string `json:"venue_uuid"`
	Name            string `json:"name"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// GetVenueContext retrieves the venue context from fiber context.
// Returns an unauthenticated context if none is set.
func GetVenueContext(c *fiber.Ctx) VenueContext {
	if ctx := c.Locals(ContextKey); ctx != nil {
		return ctx.(VenueContext)
	}
	return VenueContext{IsAuthenticated: false}
}

// SetVenueContext stores the venue context on the request.
func SetVenueContext(c *fiber.Ctx, vc VenueContext) {
	c.Locals(ContextKey, vc)
}

// GetVenueID returns the current venue's ID, or 0 if unauthenticated.
func GetVenueID(c *fiber.Ctx) uint {
	return GetVenueContext(c).VenueID
}

// IsAuthenticated checks if the request carries a valid venue identity.
func IsAuthenticated(c *fiber.Ctx) bool {
	return GetVenueContext(c).IsAuthenticated
}
