package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/venuecontext"
)

type stubChecker struct {
	has bool
	err error
}

func (s stubChecker) HasFeature(venueID uint, flag models.Feature) (bool, error) {
	return s.has, s.err
}

func featureGateApp(checker FeatureChecker, authenticated bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if authenticated {
			venuecontext.SetVenueContext(c, venuecontext.VenueContext{
				VenueID:         1,
				Name:            "Nordkurve Sportsbar",
				IsAuthenticated: true,
			})
		}
		return c.Next()
	})
	app.Get("/analytics", RequireFeature(checker, models.FeatureAnalytics), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireFeaturePasses(t *testing.T) {
	app := featureGateApp(stubChecker{has: true}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireFeatureDenies(t *testing.T) {
	app := featureGateApp(stubChecker{has: false}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"success":false`)
	assert.Contains(t, string(body), string(models.FeatureAnalytics))
}

func TestRequireFeatureFaultIsNotADenial(t *testing.T) {
	app := featureGateApp(stubChecker{err: errors.New("store unreachable")}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRequireFeatureUnauthenticated(t *testing.T) {
	app := featureGateApp(stubChecker{has: true}, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
