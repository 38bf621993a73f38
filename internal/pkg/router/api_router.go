package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/FanSeatApp/FanSeat/app/controllers"
	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/FanSeatApp/FanSeat/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
	})

	// Public plan catalog and venue onboarding.
	v1.Get("/plans", controllers.HandleListPlans)
	v1.Get("/plans/:slug", controllers.HandleGetPlan)
	v1.Post("/venues", controllers.HandleRegisterVenue)

	// Everything below requires a venue API key.
	v1.Use(middleware.APIKeyAuthMiddleware())

	// Subscription reporting for the operator dashboard.
	v1.Get("/subscription", controllers.HandleGetSubscription)
	v1.Get("/subscription/usage", controllers.HandleGetUsageSummary)
	v1.Post("/subscription/cancel", controllers.HandleCancelSubscription)
	v1.Post("/subscription/downgrade", controllers.HandleScheduleDowngrade)

	// Quota-gated writes. Each handler consults the evaluator before the
	// insert and answers 403 with the machine-readable reason on denial.
	v1.Post("/branches", controllers.HandleCreateBranch)
	v1.Post("/matches", controllers.HandleCreateMatch)
	v1.Post("/bookings", controllers.HandleCreateBooking)
	v1.Post("/staff/invitations", controllers.HandleInviteStaff)
	v1.Post("/offers", controllers.HandleCreateOffer)

	// Feature-gated paths.
	ev := controllers.Evaluator()
	v1.Get("/analytics/overview",
		middleware.RequireFeature(ev, models.FeatureAnalytics),
		controllers.HandleAnalyticsOverview)
	v1.Get("/occupancy",
		middleware.RequireFeature(ev, models.FeatureOccupancyTracking),
		controllers.HandleOccupancy)
	v1.Post("/qr/scan",
		middleware.RequireFeature(ev, models.FeatureQRScanner),
		controllers.HandleQRScan)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
