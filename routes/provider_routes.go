package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jkimani5/fundi_connect/handlers"
	"github.com/jkimani5/fundi_connect/middleware"
)

func ProviderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/providers/:providerId", handlers.GetProviderProfile)

	provider := api.Group("/provider", middleware.Protected(), middleware.ProviderRequired())
	provider.Get("/profile/me", handlers.GetMyProviderProfile)
	provider.Put("/profile/me", handlers.UpdateMyProviderProfile)
	provider.Get("/stats", handlers.GetMyProviderStats)
	provider.Get("/earnings", handlers.GetMyEarningsOverview)
}
