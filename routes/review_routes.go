package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jkimani5/fundi_connect/handlers"
	"github.com/jkimani5/fundi_connect/middleware"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/providers/:providerId/reviews", handlers.GetProviderReviews)

	reviews := api.Group("/reviews", middleware.Protected())
	reviews.Put("/:reviewId", handlers.UpdateReview)
	reviews.Delete("/:reviewId", handlers.DeleteReview)
	reviews.Post("/:reviewId/response", middleware.ProviderRequired(), handlers.RespondToReview)
}
