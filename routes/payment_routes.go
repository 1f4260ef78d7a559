package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jkimani5/fundi_connect/handlers"
	"github.com/jkimani5/fundi_connect/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Get("/:paymentId", handlers.GetPayment)
}
