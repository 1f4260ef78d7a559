package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jkimani5/fundi_connect/handlers"
	"github.com/jkimani5/fundi_connect/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Get("/:bookingId", handlers.GetBooking)
	booking.Patch("/:bookingId/status", handlers.TransitionBooking)
	booking.Post("/:bookingId/payment", handlers.RecordPayment)
	booking.Post("/:bookingId/review", handlers.CreateReview)

	providerBooking := api.Group("/provider/bookings", middleware.Protected(), middleware.ProviderRequired())
	providerBooking.Get("", handlers.GetMyProviderBookings)
}
