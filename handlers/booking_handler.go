package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/models"
	"github.com/jkimani5/fundi_connect/services"
)

type CreateBookingRequest struct {
	ProviderID  string  `json:"provider_id" validate:"required,uuid"`
	Service     string  `json:"service" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Location    string  `json:"location" validate:"max=200"`
	ScheduledAt string  `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Notes       string  `json:"notes"`
	Cost        float64 `json:"cost" validate:"gte=0"`
}

func CreateBooking(c *fiber.Ctx) error {
	customerID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	providerID, _ := uuid.Parse(req.ProviderID)
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	booking, err := services.CreateBooking(services.CreateBookingInput{
		CustomerID:  customerID,
		ProviderID:  providerID,
		Service:     req.Service,
		Description: req.Description,
		Location:    req.Location,
		ScheduledAt: scheduledAt,
		Notes:       req.Notes,
		Cost:        req.Cost,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

func TransitionBooking(c *fiber.Ctx) error {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.TransitionBooking(bookingID, actorID, actorRole, models.BookingStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(booking)
}

func GetBooking(c *fiber.Ctx) error {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	booking, err := services.GetBooking(bookingID)
	if err != nil {
		return respondError(c, err)
	}

	if actorRole != models.RoleAdmin && booking.CustomerID != actorID {
		provider, perr := services.GetProvider(booking.ProviderID)
		if perr != nil || provider.UserID != actorID {
			return respondError(c, apperrors.Authorization("you are not a party to this booking"))
		}
	}

	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	customerID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	bookings, err := services.ListCustomerBookings(customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}

func GetMyProviderBookings(c *fiber.Ctx) error {
	userID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	provider, err := services.EnsureProviderProfile(userID)
	if err != nil {
		return respondError(c, err)
	}

	bookings, err := services.ListProviderBookings(provider.ID, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}
