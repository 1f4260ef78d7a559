package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jkimani5/fundi_connect/apperrors"
	"github.com/jkimani5/fundi_connect/services"
)

type RecordPaymentRequest struct {
	Method  string         `json:"method" validate:"required,oneof=card mpesa cash"`
	Amount  float64        `json:"amount" validate:"required,gt=0"`
	Details map[string]any `json:"details"`
}

func RecordPayment(c *fiber.Ctx) error {
	customerID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.GetBooking(bookingID)
	if err != nil {
		return respondError(c, err)
	}
	if booking.CustomerID != customerID {
		return respondError(c, apperrors.Authorization("only the booking's customer can pay for it"))
	}

	payment, err := services.RecordPayment(bookingID, req.Method, req.Amount, req.Details)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(payment)
}

func GetPayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	payment, err := services.GetPayment(paymentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}
