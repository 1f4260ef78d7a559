package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jkimani5/fundi_connect/services"
)

func GetProviderProfile(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("providerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid provider ID format"})
	}

	provider, err := services.GetProvider(providerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(provider)
}

func GetMyProviderProfile(c *fiber.Ctx) error {
	userID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	provider, err := services.EnsureProviderProfile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(provider)
}

type UpdateProviderRequest struct {
	Category   *string  `json:"category" validate:"omitempty,max=50"`
	Location   *string  `json:"location" validate:"omitempty,max=200"`
	Bio        *string  `json:"bio"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	PhotoURL   *string  `json:"photo_url" validate:"omitempty,url"`
	Services   []string `json:"services"`
	IsActive   *bool    `json:"is_active"`
}

func UpdateMyProviderProfile(c *fiber.Ctx) error {
	userID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	provider, err := services.UpdateProviderProfile(userID, services.UpdateProviderInput{
		Category:   req.Category,
		Location:   req.Location,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		PhotoURL:   req.PhotoURL,
		Services:   req.Services,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(provider)
}

func GetMyProviderStats(c *fiber.Ctx) error {
	userID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	provider, err := services.EnsureProviderProfile(userID)
	if err != nil {
		return respondError(c, err)
	}

	stats, err := services.GetProviderStats(provider.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func GetMyEarningsOverview(c *fiber.Ctx) error {
	userID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	provider, err := services.EnsureProviderProfile(userID)
	if err != nil {
		return respondError(c, err)
	}

	days, _ := strconv.Atoi(c.Query("days", "7"))
	overview, err := services.GetEarningsOverview(provider.ID, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}
