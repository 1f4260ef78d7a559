package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/jkimani5/fundi_connect/apperrors"
)

var validate = validator.New()

// actorFromContext extracts the authenticated user's id and role from the
// JWT claims the Protected middleware stored on the context.
func actorFromContext(c *fiber.Ctx) (uuid.UUID, string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}
	claims := token.Claims.(jwt.MapClaims)

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}

// statusForError maps a service error onto the HTTP status contract:
// 404 not found, 403 authorization, 400 validation, 409 conflict, 500
// everything else.
func statusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindAuthorization:
		return fiber.StatusForbidden
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// respondError writes the error as JSON. Internal failures are surfaced
// generically so storage details never leak to callers.
func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
