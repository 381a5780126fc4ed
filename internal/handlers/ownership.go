package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ownerFromBody checks the userId a mutation names against the session.
// The session is authoritative: naming anyone else is forbidden.
func ownerFromBody(c *fiber.Ctx, bodyUserID string) (uuid.UUID, error) {
	bodyUserID = strings.TrimSpace(bodyUserID)
	if bodyUserID == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID is required")
	}

	sessionID, err := owner.GetUserID(c)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: invalid or expired token")
	}

	id, err := uuid.Parse(bodyUserID)
	if err != nil {
		return uuid.Nil, services.ErrUserNotFound
	}
	if id != sessionID {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
	return id, nil
}

func sessionUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := owner.GetUserID(c)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: invalid or expired token")
	}
	return id, nil
}
