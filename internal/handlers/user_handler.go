package handlers

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}
	if req.Updates == nil {
		return errorJSON(c, fiber.StatusBadRequest, "Updates are required")
	}

	user, err := h.userService.UpdateAccount(c.UserContext(), userID, req.Updates)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.AccountResponse{
		Message: "Account updated successfully",
		User:    dto.NewUserResponse(user),
	})
}

func (h *UserHandler) UpdateAbout(c *fiber.Ctx) error {
	var req dto.UpdateAboutRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}
	if req.About == nil {
		return errorJSON(c, fiber.StatusBadRequest, "About data is required")
	}

	about, err := h.userService.UpdateAbout(c.UserContext(), userID, req.About)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.AboutResponse{Message: "About updated successfully", About: about})
}

func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}
	if req.IsActive == nil {
		return errorJSON(c, fiber.StatusBadRequest, "isActive is required")
	}

	user, err := h.userService.SetActive(c.UserContext(), userID, *req.IsActive)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.AccountResponse{
		Message: "Status updated successfully",
		User:    dto.NewUserResponse(user),
	})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return fail(c, err)
	}

	me, err := h.userService.Me(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(me)
}

// Portfolio serves the public JSON view of a user's portfolio.
func (h *UserHandler) Portfolio(c *fiber.Ctx) error {
	view, err := h.userService.Portfolio(c.UserContext(), c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}
