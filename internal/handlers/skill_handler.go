package handlers

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SkillHandler struct {
	skillService *services.SkillService
}

func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (h *SkillHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}

	skill, created, err := h.skillService.Save(c.UserContext(), userID, req.Skill, req.IsEdit)
	if err != nil {
		return fail(c, err)
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.SkillResponse{
			Message: "Skill added successfully",
			Skill:   skill,
		})
	}
	return c.JSON(dto.SkillResponse{Message: "Skill updated successfully", Skill: skill})
}

func (h *SkillHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}

	if err := h.skillService.Delete(c.UserContext(), userID, req.SkillID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Skill deleted successfully"})
}

func (h *SkillHandler) List(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return fail(c, err)
	}

	skills, err := h.skillService.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.SkillListResponse{Skills: skills})
}
