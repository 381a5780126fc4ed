package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Save handles both create (isEdit=false) and in-place replace.
func (h *ProjectHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}

	project, created, err := h.projectService.Save(c.UserContext(), userID, req.Project, req.IsEdit)
	if err != nil {
		return fail(c, err)
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.ProjectResponse{
			Message: "Project added successfully",
			Project: project,
		})
	}
	return c.JSON(dto.ProjectResponse{Message: "Project updated successfully", Project: project})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}

	if err := h.projectService.Delete(c.UserContext(), userID, req.ProjectID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Project deleted successfully"})
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return fail(c, err)
	}

	projects, err := h.projectService.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProjectListResponse{Projects: projects})
}

func (h *ProjectHandler) Published(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Username is required")
	}

	projects, err := h.projectService.ListPublished(c.UserContext(), username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ProjectListResponse{Projects: projects})
}
