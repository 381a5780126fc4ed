package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type PageHandler struct {
	userService *services.UserService
	cfg         *config.Config
}

func NewPageHandler(userService *services.UserService, cfg *config.Config) *PageHandler {
	return &PageHandler{userService: userService, cfg: cfg}
}

type pageData struct {
	Title       string
	Next        string
	Portfolio   *dto.PortfolioResponse
	SkillGroups []skillGroup
	Me          *dto.MeResponse
	UserID      string
	PublicURL   string
	Published   int
}

type skillGroup struct {
	Category string
	Skills   []models.Skill
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "login", pageData{Title: "Sign in", Next: safeNext(c.Query("next"))})
}

func (h *PageHandler) Register(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "register", pageData{Title: "Create your portfolio"})
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	session, ok := c.Locals(middleware.SessionLocal).(*services.Session)
	if !ok {
		return c.Redirect("/login?next=/dashboard", fiber.StatusFound)
	}

	me, err := h.userService.Me(c.UserContext(), session.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Redirect("/login?next=/dashboard", fiber.StatusFound)
		}
		return err
	}

	published := 0
	for _, p := range me.Projects {
		if p.IsPublished() {
			published++
		}
	}
	return render(c, fiber.StatusOK, "dashboard", pageData{
		Title:     "Dashboard",
		Me:        me,
		UserID:    me.User.ID.String(),
		PublicURL: h.cfg.AppURL + "/" + me.User.Username,
		Published: published,
	})
}

// Portfolio renders the public page for /:username.
func (h *PageHandler) Portfolio(c *fiber.Ctx) error {
	username := c.Params("username")
	if services.IsReservedUsername(username) {
		return render(c, fiber.StatusNotFound, "notfound", pageData{Title: "Not found"})
	}

	view, err := h.userService.Portfolio(c.UserContext(), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return render(c, fiber.StatusNotFound, "notfound", pageData{Title: "Not found"})
		}
		return err
	}

	data := pageData{Title: view.User.Name, Portfolio: view}
	if !view.User.IsActive {
		return render(c, fiber.StatusOK, "offline", data)
	}
	data.SkillGroups = groupSkills(view.Skills)
	return render(c, fiber.StatusOK, "portfolio", data)
}

// groupSkills keeps the incoming order, which is already by category.
func groupSkills(skills []models.Skill) []skillGroup {
	var groups []skillGroup
	for _, s := range skills {
		if n := len(groups); n > 0 && groups[n-1].Category == s.Category {
			groups[n-1].Skills = append(groups[n-1].Skills, s)
			continue
		}
		groups = append(groups, skillGroup{Category: s.Category, Skills: []models.Skill{s}})
	}
	return groups
}

// safeNext only allows same-site relative redirects.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/dashboard"
	}
	return next
}

func render(c *fiber.Ctx, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return c.Status(status).Type("html", "utf-8").Send(buf.Bytes())
}
