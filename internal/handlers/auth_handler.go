package handlers

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}

	if _, err := h.startSession(c, user); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	user, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}

	token, err := h.startSession(c, user)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "Login successful",
		User:    dto.NewUserResponse(user),
		Token:   token,
	})
}

// Logout clears both cookies. It needs no session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSession(c)
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user, err := h.authService.SessionUser(c.UserContext(), rawToken(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.SessionResponse{
				Authenticated: false,
				Error:         "Not authenticated",
			})
		}
		return err
	}

	resp := dto.NewUserResponse(user)
	return c.JSON(dto.SessionResponse{Authenticated: true, User: &resp})
}

func (h *AuthHandler) CheckUsername(c *fiber.Ctx) error {
	var req dto.CheckUsernameRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	available, err := h.authService.CheckUsername(c.UserContext(), req.Username)
	if err != nil {
		return fail(c, err)
	}

	message := "Username is available"
	if !available {
		message = "Username is already taken"
	}
	return c.JSON(dto.AvailabilityResponse{Available: available, Message: message})
}

func (h *AuthHandler) CheckEmail(c *fiber.Ctx) error {
	var req dto.CheckEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	available, err := h.authService.CheckEmail(c.UserContext(), req.Email)
	if err != nil {
		return fail(c, err)
	}

	message := "Email is available"
	if !available {
		message = "Email is already registered"
	}
	return c.JSON(dto.AvailabilityResponse{Available: available, Message: message})
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}

	userID, err := ownerFromBody(c, req.UserID)
	if err != nil {
		return fail(c, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password updated successfully"})
}

// startSession sets the auth-token and user-data cookies and returns the
// signed token.
func (h *AuthHandler) startSession(c *fiber.Ctx, user *models.User) (string, error) {
	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		return "", err
	}

	secure := h.cfg.SecureCookies()
	c.Cookie(&fiber.Cookie{
		Name:     owner.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	data, err := json.Marshal(dto.SessionUser{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     owner.UserDataCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		Expires:  expiresAt,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return token, nil
}

func (h *AuthHandler) clearSession(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{owner.SessionCookie, owner.UserDataCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  expired,
			HTTPOnly: name == owner.SessionCookie,
			Secure:   h.cfg.SecureCookies(),
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// rawToken reads the session cookie, falling back to a Bearer header.
func rawToken(c *fiber.Ctx) string {
	if token := c.Cookies(owner.SessionCookie); token != "" {
		return token
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
