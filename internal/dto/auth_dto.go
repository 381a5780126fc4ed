package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	DisplayUsername string `json:"displayUsername,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
}

type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// UserResponse is the only shape in which a user leaves the server. It has
// no password field by construction.
type UserResponse struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Username        string       `json:"username"`
	DisplayUsername string       `json:"displayUsername,omitempty"`
	IsActive        bool         `json:"isActive"`
	About           models.About `json:"about"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Username:        u.Username,
		DisplayUsername: u.DisplayUsername,
		IsActive:        u.IsActive,
		About:           u.About.Data(),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// SessionUser is the script-readable subset stored in the user-data cookie.
type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type UpdatePasswordRequest struct {
	UserID          string `json:"userId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
