package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("Email already exists")
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrUserNotFound       = errors.New("User not found")
	ErrProjectNotFound    = errors.New("Project not found")
	ErrSkillNotFound      = errors.New("Skill not found")
	ErrMessageNotFound    = errors.New("Message not found")
	ErrDuplicateProjectID = errors.New("Project ID already exists")
	ErrDuplicateSkillID   = errors.New("Skill ID already exists")
)

// ValidationError carries a message that is safe to show the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// isDuplicateKey recognises a unique-constraint violation from either
// driver, translated or not.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
