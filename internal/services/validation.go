package services

import (
	"regexp"
	"strings"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit, in bytes
	minUsernameLength = 3
	maxUsernameLength = 30
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
)

// ValidateEmail checks the address shape only; deliverability is not checked.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return invalid("Invalid email format")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLength {
		return invalid("Password must be at most 72 bytes")
	}
	return nil
}

// reservedUsernames are first path segments served by the app itself.
// Routing is case-insensitive, so they are matched lower-cased.
var reservedUsernames = map[string]bool{
	"api":         true,
	"login":       true,
	"register":    true,
	"dashboard":   true,
	"metrics":     true,
	"health":      true,
	"static":      true,
	"favicon.ico": true,
}

// IsReservedUsername reports whether name can never be a portfolio address.
func IsReservedUsername(name string) bool {
	return reservedUsernames[strings.ToLower(name)]
}

// ValidateUsername applies the same rules used by registration, account
// updates and the availability check.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return invalid("Username must be between 3 and 30 characters")
	}
	if !usernamePattern.MatchString(username) {
		return invalid("Username can only contain letters, numbers, underscores, and dots")
	}
	if IsReservedUsername(username) {
		return invalid("Username is not available")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
