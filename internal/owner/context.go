package owner

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKey is the Fiber locals key the JWT middleware stores the parsed
// token under.
const TokenKey = "user"

var ErrNoSession = errors.New("no session in context")

// GetUserID extracts the session user's UUID from the JWT in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func claimsFrom(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// Cookie names shared by the auth handlers and the guards.
const (
	SessionCookie  = "auth-token"
	UserDataCookie = "user-data"
)
