package middleware

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected guards API routes. The session cookie is tried first, then a
// Bearer Authorization header.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS256.Alg(), Key: []byte(cfg.JWTSecret)},
		ContextKey:  owner.TokenKey,
		TokenLookup: "cookie:" + owner.SessionCookie + ",header:" + fiber.HeaderAuthorization,
		// Only applied to the header source; a custom lookup gets no default.
		AuthScheme: "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized: invalid or expired token",
			})
		},
	})
}
