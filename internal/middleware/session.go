package middleware

import (
	"net/url"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/owner"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// SessionLocal is the locals key holding the *services.Session of a page
// request that passed RequirePage.
const SessionLocal = "session"

// SessionParser verifies a raw session token.
type SessionParser interface {
	ParseToken(raw string) (*services.Session, error)
}

// RequirePage redirects visitors without a valid session to the login page,
// remembering where they were headed.
func RequirePage(parser SessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := parser.ParseToken(c.Cookies(owner.SessionCookie))
		if err != nil {
			return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		c.Locals(SessionLocal, session)
		return c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in visitors of /login and /register
// to the dashboard.
func RedirectIfAuthenticated(parser SessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := parser.ParseToken(c.Cookies(owner.SessionCookie)); err == nil {
			return c.Redirect("/dashboard", fiber.StatusFound)
		}
		return c.Next()
	}
}
