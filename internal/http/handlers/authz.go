package handlers

import (
	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	applog "artspace/internal/log"
	"artspace/internal/services"
)

// LoadSession attaches the visitor's session, if any, for templates, access
// logs and backend calls.
func LoadSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Next()
		}
		c.Locals("sid", sid)
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil {
			applog.Error(c, "session.load.fail", err, nil)
			return c.Next()
		}
		if u != nil {
			c.Locals("user", u)
			c.Locals("username", u.Username)
			c.SetUserContext(api.WithToken(c.UserContext(), u.Token))
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessionOf(c) == nil {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

func RequireAdmin(p *Pages) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sessionOf(c).IsAdmin() {
			applog.Security(c, "access.denied.admin", nil)
			p.notify(c, noticeError, "Access denied. Admin role required.")
			return c.Redirect("/")
		}
		return c.Next()
	}
}
