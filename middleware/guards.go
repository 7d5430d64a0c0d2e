package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireLogin lets the request through only with a valid session.
func RequireLogin(c *fiber.Ctx) error {
	if CurrentSession(c) == nil {
		return FlashRedirect(c, "/login", "Please log in to continue")
	}
	return c.Next()
}

// RequireAdmin lets the request through only for admin sessions.
func RequireAdmin(c *fiber.Ctx) error {
	if !CurrentSession(c).IsAdmin() {
		return FlashRedirect(c, "/", "Admin access required")
	}
	return c.Next()
}
