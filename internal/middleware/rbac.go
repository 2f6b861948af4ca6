package middleware

import (
	"github.com/gofiber/fiber/v2"

	"kabar/internal/service/authz"
)

// RequirePrivilege gates a route behind the authorization gate. The error
// middleware turns the gate's verdict into 401 (no principal) or 403 (lacks
// privilege).
func RequirePrivilege(gate authz.Service, privileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.Authorize(GetCurrentUser(c), privileges...); err != nil {
			return err
		}
		return c.Next()
	}
}
