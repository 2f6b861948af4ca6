package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kabar/internal/domain"
)

const ClientInfoContextKey = "client_info"

// RequestInfo captures the real client address (behind Cloudflare or another
// proxy) and the user agent for abuse forensics on the write paths.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("CF-Connecting-IP")
		if ip == "" {
			if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
				ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
			}
		}
		if ip == "" {
			ip = c.IP()
		}

		c.Locals(ClientInfoContextKey, domain.ClientInfo{
			IPAddress: ip,
			UserAgent: c.Get("User-Agent"),
		})

		return c.Next()
	}
}

func GetClientInfo(c *fiber.Ctx) domain.ClientInfo {
	info, ok := c.Locals(ClientInfoContextKey).(domain.ClientInfo)
	if !ok {
		return domain.ClientInfo{IPAddress: c.IP(), UserAgent: c.Get("User-Agent")}
	}
	return info
}
