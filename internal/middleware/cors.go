package middleware

import (
	"strings"

	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds CORS configuration. AllowedSuffix matches deployed
// frontends (e.g. ".propvest.io"); localhost origins are always allowed so
// local frontends can hit a shared backend.
type CORSConfig struct {
	AllowedSuffix string
}

// CORS allows same-origin requests, localhost, and origins ending with the
// configured suffix. Everything else is rejected in the standard error shape.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// No origin header: same-origin request or a non-browser client.
		if origin == "" {
			return c.Next()
		}
		if isLocalOrigin(origin) || hasAllowedSuffix(origin, cfg.AllowedSuffix) {
			setCORSHeaders(c, origin)
			if c.Method() == fiber.MethodOptions {
				return c.SendStatus(fiber.StatusNoContent)
			}
			return c.Next()
		}
		return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
	}
}

func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}

func hasAllowedSuffix(origin, suffix string) bool {
	return suffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(suffix))
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Key")
	c.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}
