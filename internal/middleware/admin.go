package middleware

import (
	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey guards operational endpoints (catalog recalculation) with a
// shared key. Only the bcrypt hash of the key is configured; an empty hash
// disables the endpoints entirely rather than leaving them open.
func AdminKey(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyHash == "" {
			return response.Error(c, "Admin endpoints are disabled", fiber.StatusServiceUnavailable, nil)
		}
		key := c.Get(adminKeyHeader)
		if key == "" {
			return response.Unauthorized(c, "Missing admin key")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			return response.Unauthorized(c, "Invalid admin key")
		}
		return c.Next()
	}
}
