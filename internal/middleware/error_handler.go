package middleware

import (
	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global Fiber error handler. Unhandled errors surface as
// 500 in the standard error format; fiber.Errors keep their status code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("trace_id", GetTraceID(c)).Msg("Unhandled request error")
	}

	return response.Error(c, message, code, nil)
}
