package health

import (
	"time"

	"propvest-backend/internal/middleware"
	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.JSON(result)
}

// GET /health
func (h *Handlers) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": "propvest-api"})
}

// POST /health/reset (admin)
// Clears the Redis traffic counters and restarts the uptime clock.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return response.Error(c, "Redis not configured", fiber.StatusServiceUnavailable, nil)
	}
	ctx := c.Context()
	h.Rdb.Del(ctx,
		middleware.KeyReqTotal,
		middleware.KeyReqErrors,
		middleware.KeyResTime,
		middleware.KeyResCount,
		middleware.KeyLastReq,
	)
	h.Rdb.Set(ctx, middleware.KeyStartTime, time.Now().UnixMilli(), 0)
	return response.Success(c, "Stats reset successfully", nil, nil)
}
