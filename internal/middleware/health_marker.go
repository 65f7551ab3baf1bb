package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for the global traffic counters read by the health module.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
)

// HealthMarker records request stats in Redis. Health and favicon routes are
// excluded so the dashboard does not count itself. Counter writes are
// best-effort: a Redis outage must not fail API traffic.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		ctx := context.Background()
		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		if b, err := json.Marshal(lastReq); err == nil {
			_ = rdb.Set(ctx, KeyLastReq, b, 0).Err()
		}
		_ = rdb.Incr(ctx, KeyReqTotal).Err()

		err := c.Next()

		_ = rdb.Incr(ctx, KeyResCount).Err()
		_ = rdb.IncrByFloat(ctx, KeyResTime, float64(time.Since(start).Milliseconds())).Err()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			_ = rdb.Incr(ctx, KeyReqErrors).Err()
		}
		return err
	}
}
