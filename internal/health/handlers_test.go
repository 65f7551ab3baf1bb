package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"propvest-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthHandlers(t *testing.T) (*Handlers, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Handlers{Rdb: rdb, DB: nil}, mr
}

func TestLive(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health", h.Live)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "propvest-api", out["service"])
}

func TestJSON_ReturnsStructure(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "runtime")
	assert.Contains(t, out, "traffic")
	assert.Contains(t, out, "dependencies")

	// No database wired in this setup.
	deps := out["dependencies"].(map[string]interface{})
	dbDep := deps["database"].(map[string]interface{})
	assert.Equal(t, "disconnected", dbDep["status"])
	redisDep := deps["redis"].(map[string]interface{})
	assert.Equal(t, "connected", redisDep["status"])
}

func TestJSON_ReadsTrafficCounters(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	ctx := context.Background()
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqTotal, "10", 0).Err())
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqErrors, "2", 0).Err())

	result := CollectHealth(ctx, h.Rdb, nil)
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
}

func TestReset_ClearsCounters(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Post("/health/reset", h.Reset)

	ctx := context.Background()
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqTotal, "5", 0).Err())

	resp, err := app.Test(httptest.NewRequest("POST", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = h.Rdb.Get(ctx, middleware.KeyReqTotal).Result()
	assert.Error(t, err)
	_, err = h.Rdb.Get(ctx, middleware.KeyStartTime).Result()
	assert.NoError(t, err)
}
