package app

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"propvest-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                  "test",
		Port:                 "0",
		DatabaseURL:          ":memory:",
		HorizonYears:         5,
		TransactionCostRate:  0.01,
		StatsCacheTTLSeconds: 60,
		RecalcWorkers:        2,
	}
}

func TestCreateApp_RoutesRegistered(t *testing.T) {
	app, db, rdb, err := CreateApp(testConfig())
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Nil(t, rdb)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/properties", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "success", out["status"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/markets/states", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateApp_AdminDisabledWithoutKeyHash(t *testing.T) {
	app, _, _, err := CreateApp(testConfig())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/catalog/recalculate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCreateApp_BadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "not-a-url"
	_, _, _, err := CreateApp(cfg)
	assert.Error(t, err)
}
