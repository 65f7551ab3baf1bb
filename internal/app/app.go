package app

import (
	"time"

	"propvest-backend/internal/catalog"
	"propvest-backend/internal/config"
	"propvest-backend/internal/database"
	"propvest-backend/internal/engine"
	"propvest-backend/internal/health"
	"propvest-backend/internal/markets"
	"propvest-backend/internal/middleware"
	"propvest-backend/internal/properties"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned DB and Redis client are handed back so main can
// run startup pings; either may be nil when not configured.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	calc := engine.New(engine.Options{
		HorizonYears:        cfg.HorizonYears,
		TransactionCostRate: cfg.TransactionCostRate,
		IRR:                 engine.DefaultIRROptions(),
		Scoring:             engine.DefaultScoringConfig(),
	})

	// Health module
	var pinger health.DBPinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	healthHandlers := &health.Handlers{Rdb: rdb, DB: pinger}
	app.Get("/health", healthHandlers.Live)
	app.Get("/health/json", healthHandlers.JSON)
	app.Post("/health/reset", middleware.AdminKey(cfg.AdminKeyHash), healthHandlers.Reset)

	// Properties module
	propService := &properties.Service{DB: db}
	propHandlers := &properties.Handlers{Service: propService}
	propGroup := app.Group("/api/v1/properties")
	propGroup.Get("/", propHandlers.Search)
	propGroup.Get("/:property_id", propHandlers.GetProperty)
	propGroup.Get("/:property_id/audit", propHandlers.GetAudit)

	// Markets module
	marketService := &markets.Service{
		DB:       db,
		Rdb:      rdb,
		CacheTTL: time.Duration(cfg.StatsCacheTTLSeconds) * time.Second,
	}
	marketHandlers := &markets.Handlers{Service: marketService}
	marketGroup := app.Group("/api/v1/markets")
	marketGroup.Get("/cities", marketHandlers.Cities)
	marketGroup.Get("/zipcodes", marketHandlers.Zipcodes)
	marketGroup.Get("/states", marketHandlers.States)
	marketGroup.Get("/stats", marketHandlers.Stats)

	// Catalog module (admin only)
	catalogService := &catalog.Service{DB: db, Engine: calc, Workers: cfg.RecalcWorkers}
	catalogHandlers := &catalog.Handlers{Service: catalogService}
	catalogGroup := app.Group("/api/v1/catalog", middleware.AdminKey(cfg.AdminKeyHash))
	catalogGroup.Post("/recalculate", catalogHandlers.RecalculateAll)
	catalogGroup.Post("/recalculate/:property_id", catalogHandlers.RecalculateOne)

	return app, db, rdb, nil
}
