package main

import (
	"context"

	"propvest-backend/internal/app"
	"propvest-backend/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}

	fiberApp, db, rdb, err := app.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("App create failed")
	}

	// Verify connections before announcing the server.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Database handle failed")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	log.Info().Str("env", cfg.Env).Msg("Database connected")

	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		log.Info().Msg("Redis connected")
	}

	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
