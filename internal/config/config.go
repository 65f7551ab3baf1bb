package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + optional .env file).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	AdminKeyHash        string

	// Engine tuning. The model's global assumptions are configuration, not
	// constants baked into the calculation code.
	HorizonYears        int
	TransactionCostRate float64

	// Serving-layer tuning.
	StatsCacheTTLSeconds int
	RecalcWorkers        int
}

// Load loads config from env and an optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}
	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		// Local default matches how the original catalog shipped: a SQLite file.
		dbURL = "propvest.db"
	}

	cfg := &Config{
		Env:                  env,
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             viper.GetString("REDIS_URL"),
		FrontendURLEndsWith:  viper.GetString("FRONTEND_URL_ENDS_WITH"),
		AdminKeyHash:         viper.GetString("ADMIN_KEY_HASH"),
		HorizonYears:         viper.GetInt("HORIZON_YEARS"),
		TransactionCostRate:  viper.GetFloat64("TRANSACTION_COST_RATE"),
		StatsCacheTTLSeconds: viper.GetInt("STATS_CACHE_TTL_SECONDS"),
		RecalcWorkers:        viper.GetInt("RECALC_WORKERS"),
	}
	if cfg.HorizonYears <= 0 {
		cfg.HorizonYears = 5
	}
	if cfg.TransactionCostRate <= 0 {
		cfg.TransactionCostRate = 0.01
	}
	if cfg.StatsCacheTTLSeconds <= 0 {
		cfg.StatsCacheTTLSeconds = 300
	}
	if cfg.RecalcWorkers <= 0 {
		cfg.RecalcWorkers = 8
	}
	return cfg, nil
}
