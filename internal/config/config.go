// Package config handles application configuration from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProjectName = "Inventory Management System"
	Version     = "1.0.0"
)

// Config holds all application configuration. The core services treat these
// values as opaque constants; nothing here is parsed by business logic.
type Config struct {
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// DatabaseURL is carried for a future persistence backend; the demo
	// deployment runs on in-memory stores and never dials it.
	DatabaseURL string

	ExportDir string

	DefaultPlan string
	PlanPrices  map[string]float64
}

const (
	DefaultPort         = "8080"
	DefaultEnv          = "development"
	DefaultLogLevel     = "info"
	DefaultDatabaseURL  = "memory://ims"
	DefaultExportDir    = "exports"
	DefaultPlanName     = "monthly"
	DefaultMonthlyPrice = 19.99
	DefaultYearlyPrice  = 199.99
)

// Load reads configuration from environment variables.
// It loads a .env file if present (for local development).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", DefaultPort),
		Env:         getEnv("ENV", DefaultEnv),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL: getEnv("DATABASE_URL", DefaultDatabaseURL),
		ExportDir:   getEnv("EXPORT_DIR", DefaultExportDir),
		DefaultPlan: getEnv("DEFAULT_PLAN", DefaultPlanName),
		PlanPrices: map[string]float64{
			"monthly": getEnvFloat("MONTHLY_PLAN_PRICE", DefaultMonthlyPrice),
			"yearly":  getEnvFloat("YEARLY_PLAN_PRICE", DefaultYearlyPrice),
		},
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
