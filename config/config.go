// Package config loads server configuration from the environment, with a
// .env file picked up when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Engine EngineConfig
}

// AppConfig holds server-level settings.
type AppConfig struct {
	Port     int
	DBPath   string
	LogLevel string
}

// EngineConfig holds the payroll business constants that operators may tune.
type EngineConfig struct {
	ExceptionHoursPerDay float64
	DefaultBonusRate     float64
	AllowFallbackPeriod  bool
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	exception, err := strconv.ParseFloat(getEnv("EXCEPTION_HOURS_PER_DAY", "1.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid EXCEPTION_HOURS_PER_DAY: %w", err)
	}

	bonusRate, err := strconv.ParseFloat(getEnv("DEFAULT_BONUS_RATE", "8.33"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_BONUS_RATE: %w", err)
	}

	fallback, err := strconv.ParseBool(getEnv("ALLOW_FALLBACK_PERIOD", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_FALLBACK_PERIOD: %w", err)
	}

	return &Config{
		App: AppConfig{
			Port:     port,
			DBPath:   getEnv("DB_PATH", "payroll.db"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Engine: EngineConfig{
			ExceptionHoursPerDay: exception,
			DefaultBonusRate:     bonusRate,
			AllowFallbackPeriod:  fallback,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
