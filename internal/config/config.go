package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Runtime configuration assembled from the environment (optionally seeded from .env by the caller).
type Config struct {
	Port string

	// DBDriver is "postgres" (DatabaseURL) or "sqlite" (DBPath).
	DBDriver    string
	DatabaseURL string
	DBPath      string
	SeedPath    string
	SeedOnStart bool

	// Empty RedisURL disables the schedule cache.
	RedisURL string
	CacheTTL time.Duration

	// Empty KafkaBroker falls back to logging events.
	KafkaBroker string
	KafkaTopic  string

	JWTSecret string

	// Location for timestamps and dates that carry no offset.
	Location *time.Location
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/users.json"),
		SeedOnStart: strings.EqualFold(Get("SEED_ON_START", "false"), "true"),
		RedisURL:    os.Getenv("REDIS_URL"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  Get("KAFKA_TOPIC", "delivery-events"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	ttl, err := time.ParseDuration(Get("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	loc, err := time.LoadLocation(Get("SCHEDULE_TZ", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: SCHEDULE_TZ: %w", err)
	}
	cfg.Location = loc

	switch cfg.DBDriver {
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for postgres")
		}
	case "sqlite":
	default:
		return Config{}, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return c.DatabaseURL
}
