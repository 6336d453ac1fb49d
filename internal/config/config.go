package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iamasit07/connectfour/internal/domain"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	// Database Config
	DatabaseDriver       string `env:"DATABASE_DRIVER" envDefault:"pgx"`
	DatabaseURL          string `env:"DATABASE_URL"`
	DBMaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxLifetimeMin int    `env:"DB_CONN_MAX_LIFETIME_MINUTES" envDefault:"5"`
	VersionCacheSize     int    `env:"VERSION_CACHE_SIZE" envDefault:"10000"`

	RedisEnabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	RedisURL      string `env:"REDIS_URL" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Security. An empty secret means players identify with the X-Player-Id header.
	JWTSecret      string   `env:"JWT_SECRET"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	SaveMaxAttempts int           `env:"SAVE_MAX_ATTEMPTS" envDefault:"3"`
	BoardWidth      int           `env:"BOARD_WIDTH" envDefault:"7"`
	BoardHeight     int           `env:"BOARD_HEIGHT" envDefault:"6"`
	RequiredMatches int           `env:"REQUIRED_MATCHES" envDefault:"4"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.AllowedOrigins = trimOrigins(cfg.AllowedOrigins)
	cfg.DatabaseURL = withSimpleProtocol(cfg.DatabaseDriver, cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPgx, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.VersionCacheSize <= 0 {
		return fmt.Errorf("config: VERSION_CACHE_SIZE must be positive, got %d", c.VersionCacheSize)
	}
	if c.SaveMaxAttempts <= 0 {
		return fmt.Errorf("config: SAVE_MAX_ATTEMPTS must be positive, got %d", c.SaveMaxAttempts)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := c.GameConfiguration(); err != nil {
		return fmt.Errorf("config: board %dx%d with %d required matches: %w",
			c.BoardWidth, c.BoardHeight, c.RequiredMatches, err)
	}
	return nil
}

// GameConfiguration is the default board and winning rule for newly opened games.
func (c *Config) GameConfiguration() (domain.Configuration, error) {
	return domain.NewConfiguration(c.BoardWidth, c.BoardHeight, c.RequiredMatches)
}

func trimOrigins(origins []string) []string {
	trimmed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" {
			trimmed = append(trimmed, origin)
		}
	}
	return trimmed
}

// Append simple_protocol for PgBouncer compatibility (pgx driver)
func withSimpleProtocol(driver, dbURL string) string {
	if driver != DriverPgx || dbURL == "" {
		return dbURL
	}
	u, err := url.Parse(dbURL)
	if err != nil || u.Scheme == "" {
		return dbURL
	}
	q := u.Query()
	if q.Get("default_query_exec_mode") == "" {
		q.Set("default_query_exec_mode", "simple_protocol")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
