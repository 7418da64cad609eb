package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"insertion-route-service/internal/domain"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Server struct {
		Port            string        `env:"PORT" envDefault:"8080"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
		PlansRateLimit  float64       `env:"PLANS_RATE_LIMIT" envDefault:"5"`
		PlansBurst      int           `env:"PLANS_BURST" envDefault:"10"`
	}

	Database struct {
		Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
		Path   string `env:"DB_PATH" envDefault:"data/app.db"`
		URL    string `env:"DATABASE_URL"`
	}

	Redis struct {
		Addr     string        `env:"REDIS_ADDR"`
		Password string        `env:"REDIS_PASSWORD"`
		TTL      time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	}

	Construction struct {
		VehicleCapacity float64 `env:"VEHICLE_CAPACITY" envDefault:"50"`
		VehicleLimit    int     `env:"VEHICLE_LIMIT" envDefault:"25"`
		ShowDiagnostics bool    `env:"SHOW_DIAGNOSTICS" envDefault:"false"`
		EvalWorkers     int     `env:"EVAL_WORKERS" envDefault:"1"`
	}

	InstancesDir string `env:"INSTANCES_DIR" envDefault:"data/instances"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load config: read .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// only the first error keeps the log line readable
			return nil, fmt.Errorf("load config: %w", aggErr.Errors[0])
		}
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case "pgx":
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the pgx driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or pgx, got %q", c.Database.Driver)
	}

	if c.Construction.EvalWorkers < 1 {
		return fmt.Errorf("EVAL_WORKERS must be at least 1, got %d", c.Construction.EvalWorkers)
	}
	if err := c.Fleet().Validate(); err != nil {
		return err
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == "pgx" {
		return c.Database.URL
	}
	return c.Database.Path
}

// Fleet returns the default fleet parameters for plans that omit them.
func (c *Config) Fleet() domain.FleetConfig {
	return domain.FleetConfig{
		VehicleCapacity: c.Construction.VehicleCapacity,
		VehicleLimit:    c.Construction.VehicleLimit,
	}
}

// Get returns the value of an environment variable, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
