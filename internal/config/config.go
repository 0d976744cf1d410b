// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`

	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"smartcv"`

	AIServiceURL string        `env:"AI_SERVICE_URL" envDefault:"http://ai-service:8000"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	ChromePath    string        `env:"CHROME_PATH"`
	PDFPageSize   string        `env:"PDF_PAGE_SIZE" envDefault:"Letter"`
	PDFMargin     float64       `env:"PDF_MARGIN_INCHES" envDefault:"0.5"`
	PDFScale      float64       `env:"PDF_SCALE" envDefault:"1"`
	ExportDir     string        `env:"EXPORT_DIR" envDefault:"cv-data/exports"`
	ExportTimeout time.Duration `env:"EXPORT_TIMEOUT" envDefault:"90s"`

	AutosaveQuiet time.Duration `env:"AUTOSAVE_QUIET" envDefault:"2s"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
}

// Load reads .env when present and parses the environment.
func Load() (*Config, error) {
	// a missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	switch strings.ToLower(c.PDFPageSize) {
	case "letter", "a4":
	default:
		return fmt.Errorf("config: PDF_PAGE_SIZE must be Letter or A4, got %q", c.PDFPageSize)
	}
	if c.PDFScale < 0.1 || c.PDFScale > 2 {
		return fmt.Errorf("config: PDF_SCALE must be between 0.1 and 2, got %v", c.PDFScale)
	}
	if c.AutosaveQuiet <= 0 {
		return errors.New("config: AUTOSAVE_QUIET must be positive")
	}
	return nil
}

// RequireAuth reports whether tokens can be verified.
func (c *Config) RequireAuth() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required to serve the API")
	}
	return nil
}

func (c *Config) Development() bool { return c.Environment == "development" }
