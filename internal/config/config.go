package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int       `env:"LOG_LEVEL" envDefault:"0"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Database  Database  `envPrefix:"DATABASE_"`
	JWT       JWT       `envPrefix:"JWT_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	CORS      CORS      `envPrefix:"CORS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Database contains durable document parameters.
type Database struct {
	Path string `env:"PATH" envDefault:"./db/db.json"`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret    string        `env:"SECRET" envDefault:"development-secret-at-least-32-chars"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"1h"`
}

// RateLimit contains request rate limiting parameters.
type RateLimit struct {
	MaxRequests int           `env:"MAX_REQUESTS" envDefault:"100"`
	Window      time.Duration `env:"WINDOW" envDefault:"15m"`
}

// CORS contains cross-origin parameters. Origins is a comma-separated
// list; empty allows any origin.
type CORS struct {
	Origins []string `env:"ORIGINS" envSeparator:","`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
