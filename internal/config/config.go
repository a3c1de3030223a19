package config

import (
	"errors"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMissingSecret = errors.New("SESSION_SECRET is required")
	ErrWeakSecret    = errors.New("SESSION_SECRET must be at least 32 characters long")
	ErrBadGatewayURL = errors.New("GATEWAY_URL is not a valid absolute URL")
)

// Config holds everything the server reads from the environment. GatewayURL
// is deliberately allowed to be empty: the app still starts, but serves a
// blocking setup notice instead of its API until the endpoint is configured.
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	GatewayURL     string        `envconfig:"GATEWAY_URL"`
	GatewayTimeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"15s"`
	SessionSecret  string        `envconfig:"SESSION_SECRET"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads .env (best-effort) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("restro", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.SessionSecret == "" {
		return ErrMissingSecret
	}
	if len(c.SessionSecret) < 32 {
		return ErrWeakSecret
	}
	if c.GatewayURL != "" {
		u, err := url.Parse(c.GatewayURL)
		if err != nil || !u.IsAbs() {
			return ErrBadGatewayURL
		}
	}
	return nil
}

// Configured reports whether the gateway endpoint has been set. When false
// the server runs in setup-notice mode.
func (c Config) Configured() bool {
	return c.GatewayURL != ""
}
