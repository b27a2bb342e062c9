package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Upstream UpstreamConfig
}

type SessionConfig struct {
	// CookieSecure marks the session cookies Secure; leave off only for
	// plain-HTTP development setups.
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
}

// UpstreamConfig holds the base URLs of the four backend services. Defaults
// match the stock docker-compose deployment.
type UpstreamConfig struct {
	AuthURL         string `env:"AUTH_SERVICE_URL,         default=http://localhost:5001"`
	UsersURL        string `env:"USER_SERVICE_URL,         default=http://localhost:5002"`
	CertificatesURL string `env:"CERTIFICATE_SERVICE_URL,  default=http://localhost:5003"`
	NotifyURL       string `env:"NOTIFICATION_SERVICE_URL, default=http://localhost:5004"`

	// Timeout applies to every upstream call; zero keeps the transport
	// default (no client-side deadline).
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
