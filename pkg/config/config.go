package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Port         string `envconfig:"PORT" default:"3000"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"db/crm.sqlite"`
	Environment  string `envconfig:"ENVIRONMENT" default:"development"`

	ServiceName    string `envconfig:"SERVICE_NAME" default:"crm-chat-api"`
	ServiceVersion string `envconfig:"SERVICE_VERSION" default:"1.0.0"`
	MetricsPort    string `envconfig:"METRICS_PORT" default:"9091"`
	OTLPEndpoint   string `envconfig:"OTLP_ENDPOINT"`
	LokiURL        string `envconfig:"LOKI_URL"`

	RateLimitEnabled bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitConfigs map[string]RateLimitConfig `ignored:"true"`

	EnforceHTTPS  bool `envconfig:"ENFORCE_HTTPS" default:"false"`
	SQLLogEnabled bool `envconfig:"SQL_LOG_ENABLED" default:"false"`

	// ExposeInternalErrors returns raw storage messages to clients.
	ExposeInternalErrors bool `envconfig:"EXPOSE_INTERNAL_ERRORS" default:"false"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// RateLimitConfig is a fixed window: at most Requests per Window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &AppConfig{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	cfg.RateLimitConfigs = DefaultRateLimits()

	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// DefaultRateLimits keys limits by "METHOD route". "default" covers
// every route without its own entry.
func DefaultRateLimits() map[string]RateLimitConfig {
	return map[string]RateLimitConfig{
		"POST /api/login": {
			Requests: 10,
			Window:   time.Minute,
		},
		"POST /api/deals": {
			Requests: 30,
			Window:   time.Minute,
		},
		"PUT /api/deals/:id": {
			Requests: 60,
			Window:   time.Minute,
		},
		"DELETE /api/deals/:id": {
			Requests: 20,
			Window:   time.Minute,
		},
		"POST /api/messages": {
			Requests: 120,
			Window:   time.Minute,
		},
		"default": {
			Requests: 300,
			Window:   time.Minute,
		},
	}
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:             "3000",
		DatabasePath:     "db/crm.sqlite",
		Environment:      "development",
		ServiceName:      "crm-chat-api",
		ServiceVersion:   "1.0.0",
		MetricsPort:      "9091",
		RateLimitEnabled: true,
		RateLimitConfigs: DefaultRateLimits(),
		EnforceHTTPS:     false,
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}
