// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/TG-Note-App/tgauth/internal/archive"
)

// Config holds all configuration for the application.
type Config struct {
	ListenAddr   string        `env:"LISTEN_ADDR"   envDefault:":8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT"  envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT"  envDefault:"60s"`

	BotToken   string        `env:"TELEGRAM_BOT_TOKEN"`
	AuthMaxAge time.Duration `env:"AUTH_MAX_AGE" envDefault:"1h" validate:"gt=0"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	DatabaseDSN string `env:"PG_DSN"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://webapp.telegram.org,http://localhost:8080"`
	StaticDir      string   `env:"STATIC_DIR" envDefault:"./frontend/dist"`

	Minio Minio

	// Used by the bootstrap command.
	AuthBaseURL string `env:"AUTH_BASE_URL" envDefault:"http://localhost:8080" validate:"omitempty,url"`
	InitDataEnv string `env:"INIT_DATA_ENV" envDefault:"TELEGRAM_INIT_DATA"`
}

// Minio configures the auth event archive. An empty endpoint disables it.
type Minio struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"auth-events"`
	UseSSL    bool   `env:"MINIO_USE_SSL"`
}

// Enabled reports whether an endpoint is configured.
func (m Minio) Enabled() bool { return m.Endpoint != "" }

// Archive converts the settings for the archive package.
func (m Minio) Archive() archive.MinioConfig {
	return archive.MinioConfig{
		Endpoint:        m.Endpoint,
		AccessKeyID:     m.AccessKey,
		SecretAccessKey: m.SecretKey,
		Bucket:          m.Bucket,
		UseSSL:          m.UseSSL,
	}
}

// serverRules are checked on top of the struct tags before serving.
type serverRules struct {
	BotToken    string `validate:"required"`
	DatabaseDSN string `validate:"required"`
}

var validate = validator.New()

// Load reads .env files (if any) and the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ValidateServer checks the settings the HTTP server cannot run without.
func (c *Config) ValidateServer() error {
	if err := validate.Struct(serverRules{BotToken: c.BotToken, DatabaseDSN: c.DatabaseDSN}); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	return nil
}
