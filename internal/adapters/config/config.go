package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"advisor/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	MarketData    MarketDataConfig
	Economic      EconomicConfig
	Cache         CacheConfig
	Session       SessionConfig
	Redis         RedisConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"advisor"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Host     string `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port     int    `envconfig:"HTTP_PORT" default:"5000"`
}

func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AIConfig struct {
	OpenAIKey    string        `envconfig:"OPENAI_API_KEY"`
	Model        string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	Temperature  float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.7"`
	Timeout      time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
	ReqPerMinute int           `envconfig:"OPENAI_RATE_LIMIT_RPM" default:"500"`
}

type MarketDataConfig struct {
	APIKey   string `envconfig:"MARKET_DATA_API_KEY"`
	Provider string `envconfig:"MARKET_DATA_PROVIDER" default:"alpha_vantage"`
}

type EconomicConfig struct {
	FREDAPIKey string `envconfig:"FRED_API_KEY"`
}

type CacheConfig struct {
	Enabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"CACHE_TTL" default:"300s"`
}

type SessionConfig struct {
	// Backend selects the session store: "memory" or "redis"
	Backend string `envconfig:"SESSION_BACKEND" default:"memory"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables.
// It first tries to load .env file (useful for local development).
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
