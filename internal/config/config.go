package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	GinMode  string `env:"GIN_MODE" env-default:"debug"`
	HTTP     HTTPConfig
	Database DatabaseConfig
	Log      LogConfig
	Upstream UpstreamConfig
	OpenAI   OpenAIConfig
	Prompt   PromptConfig
	Metrics  MetricsConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3001"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" env-default:"mysql"`
	Host       string `env:"DB_HOST" env-default:"localhost"`
	Port       string `env:"DB_PORT" env-default:"3306"`
	User       string `env:"DB_USER" env-default:"portal"`
	Password   string `env:"DB_PASSWORD" env-default:"portal"`
	Name       string `env:"DB_NAME" env-default:"portal_ia"`
	SSLMode    string `env:"DB_SSL_MODE" env-default:"disable"`
	SQLitePath string `env:"DB_SQLITE_PATH" env-default:"portal.db"`
	LogQueries bool   `env:"DB_LOG_QUERIES" env-default:"false"`
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" env-default:"info"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" env-default:"28"`
}

// UpstreamConfig points at the services this API proxies to.
type UpstreamConfig struct {
	DocumentsURL     string        `env:"DOCUMENTS_URL" env-default:"http://localhost:5000"`
	LLMURL           string        `env:"LLM_URL" env-default:"http://localhost:5000"`
	MetricsURL       string        `env:"METRICS_URL" env-default:"http://localhost:5001"`
	RequestTimeout   time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"60s"`
	BreakerFailures  uint32        `env:"UPSTREAM_BREAKER_FAILURES" env-default:"3"`
	BreakerOpenDelay time.Duration `env:"UPSTREAM_BREAKER_OPEN_DELAY" env-default:"5s"`
}

type OpenAIConfig struct {
	APIKey      string  `env:"OPENAI_API_KEY"`
	BaseURL     string  `env:"OPENAI_BASE_URL"`
	Model       string  `env:"OPENAI_MODEL" env-default:"gpt-3.5-turbo"`
	Temperature float32 `env:"OPENAI_TEMPERATURE" env-default:"0.7"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS" env-default:"512"`
}

type PromptConfig struct {
	Workers int           `env:"PROMPT_WORKERS" env-default:"4"`
	Timeout time.Duration `env:"PROMPT_TIMEOUT" env-default:"2m"`
}

type MetricsConfig struct {
	CacheTTL time.Duration `env:"GPU_METRICS_CACHE_TTL" env-default:"2s"`
}

// Load reads the configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Prompt.Workers < 1 {
		return nil, fmt.Errorf("PROMPT_WORKERS must be at least 1, got %d", cfg.Prompt.Workers)
	}

	return cfg, nil
}
