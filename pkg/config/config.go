package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the inventory service configuration, read from the environment.
type Config struct {
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"inventory-service"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"1.0.0"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8082"`
	GRPCPort       string `env:"GRPC_PORT" envDefault:"9082"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://localhost:14268/api/traces"`

	DB     Database `envPrefix:"DB_"`
	Redis  Redis    `envPrefix:"REDIS_"`
	Kafka  Kafka    `envPrefix:"KAFKA_"`
	Ledger Ledger   `envPrefix:"LEDGER_"`

	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	LowStockScanBatch int           `env:"LOW_STOCK_SCAN_BATCH" envDefault:"200"`
}

// Database holds the Postgres connection settings.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"inventory_db"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// Redis holds the cache connection settings. An empty Addr disables caching.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Kafka holds the broker settings.
type Kafka struct {
	Enabled bool     `env:"ENABLED" envDefault:"true"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092" envSeparator:","`
	GroupID string   `env:"GROUP_ID" envDefault:"inventory-service"`
}

// Ledger tunes the mutating operations.
type Ledger struct {
	MaxAttempts      int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY" envDefault:"20ms"`
	RetryMaxDelay    time.Duration `env:"RETRY_MAX_DELAY" envDefault:"250ms"`
	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates the service configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Ledger.MaxAttempts < 1 {
		return Config{}, fmt.Errorf("LEDGER_MAX_ATTEMPTS must be at least 1, got %d", cfg.Ledger.MaxAttempts)
	}
	if cfg.Ledger.RetryMaxDelay < cfg.Ledger.RetryBaseDelay {
		return Config{}, fmt.Errorf("LEDGER_RETRY_MAX_DELAY %s is below LEDGER_RETRY_BASE_DELAY %s", cfg.Ledger.RetryMaxDelay, cfg.Ledger.RetryBaseDelay)
	}
	return cfg, nil
}

// IsDevelopment reports whether pretty console logging should be used.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
