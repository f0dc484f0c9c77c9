// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, reading policy) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Folio API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath overrides the migrations embedded in the binary.
	MigrationPath string `env:"MIGRATION_PATH"`

	Postgres PostgresConfig `envPrefix:"DATABASE_"`

	// Key-Value Cache (Redis)
	RedisURL string      `env:"REDIS_URL,required"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Tracing. Empty endpoint keeps the no-op tracer provider.
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"folio.app"`

	// Reading policy
	Reading ReadingConfig `envPrefix:"READING_"`

	// DependencyRetryAttempts bounds the backoff loop around repository calls.
	DependencyRetryAttempts uint `env:"DEPENDENCY_RETRY_ATTEMPTS" envDefault:"3"`
}

// ReadingConfig holds the anti-skimming and pagination policy values.
type ReadingConfig struct {
	// DwellSeconds is the minimum time a reader stays on a page before advancing.
	DwellSeconds int `env:"DWELL_SECONDS" envDefault:"120"`

	// PageSize is the target number of characters per page.
	PageSize int `env:"PAGE_SIZE" envDefault:"3000"`

	// PageCacheTTL controls how long paginated books stay in Redis.
	PageCacheTTL time.Duration `env:"PAGE_CACHE_TTL" envDefault:"1h"`
}

// PostgresConfig sizes the pgx pool.
type PostgresConfig struct {
	MaxConns         int32         `env:"MAX_CONNS"         envDefault:"25"`
	MinConns         int32         `env:"MIN_CONNS"         envDefault:"5"`
	StatementTimeout time.Duration `env:"STATEMENT_TIMEOUT" envDefault:"30s"`
}

// RedisConfig sizes the go-redis pool.
type RedisConfig struct {
	PoolSize     int `env:"POOL_SIZE"      envDefault:"10"`
	MinIdleConns int `env:"MIN_IDLE_CONNS" envDefault:"2"`
}

// Dwell returns DwellSeconds as a [time.Duration].
func (c ReadingConfig) Dwell() time.Duration {
	return time.Duration(c.DwellSeconds) * time.Second
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.Reading.DwellSeconds < 0 {
		return nil, fmt.Errorf("config: READING_DWELL_SECONDS must not be negative")
	}
	if cfg.Reading.PageSize <= 0 {
		return nil, fmt.Errorf("config: READING_PAGE_SIZE must be positive")
	}
	if cfg.Postgres.MinConns > cfg.Postgres.MaxConns {
		return nil, fmt.Errorf("config: DATABASE_MIN_CONNS exceeds DATABASE_MAX_CONNS")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
