// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the envconfig prefix. Every variable may also be given without it
// (APP_PORT and PORT are both accepted; the prefixed form wins).
const Prefix = "APP"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig

	Store StoreConfig

	Database DatabaseConfig

	Log LogConfig

	App AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// Driver selects the storage backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverMSSQL    Driver = "mssql"
)

// StoreConfig selects and seeds the storage backend.
type StoreConfig struct {
	// Driver is one of memory, postgres, mssql (default: memory)
	Driver Driver `envconfig:"STORE_DRIVER" default:"memory"`

	// MemorySeed preloads the in-memory store with sample items (default: true)
	MemorySeed bool `envconfig:"MEMORY_SEED" default:"true"`
}

// DatabaseConfig holds pool settings shared by the relational drivers.
// Connection parameters (host, user, password...) are not part of it: they are
// read from the environment at handshake time, see PostgresSettings and MSSQLSettings.
type DatabaseConfig struct {
	// ConnectTimeout bounds a single handshake (default: 5s)
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the maximum number of idle connections for SQL Server (default: 5).
	// The postgres pool has no idle cap and ignores it.
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: plain, text, json (default: plain)
	Format string `envconfig:"LOG_FORMAT" default:"plain"`
}

// AppConfig holds service metadata reported by the root and version endpoints.
type AppConfig struct {
	Name string `envconfig:"SERVICE_NAME" default:"itemsapi"`
	Env  string `envconfig:"ENV" default:"development"`
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the selected driver.
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case DriverMemory, DriverPostgres, DriverMSSQL:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q (want memory, postgres or mssql)", c.Driver)
	}
}

// Load reads configuration from environment variables.
// It returns an error if variables are invalid.
func Load() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process(Prefix, &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.Store); err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg.App); err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	cfg.Store.Driver = Driver(strings.ToLower(strings.TrimSpace(string(cfg.Store.Driver))))
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
