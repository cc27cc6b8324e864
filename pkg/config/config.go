// Package config provides unified configuration for the rolodex server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (ROLODEX_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the rolodex server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Auth          AuthConfig          `yaml:"auth"`
	Files         FilesConfig         `yaml:"files"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 10 MB
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Type     string         `yaml:"type"` // "memory" or "postgres", default: "memory"
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string        `yaml:"dsn"`
	DSNFile        string        `yaml:"dsn_file"`          // _file variant for dsn
	MaxConns       int32         `yaml:"max_conns"`         // default: 10
	MinConns       int32         `yaml:"min_conns"`         // default: 2
	MaxConnLife    time.Duration `yaml:"max_conn_lifetime"` // default: 30m
	MigrateOnStart bool          `yaml:"migrate_on_start"`  // default: false
}

// AuthConfig holds session authentication settings.
type AuthConfig struct {
	// TokenHeader is the request header carrying the session token.
	TokenHeader string `yaml:"token_header"` // default: "Authorization"
}

// FilesConfig holds uploaded-file storage settings.
type FilesConfig struct {
	Dir string `yaml:"dir"` // default: "./data/files"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			MaxBodySize:     10 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns:    10,
				MinConns:    2,
				MaxConnLife: 30 * time.Minute,
			},
		},
		Auth: AuthConfig{
			TokenHeader: "Authorization",
		},
		Files: FilesConfig{
			Dir: "./data/files",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
