// Package config provides configuration management for gridstack.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"github.com/gridstack-labs/gridstack/internal/adapter"
)

// Defaults applied when neither file, env, nor flags supply a value.
const (
	DefaultDatabaseType = "duckdb"
	DefaultStatePath    = ".gridstack/state.db"
)

// DatabaseConfig describes the dashboard data source.
type DatabaseConfig struct {
	Type     string `koanf:"type"`
	Path     string `koanf:"path"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Schema   string `koanf:"schema"`
}

// SandboxConfig tunes script execution.
type SandboxConfig struct {
	// MaxSteps bounds Starlark computation steps per script run.
	// Zero disables the bound.
	MaxSteps uint64 `koanf:"max_steps"`
}

// Config holds all gridstack configuration options.
type Config struct {
	Database       DatabaseConfig `koanf:"database"`
	StatePath      string         `koanf:"state_path"`
	HiddenEntities []string       `koanf:"hidden_entities"`
	Sandbox        SandboxConfig  `koanf:"sandbox"`
	Verbose        bool           `koanf:"verbose"`
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Database.Type == "" {
		c.Database.Type = DefaultDatabaseType
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath
	}
}

// AdapterConfig converts the database section to an adapter config.
func (c *Config) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     c.Database.Type,
		Path:     c.Database.Path,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		Database: c.Database.Database,
		Username: c.Database.Username,
		Password: c.Database.Password,
		Schema:   c.Database.Schema,
	}
}
