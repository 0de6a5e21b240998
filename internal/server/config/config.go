// Package config handles configuration for the development users API,
// including defaults, JSON overlay, command-line flags and environment
// variables.
package config

import "time"

// Supported values of DatabaseDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config holds runtime settings for the users API server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP endpoint.
//   - DatabaseDriver: "sqlite" (modernc) or "pgx" (PostgreSQL).
//   - DatabaseDSN: data source name for the selected driver.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddr    string        `env:"ENDPOINT_ADDR"`
	DatabaseDriver  string        `env:"DATABASE_DRIVER"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3001"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "file:users.db"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags and finally USERDESK_*
// environment variables.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	return cfg
}
