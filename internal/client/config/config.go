package config

import "time"

// Config holds runtime settings for the userdesk console.
//
// Fields:
//   - ServerBaseURL: base URL of the users API.
//   - RequestTimeout: per-request timeout of every API call.
//   - Verbose: log debug events (fetches, invalidations) to stderr.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3001"
	c.RequestTimeout = 10 * time.Second
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
