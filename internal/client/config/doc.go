// Package config loads runtime configuration for the userdesk console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the users API (default http://localhost:3001)
//	-t int      request timeout in seconds (default 10)
//	-v          verbose logging
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:3001",
//	  "request_timeout": "10s",
//	  "verbose": true
//	}
package config
