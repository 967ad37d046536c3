// Package config loads runtime configuration for the movie API CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the API server
//	-r duration   per-request timeout
//	-d string     SQLite file for the offline catalog cache ("" disables it)
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "cache_dsn": "cache/movies.db"
//	}
package config
