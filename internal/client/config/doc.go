// Package config loads runtime configuration for the PaddockPress client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local SQLite database file
//	-b int      push debounce window (seconds)
//	-r bool     reconcile media index on startup
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "2s" or integer nanoseconds:
//
//	{
//	  "local_dsn": "paddockpress.db",
//	  "debounce": "2s",
//	  "reconcile_on_start": true
//	}
//
// The remote bridge endpoints and API key are NOT configured here: they live
// in the settings table of the local database so they replicate with the rest
// of the data set.
package config
