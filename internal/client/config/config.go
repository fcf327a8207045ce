package config

import "time"

// Config holds runtime settings for the PaddockPress client.
//
// Fields:
//   - LocalDSN: path of the local SQLite database file.
//   - Debounce: how long a quiet period must last before queued writes are
//     pushed to the bridge.
//   - ReconcileOnStart: whether to reconcile the media index against the
//     remote listing right after startup (when a bridge is configured).
//
// Units: Debounce is a time.Duration (e.g., 2*time.Second).
type Config struct {
	LocalDSN         string
	Debounce         time.Duration
	ReconcileOnStart bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LocalDSN = "paddockpress.db"
	c.Debounce = 2 * time.Second
	c.ReconcileOnStart = true
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
