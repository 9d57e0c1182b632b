package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// DefaultLatitude/DefaultLongitude are used when a command or tool call
	// does not supply coordinates. Defaults to Delhi, the convention of
	// classical Vedic reference tables.
	DefaultLatitude  float64 `json:"default_latitude"`
	DefaultLongitude float64 `json:"default_longitude"`

	// DefaultTimezone is the IANA zone applied when parsing birth times
	// without an explicit zone.
	DefaultTimezone string `json:"default_timezone"`

	// AyanamsaSystem names the sidereal offset system. Lahiri is computed
	// analytically; other systems use static reference constants.
	AyanamsaSystem string `json:"ayanamsa_system"`

	// HouseSystem is the default house division for charts.
	HouseSystem string `json:"house_system"`

	// SunriseCorrection toggles the Vedic day-boundary correction for
	// Mulanka when a birth time and coordinates are available.
	SunriseCorrection bool `json:"sunrise_correction"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized.
	// 0 means use sql.DB default. Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// TemporalWorkers bounds the temporal generator's worker pool.
	// 0 means use the built-in default.
	TemporalWorkers int `json:"temporal_workers,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultLatitude:   28.6139,
		DefaultLongitude:  77.1025,
		DefaultTimezone:   "Asia/Kolkata",
		AyanamsaSystem:    "lahiri",
		HouseSystem:       "placidus",
		SunriseCorrection: true,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.graha.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// loadFile reads a config file, overlaying it on the defaults.
func loadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
