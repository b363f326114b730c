// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package config

import (
	"github.com/tomtom215/playcover/internal/heatmap"
	"github.com/tomtom215/playcover/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Heatmap HeatmapConfig `koanf:"heatmap"`
	Logging LoggingConfig `koanf:"logging"`
	Replay  ReplayConfig  `koanf:"replay"`
}

// HeatmapConfig holds positional heatmap settings.
type HeatmapConfig struct {
	// Buckets is the number of equal-width positional buckets.
	// Default: 20
	Buckets int `koanf:"buckets" validate:"min=1,max=1000"`

	// DwellThreshold is the number of consecutive same-bucket ticks, after the
	// first, before a bucket counts as viewed.
	// Default: 5
	DwellThreshold int `koanf:"dwell_threshold" validate:"min=0,max=10000"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file:line in log output.
	Caller bool `koanf:"caller"`
}

// ReplayConfig holds settings for replaying recorded player event logs.
type ReplayConfig struct {
	// MaxLineBytes caps the size of a single NDJSON event line.
	// Default: 1MB
	MaxLineBytes int `koanf:"max_line_bytes" validate:"min=1024,max=67108864"`

	// StopOnError aborts a replay at the first malformed event instead of skipping it.
	StopOnError bool `koanf:"stop_on_error"`
}

// TrackerConfig converts the heatmap settings for heatmap.NewTracker.
func (c *Config) TrackerConfig() heatmap.Config {
	return heatmap.Config{
		Buckets:        c.Heatmap.Buckets,
		DwellThreshold: c.Heatmap.DwellThreshold,
	}
}

// LoggingInit converts the logging settings for logging.Init.
func (c *Config) LoggingInit() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
