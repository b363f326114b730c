// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package config

import (
	"fmt"

	"github.com/tomtom215/playcover/internal/validation"
)

// Validate checks that configuration values are within supported ranges.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Heatmap); err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}
	if err := validation.ValidateStruct(&c.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := validation.ValidateStruct(&c.Replay); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}
