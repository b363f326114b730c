// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package config loads Playcover configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//
//  1. Built-in defaults
//  2. YAML file: $PLAYCOVER_CONFIG, ./playcover.yaml, /etc/playcover/config.yaml
//  3. Environment variables
//
// Environment variables:
//
//	HEATMAP_BUCKETS          - positional buckets (default: 20)
//	HEATMAP_DWELL_THRESHOLD  - consecutive ticks before a bucket counts (default: 5)
//	LOG_LEVEL                - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT               - json, console (default: json)
//	LOG_CALLER               - include caller file:line (default: false)
//	REPLAY_MAX_LINE_BYTES    - maximum NDJSON line size (default: 1048576)
//	REPLAY_STOP_ON_ERROR     - abort replay on the first bad event (default: false)
//
// Example config file:
//
//	heatmap:
//	  buckets: 20
//	  dwell_threshold: 5
//	logging:
//	  level: debug
//	  format: console
//
// Configuration is validated with go-playground/validator struct tags. The engine
// itself never reads configuration: callers pass Config.TrackerConfig() explicitly.
package config
