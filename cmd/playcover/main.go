// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package main is the entry point for the playcover command.
//
// playcover replays recorded player event logs through session coordinators and
// prints per-session coverage telemetry: connected time, distinct played time,
// percent complete, and the positional heatmap.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags
//   - Environment variables (HEATMAP_BUCKETS, HEATMAP_DWELL_THRESHOLD, LOG_LEVEL, ...)
//   - Config file (--config, PLAYCOVER_CONFIG, or ./playcover.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel an in-progress replay; sessions seen so far are
// still reported.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/playcover/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd())
	stop()
	os.Exit(code)
}

// execute runs root and returns the process exit code. Command errors are
// reported through the structured logger rather than cobra's plain output.
func execute(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Err(err).Str("command", root.Name()).Msg("Command failed")
		return 1
	}
	return 0
}
