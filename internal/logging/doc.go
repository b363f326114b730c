// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package logging provides centralized zerolog-based structured logging for Playcover.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("file", path).Msg("Replay started")
//	logging.Error().Err(err).Msg("Replay failed")
//
//	// Context-aware logging
//	logging.Ctx(ctx).Debug().Msg("Event applied")
//
// # Component Loggers
//
// Long-lived components take a logger at construction time. The default is a
// component logger derived from the global one:
//
//	logger := logging.WithComponent("session")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
package logging
