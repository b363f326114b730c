// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playcover/internal/metrics"
)

// DefaultMaxLineBytes bounds a single replayed line.
const DefaultMaxLineBytes = 1 << 20

// ReplayOptions controls Replay.
type ReplayOptions struct {
	// MaxLineBytes is the longest accepted line. Zero uses DefaultMaxLineBytes.
	MaxLineBytes int

	// StopOnError aborts on the first bad line instead of skipping it.
	StopOnError bool

	// Logger receives warnings for skipped lines. Zero value discards them.
	Logger zerolog.Logger
}

// ReplayStats summarizes a replay.
type ReplayStats struct {
	Lines   int `json:"lines"`
	Events  int `json:"events"`
	Skipped int `json:"skipped"`
}

// EventFunc receives each decoded event in input order.
type EventFunc func(ctx context.Context, e *Event) error

// Replay reads newline-delimited JSON events from r and passes each to fn.
// Blank lines and lines starting with '#' are ignored.
//
//nolint:gocritic // options carry a zerolog.Logger by value
func Replay(ctx context.Context, r io.Reader, opts ReplayOptions, fn EventFunc) (ReplayStats, error) {
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	serializer := NewSerializer()
	var stats ReplayStats
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++

		event, ok, err := serializer.DecodeLine(scanner.Bytes())
		switch {
		case err != nil:
			metrics.RecordPlayerEventError(metrics.ReasonDecode)
		case !ok:
			continue
		default:
			err = fn(ctx, event)
		}
		if err != nil {
			if opts.StopOnError {
				return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			stats.Skipped++
			opts.Logger.Warn().Err(err).Int("line", stats.Lines).Msg("Skipping player event")
			continue
		}
		stats.Events++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read events: %w", err)
	}
	return stats, nil
}
