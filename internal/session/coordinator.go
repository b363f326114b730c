// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package session drives coverage tracking for one playback session from player
// lifecycle and position events.
//
// A Coordinator is either Idle or Playing. Play opens an interval at the reported
// position; pause, stop, seek start and end of media close it into the session
// ledger. Closes with no elapsed time are discarded silently. Position ticks feed
// the positional heatmap independently of the lifecycle state.
//
// A Coordinator is single-threaded. Hosts that deliver events from several
// goroutines must serialize them (see playerevent.Consumer).
package session

import (
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playcover/internal/coverage"
	"github.com/tomtom215/playcover/internal/heatmap"
	"github.com/tomtom215/playcover/internal/interval"
	"github.com/tomtom215/playcover/internal/logging"
	"github.com/tomtom215/playcover/internal/metrics"
)

// State is the playback state of a session.
type State int

const (
	// StateIdle means no interval is open.
	StateIdle State = iota
	// StatePlaying means one interval is open.
	StatePlaying
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for swallowed conditions.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(c *Coordinator) {
		if id != "" {
			c.id = id
		}
	}
}

// Coordinator tracks one playback session.
type Coordinator struct {
	id      string
	ledger  *coverage.Ledger
	tracker *heatmap.Tracker
	logger  zerolog.Logger

	state    State
	open     interval.Open
	playhead float64
	duration float64

	seekOrigin    float64
	hasSeekOrigin bool
	seeking       bool
}

// New creates an idle coordinator with an empty ledger and unknown duration.
func New(cfg heatmap.Config, opts ...Option) *Coordinator {
	c := &Coordinator{
		id:      uuid.New().String(),
		ledger:  coverage.NewLedger(),
		tracker: heatmap.NewTracker(cfg),
		state:   StateIdle,
	}
	c.logger = logging.WithComponent("session")
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("session_id", c.id).Logger()
	return c
}

// ID returns the session identifier.
func (c *Coordinator) ID() string { return c.id }

// State returns the current playback state.
func (c *Coordinator) State() State { return c.state }

// Playhead returns the last reported position in seconds.
func (c *Coordinator) Playhead() float64 { return c.playhead }

// Duration returns the content duration in seconds, or 0 when unknown.
func (c *Coordinator) Duration() float64 { return c.duration }

// Seeking reports whether a seek has started and not yet completed.
func (c *Coordinator) Seeking() bool { return c.seeking }

// SeekOrigin returns the position the most recent seek started from.
func (c *Coordinator) SeekOrigin() (float64, bool) {
	return c.seekOrigin, c.hasSeekOrigin
}

// OnDurationKnown sets the content duration and recomputes heatmap buckets.
// A non-positive duration returns the heatmap to the unknown-duration state.
func (c *Coordinator) OnDurationKnown(seconds float64) {
	c.tracker.SetDuration(seconds)
	c.duration = c.tracker.Duration()
	if !c.tracker.Known() {
		c.logger.Debug().Float64("duration", seconds).Msg("Content duration unknown, heatmap disabled")
	}
}

// OnPlay opens an interval at position. Redundant plays while playing are ignored.
func (c *Coordinator) OnPlay(position float64) {
	if !isFinite(position) {
		c.logger.Debug().Float64("position", position).Msg("Ignoring play at non-finite position")
		return
	}
	c.playhead = position
	if c.state == StatePlaying {
		c.logger.Debug().
			Float64("position", position).
			Float64("open_start", c.open.Start()).
			Msg("Ignoring redundant play")
		return
	}
	c.open = interval.Opened(position)
	c.state = StatePlaying
}

// OnPause closes the open interval at position.
func (c *Coordinator) OnPause(position float64) {
	c.closeAt(position, "pause")
}

// OnStop closes the open interval at position.
func (c *Coordinator) OnStop(position float64) {
	c.closeAt(position, "stop")
}

// OnSeekStart closes the open interval at position and remembers it as the seek origin.
func (c *Coordinator) OnSeekStart(position float64) {
	c.closeAt(position, "seek")
	if isFinite(position) {
		c.seekOrigin = position
		c.hasSeekOrigin = true
	}
	c.seeking = true
}

// OnSeekEnd opens a fresh interval at the seek destination.
func (c *Coordinator) OnSeekEnd(position float64) {
	c.seeking = false
	c.OnPlay(position)
}

// OnEnded closes the open interval at the content duration, or at the last
// playhead when the duration is unknown.
func (c *Coordinator) OnEnded() {
	end := c.playhead
	if c.duration > 0 {
		end = c.duration
	}
	c.closeAt(end, "ended")
}

// OnPositionTick records a playhead observation for the heatmap.
func (c *Coordinator) OnPositionTick(position float64) {
	if !isFinite(position) {
		return
	}
	c.playhead = position
	if c.tracker.Tick(position) {
		metrics.RecordBucketVisited()
	}
}

// closeAt moves to Idle, recording [open, position) when it has positive length.
func (c *Coordinator) closeAt(position float64, reason string) {
	if isFinite(position) {
		c.playhead = position
	}
	if c.state != StatePlaying {
		return
	}
	c.state = StateIdle

	iv, err := c.open.Close(position)
	if err != nil {
		metrics.RecordDegenerateClose()
		c.logger.Debug().
			Err(err).
			Str("reason", reason).
			Msg("Discarding degenerate interval")
		return
	}
	if c.ledger.Add(iv) {
		metrics.RecordIntervalRecorded()
	}
}

// current is the open interval closed at the live playhead, or the empty placeholder.
func (c *Coordinator) current() interval.Interval {
	if c.state != StatePlaying {
		return interval.Interval{}
	}
	return c.open.ClosedAt(c.playhead)
}

// ConnectedDuration returns the raw playing time in seconds, counting re-watched spans.
func (c *Coordinator) ConnectedDuration() float64 {
	return c.ledger.RawTotalDuration(c.current())
}

// PlayedDuration returns the distinct content time watched in seconds.
func (c *Coordinator) PlayedDuration() float64 {
	return c.ledger.DeduplicatedTotalDuration(c.current())
}

// ConnectedDurationMillis returns ConnectedDuration in rounded milliseconds.
func (c *Coordinator) ConnectedDurationMillis() int64 {
	return toMillis(c.ConnectedDuration())
}

// PlayedDurationMillis returns PlayedDuration in rounded milliseconds.
func (c *Coordinator) PlayedDurationMillis() int64 {
	return toMillis(c.PlayedDuration())
}

// HeatmapReport returns the comma-separated visited flags.
func (c *Coordinator) HeatmapReport() string {
	return c.tracker.Report()
}

// Histogram returns per-bucket counts of recorded intervals.
func (c *Coordinator) Histogram() (heatmap.Histogram, error) {
	return heatmap.BuildHistogram(c.ledger, c.duration, c.tracker.Buckets())
}

// Normalized returns the merged recorded intervals, excluding any open interval.
func (c *Coordinator) Normalized() []interval.Interval {
	return c.ledger.Normalized()
}

// Gaps returns the unwatched ranges of the content, excluding any open interval.
func (c *Coordinator) Gaps() []interval.Interval {
	return c.ledger.Gaps(c.duration)
}

// PercentComplete returns played time as a percentage of the content duration,
// clamped to 100 and rounded to two decimals. Returns 0 when the duration is unknown.
func (c *Coordinator) PercentComplete() float64 {
	if c.duration <= 0 {
		return 0
	}
	pct := c.PlayedDuration() / c.duration * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*100) / 100
}

// Reset prepares the coordinator for new content: the ledger, heatmap, duration,
// and playback state are cleared. The session ID is kept.
func (c *Coordinator) Reset() {
	c.ledger.Clear()
	c.tracker.SetDuration(0)
	c.duration = 0
	c.state = StateIdle
	c.open = interval.Open{}
	c.playhead = 0
	c.seekOrigin = 0
	c.hasSeekOrigin = false
	c.seeking = false
}

// Finish closes any open interval at the playhead and returns the final snapshot.
func (c *Coordinator) Finish() Snapshot {
	c.closeAt(c.playhead, "finish")
	snap := c.Snapshot()
	metrics.RecordSessionClosed(c.PlayedDuration())
	return snap
}

func toMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
