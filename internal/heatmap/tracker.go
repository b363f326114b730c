// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package heatmap

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// Default tracker settings.
const (
	DefaultBuckets        = 20
	DefaultDwellThreshold = 5
)

// ErrUnknownDuration is returned when bucket boundaries cannot be computed
// because the content duration is zero, negative, or not yet known.
var ErrUnknownDuration = errors.New("content duration unknown")

// ErrPositionOutOfRange is returned for negative or non-finite positions.
var ErrPositionOutOfRange = errors.New("position out of range")

// Config holds tracker settings.
type Config struct {
	// Buckets is the number of equal-width positional buckets.
	Buckets int

	// DwellThreshold is the number of additional same-bucket ticks,
	// after the tick that entered the bucket, required to mark it visited.
	DwellThreshold int
}

// DefaultConfig returns 20 buckets with a dwell threshold of 5.
func DefaultConfig() Config {
	return Config{
		Buckets:        DefaultBuckets,
		DwellThreshold: DefaultDwellThreshold,
	}
}

// Tracker marks positional buckets visited from playhead ticks.
// Not safe for concurrent use.
type Tracker struct {
	cfg        Config
	duration   float64
	boundaries []float64
	visited    []bool
	current    int
	dwell      int
}

// NewTracker creates a tracker with unknown duration.
// Non-positive bucket counts fall back to DefaultBuckets.
func NewTracker(cfg Config) *Tracker {
	if cfg.Buckets <= 0 {
		cfg.Buckets = DefaultBuckets
	}
	if cfg.DwellThreshold < 0 {
		cfg.DwellThreshold = 0
	}
	return &Tracker{
		cfg:     cfg,
		visited: make([]bool, cfg.Buckets),
		current: -1,
	}
}

// SetDuration recomputes bucket boundaries for a new content duration and resets
// all visited flags and the dwell counter. A non-positive or non-finite duration
// leaves the tracker in the unknown-duration state.
func (t *Tracker) SetDuration(seconds float64) {
	t.duration = 0
	t.boundaries = nil
	if validDuration(seconds) {
		t.duration = seconds
		t.boundaries = computeBoundaries(seconds, t.cfg.Buckets)
	}
	t.Reset()
}

// Reset clears visited flags and dwell state, keeping the current duration.
func (t *Tracker) Reset() {
	clear(t.visited)
	t.current = -1
	t.dwell = 0
}

// Duration returns the content duration, or 0 when unknown.
func (t *Tracker) Duration() float64 {
	return t.duration
}

// Known reports whether bucket boundaries are available.
func (t *Tracker) Known() bool {
	return t.boundaries != nil
}

// Buckets returns the configured bucket count.
func (t *Tracker) Buckets() int {
	return t.cfg.Buckets
}

// Locate returns the bucket index containing position.
// A position exactly on a boundary belongs to the bucket starting there.
func (t *Tracker) Locate(position float64) (int, error) {
	if t.boundaries == nil {
		return -1, ErrUnknownDuration
	}
	return locate(t.boundaries, position)
}

// Tick records a playhead observation. Returns true when this tick marked
// a bucket visited for the first time. Ticks that cannot be located are ignored.
func (t *Tracker) Tick(position float64) bool {
	idx, err := t.Locate(position)
	if err != nil {
		return false
	}

	if idx != t.current {
		t.current = idx
		t.dwell = 0
	} else {
		t.dwell++
	}

	if t.dwell >= t.cfg.DwellThreshold && !t.visited[idx] {
		t.visited[idx] = true
		return true
	}
	return false
}

// Visited returns a copy of the visited flags in position order.
func (t *Tracker) Visited() []bool {
	out := make([]bool, len(t.visited))
	copy(out, t.visited)
	return out
}

// VisitedCount returns the number of visited buckets.
func (t *Tracker) VisitedCount() int {
	n := 0
	for _, v := range t.visited {
		if v {
			n++
		}
	}
	return n
}

// Report joins the visited flags as comma-separated 0/1 values.
func (t *Tracker) Report() string {
	return joinFlags(len(t.visited), func(i int) bool { return t.visited[i] })
}

func validDuration(seconds float64) bool {
	return seconds > 0 && !math.IsInf(seconds, 0)
}

// computeBoundaries returns the lower bound of each bucket.
func computeBoundaries(duration float64, buckets int) []float64 {
	b := make([]float64, buckets)
	for k := range b {
		b[k] = duration * float64(k) / float64(buckets)
	}
	return b
}

// locate counts the boundaries <= position; the bucket is that count minus one.
func locate(boundaries []float64, position float64) (int, error) {
	if math.IsNaN(position) || math.IsInf(position, 0) || position < 0 {
		return -1, ErrPositionOutOfRange
	}
	count := sort.Search(len(boundaries), func(i int) bool { return boundaries[i] > position })
	return count - 1, nil
}

func joinFlags(n int, set func(int) bool) string {
	var sb strings.Builder
	sb.Grow(2 * n)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if set(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
