// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package interval

import (
	"math"
)

// Interval is an immutable range [start, end) in seconds with end > start.
// The zero value is the empty placeholder: it has no duration and overlaps nothing.
type Interval struct {
	start float64
	end   float64
}

// New creates an Interval spanning [start, end).
// Returns a *ConstructionError wrapping ErrDegenerateRange, ErrInvertedRange,
// or ErrNonFiniteBound when the range is not valid.
func New(start, end float64) (Interval, error) {
	if !isFinite(start) || !isFinite(end) {
		return Interval{}, &ConstructionError{Start: start, End: end, Err: ErrNonFiniteBound}
	}
	if end == start {
		return Interval{}, &ConstructionError{Start: start, End: end, Err: ErrDegenerateRange}
	}
	if end < start {
		return Interval{}, &ConstructionError{Start: start, End: end, Err: ErrInvertedRange}
	}
	return Interval{start: start, end: end}, nil
}

// MustNew is like New but panics on an invalid range.
// Intended for tests and constant tables.
func MustNew(start, end float64) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Start returns the inclusive lower bound in seconds.
func (i Interval) Start() float64 { return i.start }

// End returns the exclusive upper bound in seconds.
func (i Interval) End() float64 { return i.end }

// Duration returns end - start. The empty placeholder has zero duration.
func (i Interval) Duration() float64 {
	if i.IsEmpty() {
		return 0
	}
	return i.end - i.start
}

// IsEmpty reports whether i is the zero-value placeholder.
func (i Interval) IsEmpty() bool {
	return i.end <= i.start
}

// Overlaps reports whether i and o share a positive-length span.
// Touching intervals (i.End() == o.Start()) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	return i.start < o.end && o.start < i.end
}

// Union returns the interval spanning both i and o when they overlap.
// The second result is false when there is no union.
func (i Interval) Union(o Interval) (Interval, bool) {
	if !i.Overlaps(o) {
		return Interval{}, false
	}
	return Interval{start: math.Min(i.start, o.start), end: math.Max(i.end, o.end)}, true
}

// Contains reports whether position t lies within [start, end).
func (i Interval) Contains(t float64) bool {
	return !i.IsEmpty() && t >= i.start && t < i.end
}

// String renders the interval as [start, end).
func (i Interval) String() string {
	if i.IsEmpty() {
		return "[)"
	}
	return "[" + formatSeconds(i.start) + ", " + formatSeconds(i.end) + ")"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
