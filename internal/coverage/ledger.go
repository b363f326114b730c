// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package coverage records the intervals a viewer watched during one playback session
// and derives connected (raw) and played (deduplicated) durations from them.
package coverage

import (
	"sort"

	"github.com/tomtom215/playcover/internal/interval"
)

// Ledger is an unordered set of recorded intervals.
// Inserting an interval that is already present has no effect.
//
// Ledger is not safe for concurrent use; callers serialize access.
type Ledger struct {
	intervals map[interval.Interval]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{intervals: make(map[interval.Interval]struct{})}
}

// Add records iv. Returns false when iv was already present or is the empty placeholder.
func (l *Ledger) Add(iv interval.Interval) bool {
	if iv.IsEmpty() {
		return false
	}
	if _, exists := l.intervals[iv]; exists {
		return false
	}
	l.intervals[iv] = struct{}{}
	return true
}

// Clear removes every recorded interval.
func (l *Ledger) Clear() {
	clear(l.intervals)
}

// Len returns the number of distinct recorded intervals.
func (l *Ledger) Len() int {
	return len(l.intervals)
}

// Intervals returns the recorded intervals sorted by start, then end.
func (l *Ledger) Intervals() []interval.Interval {
	out := make([]interval.Interval, 0, len(l.intervals))
	for iv := range l.intervals {
		out = append(out, iv)
	}
	sortIntervals(out)
	return out
}

// Normalized returns the minimal ascending, non-overlapping covering of the recorded intervals.
func (l *Ledger) Normalized() []interval.Interval {
	return Normalize(l.Intervals())
}

// CountIntersecting returns how many recorded (unmerged) intervals overlap window.
func (l *Ledger) CountIntersecting(window interval.Interval) int {
	n := 0
	for iv := range l.intervals {
		if iv.Overlaps(window) {
			n++
		}
	}
	return n
}

// RawTotalDuration sums the recorded intervals plus current, without merging.
// current is the still-open segment closed at the live playhead; pass the zero
// Interval when nothing is playing.
//
// Durations are added in start order, the same order DeduplicatedTotalDuration
// uses, so disjoint ledgers report bit-identical totals from both.
func (l *Ledger) RawTotalDuration(current interval.Interval) float64 {
	all := l.withCurrent(current)
	sortIntervals(all)
	return sumDurations(all)
}

// DeduplicatedTotalDuration sums the normalized merge of the recorded intervals and current.
// current takes part in the merge, so re-watching a recorded span adds nothing.
func (l *Ledger) DeduplicatedTotalDuration(current interval.Interval) float64 {
	return sumDurations(Normalize(l.withCurrent(current)))
}

// withCurrent returns the recorded intervals plus current when it is non-empty.
func (l *Ledger) withCurrent(current interval.Interval) []interval.Interval {
	all := l.Intervals()
	if !current.IsEmpty() {
		all = append(all, current)
	}
	return all
}

// Gaps returns the ranges of [0, duration) not covered by any recorded interval.
// Returns nil when duration is not positive.
func (l *Ledger) Gaps(duration float64) []interval.Interval {
	if !(duration > 0) {
		return nil
	}

	var gaps []interval.Interval
	cursor := 0.0
	for _, iv := range l.Normalized() {
		if iv.Start() >= duration {
			break
		}
		if iv.Start() > cursor {
			gaps = appendRange(gaps, cursor, iv.Start())
		}
		if iv.End() > cursor {
			cursor = iv.End()
		}
	}
	if cursor < duration {
		gaps = appendRange(gaps, cursor, duration)
	}
	return gaps
}

// Normalize sorts intervals by start and merges overlapping neighbours in a single pass.
// Touching intervals are kept apart. The input slice is not modified.
func Normalize(intervals []interval.Interval) []interval.Interval {
	sorted := make([]interval.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sortIntervals(sorted)

	merged := make([]interval.Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if u, ok := current.Union(next); ok {
			current = u
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

func sortIntervals(ivs []interval.Interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start() != ivs[j].Start() {
			return ivs[i].Start() < ivs[j].Start()
		}
		return ivs[i].End() < ivs[j].End()
	})
}

func sumDurations(ivs []interval.Interval) float64 {
	total := 0.0
	for _, iv := range ivs {
		total += iv.Duration()
	}
	return total
}

func appendRange(dst []interval.Interval, start, end float64) []interval.Interval {
	if iv, err := interval.New(start, end); err == nil {
		dst = append(dst, iv)
	}
	return dst
}
