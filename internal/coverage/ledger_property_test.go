// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package coverage

import (
	"testing"

	"github.com/tomtom215/playcover/internal/interval"
	"pgregory.net/rapid"
)

// Integer-valued bounds keep every sum exact in float64.
func generateIntervals(t *rapid.T, label string) []interval.Interval {
	n := rapid.IntRange(0, 12).Draw(t, label+"_count")
	out := make([]interval.Interval, 0, n)
	for i := 0; i < n; i++ {
		s := rapid.IntRange(0, 300).Draw(t, label+"_start")
		d := rapid.IntRange(1, 60).Draw(t, label+"_len")
		out = append(out, interval.MustNew(float64(s), float64(s+d)))
	}
	return out
}

// Fractional bounds: starts on tenths, lengths ending in .005, so an end never
// lands on another start and any overlap is at least 0.005 wide.
func generateFractionalIntervals(t *rapid.T, label string) []interval.Interval {
	n := rapid.IntRange(0, 40).Draw(t, label+"_count")
	out := make([]interval.Interval, 0, n)
	for i := 0; i < n; i++ {
		k := rapid.IntRange(0, 3000).Draw(t, label+"_start")
		j := rapid.IntRange(0, 500).Draw(t, label+"_len")
		s := float64(k) * 0.1
		out = append(out, interval.MustNew(s, s+0.305+0.01*float64(j)))
	}
	return out
}

func anyOverlap(ivs []interval.Interval) bool {
	for i := range ivs {
		for j := i + 1; j < len(ivs); j++ {
			if ivs[i].Overlaps(ivs[j]) {
				return true
			}
		}
	}
	return false
}

func TestProperty_NormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		once := Normalize(generateIntervals(t, "set"))
		twice := Normalize(once)
		if !equalIntervals(once, twice) {
			t.Fatalf("Normalize not idempotent: %v then %v", once, twice)
		}
	})
}

func TestProperty_NormalizeSortedAndDisjoint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := generateIntervals(t, "set")
		out := Normalize(in)

		if len(out) > len(in) {
			t.Fatalf("Normalize grew %d intervals into %d", len(in), len(out))
		}
		for i := 1; i < len(out); i++ {
			if out[i-1].Start() >= out[i].Start() {
				t.Fatalf("output not ascending at %d: %v", i, out)
			}
			if out[i-1].Overlaps(out[i]) {
				t.Fatalf("output overlaps at %d: %v", i, out)
			}
		}
	})
}

func checkDeduplicatedAgainstRaw(t *rapid.T, recorded []interval.Interval, current interval.Interval) {
	l := NewLedger()
	for _, r := range recorded {
		l.Add(r)
	}

	raw := l.RawTotalDuration(current)
	dedup := l.DeduplicatedTotalDuration(current)
	if dedup > raw {
		t.Fatalf("deduplicated %v exceeds raw %v", dedup, raw)
	}

	all := l.Intervals()
	if !current.IsEmpty() {
		all = append(all, current)
	}
	if (dedup == raw) == anyOverlap(all) {
		t.Fatalf("dedup == raw is %v but overlap present is %v (%v)", dedup == raw, anyOverlap(all), all)
	}
}

func TestProperty_DeduplicatedNeverExceedsRaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := interval.Interval{}
		if rapid.Bool().Draw(t, "has_open") {
			s := rapid.IntRange(0, 300).Draw(t, "open_start")
			d := rapid.IntRange(1, 60).Draw(t, "open_len")
			current = interval.MustNew(float64(s), float64(s+d))
		}
		checkDeduplicatedAgainstRaw(t, generateIntervals(t, "recorded"), current)
	})
}

func TestProperty_DeduplicatedNeverExceedsRawFractional(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := interval.Interval{}
		if open := generateFractionalIntervals(t, "open"); len(open) > 0 {
			current = open[0]
		}
		checkDeduplicatedAgainstRaw(t, generateFractionalIntervals(t, "recorded"), current)
	})
}
