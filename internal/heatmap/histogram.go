// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package heatmap

import (
	"github.com/tomtom215/playcover/internal/interval"
)

// IntersectionCounter counts recorded intervals overlapping a window.
// Implemented by *coverage.Ledger.
type IntersectionCounter interface {
	CountIntersecting(window interval.Interval) int
}

// Histogram holds per-bucket intersection counts in position order.
type Histogram struct {
	Counts []int `json:"counts"`
}

// BuildHistogram counts, for each of buckets equal-width ranges of [0, duration),
// how many recorded intervals intersect it. With an unknown duration it returns
// all-zero counts and ErrUnknownDuration.
func BuildHistogram(src IntersectionCounter, duration float64, buckets int) (Histogram, error) {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	h := Histogram{Counts: make([]int, buckets)}
	if !validDuration(duration) {
		return h, ErrUnknownDuration
	}

	boundaries := computeBoundaries(duration, buckets)
	for i, lo := range boundaries {
		hi := duration
		if i+1 < len(boundaries) {
			hi = boundaries[i+1]
		}
		window, err := interval.New(lo, hi)
		if err != nil {
			continue
		}
		h.Counts[i] = src.CountIntersecting(window)
	}
	return h, nil
}

// Flags renders buckets with at least one intersecting interval as 1.
func (h Histogram) Flags() string {
	return joinFlags(len(h.Counts), func(i int) bool { return h.Counts[i] > 0 })
}

// Max returns the highest bucket count.
func (h Histogram) Max() int {
	m := 0
	for _, c := range h.Counts {
		if c > m {
			m = c
		}
	}
	return m
}
