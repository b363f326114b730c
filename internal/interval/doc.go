// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package interval provides the time range values recorded while a viewer watches content.
//
// An Interval is an immutable range [start, end) over one session's playback timeline,
// measured in seconds of content position. Construction rejects zero-length and inverted
// ranges, so every Interval that exists has a strictly positive duration.
//
// # Overlap Rule
//
// Two intervals overlap only when they share a positive-length span:
//
//	a.Start() < b.End() && b.Start() < a.End()
//
// Touching intervals ([0,10) and [10,20)) do not overlap and have no union.
//
// # Open Intervals
//
// An Open interval tracks a range that has started but not yet stopped. Closing it
// produces an Interval or a *ConstructionError when no time has elapsed:
//
//	open := interval.Opened(12.5)
//	iv, err := open.Close(40)
//	if err != nil {
//	    // degenerate or inverted close - nothing to record
//	}
package interval
