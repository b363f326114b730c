// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package interval

// Open is a half-open range that has started at a known position and not yet stopped.
type Open struct {
	start float64
}

// Opened returns an Open interval anchored at start.
func Opened(start float64) Open {
	return Open{start: start}
}

// Start returns the position at which the range was opened.
func (o Open) Start() float64 { return o.start }

// Close converts the open range into an Interval ending at end.
// A close at the opening instant (or earlier) yields a *ConstructionError.
func (o Open) Close(end float64) (Interval, error) {
	return New(o.start, end)
}

// ClosedAt is like Close but returns the empty placeholder instead of an error.
// Used for the hypothetical "closed at the live playhead" interval in metrics.
func (o Open) ClosedAt(end float64) Interval {
	iv, err := o.Close(end)
	if err != nil {
		return Interval{}
	}
	return iv
}
