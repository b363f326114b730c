// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package interval

import (
	"errors"
	"strconv"
)

// ErrDegenerateRange is returned when an interval would have zero length.
var ErrDegenerateRange = errors.New("degenerate range: end equals start")

// ErrInvertedRange is returned when an interval would end before it starts.
var ErrInvertedRange = errors.New("inverted range: end before start")

// ErrNonFiniteBound is returned when either bound is NaN or infinite.
var ErrNonFiniteBound = errors.New("non-finite range bound")

// ConstructionError describes a rejected interval.
// Callers treat it as recoverable: the range is discarded and nothing is recorded.
type ConstructionError struct {
	Start float64
	End   float64
	Err   error
}

func (e *ConstructionError) Error() string {
	return "interval [" + formatSeconds(e.Start) + ", " + formatSeconds(e.End) + "): " + e.Err.Error()
}

// Unwrap returns the underlying sentinel error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
