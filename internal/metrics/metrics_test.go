// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getHistogram extracts the sample count and sum from a Prometheus histogram
func getHistogram(t *testing.T, h prometheus.Histogram) (count uint64, sum float64) {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestCounters(t *testing.T) {
	tests := []struct {
		name    string
		record  func()
		counter prometheus.Counter
	}{
		{"intervals recorded", RecordIntervalRecorded, IntervalsRecorded},
		{"degenerate closes", RecordDegenerateClose, DegenerateCloses},
		{"buckets visited", RecordBucketVisited, HeatmapBucketsVisited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.counter)
			tt.record()
			if got := testutil.ToFloat64(tt.counter); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordPlayerEvent(t *testing.T) {
	before := testutil.ToFloat64(PlayerEvents.WithLabelValues("play"))
	RecordPlayerEvent("play")
	RecordPlayerEvent("play")
	if got := testutil.ToFloat64(PlayerEvents.WithLabelValues("play")); got != before+2 {
		t.Errorf("play events = %v, want %v", got, before+2)
	}
}

func TestRecordPlayerEventError(t *testing.T) {
	for _, reason := range []string{ReasonDecode, ReasonValidate, ReasonUnknownType} {
		before := testutil.ToFloat64(PlayerEventErrors.WithLabelValues(reason))
		RecordPlayerEventError(reason)
		if got := testutil.ToFloat64(PlayerEventErrors.WithLabelValues(reason)); got != before+1 {
			t.Errorf("%s errors = %v, want %v", reason, got, before+1)
		}
	}
}

func TestTrackActiveSession(t *testing.T) {
	before := testutil.ToFloat64(ActiveSessions)

	TrackActiveSession(true)
	TrackActiveSession(true)
	if got := testutil.ToFloat64(ActiveSessions); got != before+2 {
		t.Errorf("active sessions = %v, want %v", got, before+2)
	}

	TrackActiveSession(false)
	if got := testutil.ToFloat64(ActiveSessions); got != before+1 {
		t.Errorf("active sessions = %v, want %v", got, before+1)
	}
	TrackActiveSession(false)
}

func TestRecordSessionClosed(t *testing.T) {
	before := testutil.ToFloat64(SessionsClosed)
	samplesBefore := testutil.CollectAndCount(SessionPlayedSeconds)
	countBefore, sumBefore := getHistogram(t, SessionPlayedSeconds)

	RecordSessionClosed(1500)

	count, sum := getHistogram(t, SessionPlayedSeconds)
	if count != countBefore+1 {
		t.Errorf("histogram sample count = %d, want %d", count, countBefore+1)
	}
	if sum-sumBefore != 1500 {
		t.Errorf("histogram sum delta = %v, want 1500", sum-sumBefore)
	}

	if got := testutil.ToFloat64(SessionsClosed); got != before+1 {
		t.Errorf("sessions closed = %v, want %v", got, before+1)
	}
	// A histogram is collected as a single metric regardless of observations.
	if got := testutil.CollectAndCount(SessionPlayedSeconds); got != samplesBefore {
		t.Errorf("CollectAndCount = %d, want %d", got, samplesBefore)
	}
}
