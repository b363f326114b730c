// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Coverage Metrics
	IntervalsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playcover_intervals_recorded_total",
			Help: "Total number of watched intervals added to session ledgers",
		},
	)

	DegenerateCloses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playcover_degenerate_closes_total",
			Help: "Total number of zero-length or inverted interval closes discarded",
		},
	)

	// Heatmap Metrics
	HeatmapBucketsVisited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playcover_heatmap_buckets_visited_total",
			Help: "Total number of heatmap buckets marked visited",
		},
	)

	// Player Event Metrics
	PlayerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playcover_player_events_total",
			Help: "Total number of player events applied to sessions",
		},
		[]string{"type"},
	)

	PlayerEventErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playcover_player_event_errors_total",
			Help: "Total number of player events rejected",
		},
		[]string{"reason"}, // "decode", "validate", "unknown_type"
	)

	// Session Metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playcover_active_sessions",
			Help: "Current number of sessions tracked by the event consumer",
		},
	)

	SessionsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playcover_sessions_closed_total",
			Help: "Total number of playback sessions finished",
		},
	)

	SessionPlayedSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playcover_session_played_seconds",
			Help:    "Deduplicated played time per finished session in seconds",
			Buckets: []float64{30, 60, 300, 600, 1200, 1800, 3600, 5400, 7200, 10800},
		},
	)
)

// Error reasons for PlayerEventErrors.
const (
	ReasonDecode      = "decode"
	ReasonValidate    = "validate"
	ReasonUnknownType = "unknown_type"
)

// RecordIntervalRecorded counts an interval added to a ledger.
func RecordIntervalRecorded() {
	IntervalsRecorded.Inc()
}

// RecordDegenerateClose counts a discarded zero-length or inverted close.
func RecordDegenerateClose() {
	DegenerateCloses.Inc()
}

// RecordBucketVisited counts a heatmap bucket flipping to visited.
func RecordBucketVisited() {
	HeatmapBucketsVisited.Inc()
}

// RecordPlayerEvent counts an applied player event by type.
func RecordPlayerEvent(eventType string) {
	PlayerEvents.WithLabelValues(eventType).Inc()
}

// RecordPlayerEventError counts a rejected player event by reason.
func RecordPlayerEventError(reason string) {
	PlayerEventErrors.WithLabelValues(reason).Inc()
}

// TrackActiveSession adjusts the active session gauge.
func TrackActiveSession(inc bool) {
	if inc {
		ActiveSessions.Inc()
	} else {
		ActiveSessions.Dec()
	}
}

// RecordSessionClosed counts a finished session and observes its played seconds.
func RecordSessionClosed(playedSeconds float64) {
	SessionsClosed.Inc()
	SessionPlayedSeconds.Observe(playedSeconds)
}
