// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

/*
Package metrics provides Prometheus instrumentation for the coverage engine.

Collectors are registered with the default registry through promauto and are
updated through the Record* helpers, so callers never touch label values directly.

# Available Metrics

Coverage:
  - playcover_intervals_recorded_total: Intervals added to a session ledger (counter)
  - playcover_degenerate_closes_total: Zero-length or inverted closes discarded (counter)

Heatmap:
  - playcover_heatmap_buckets_visited_total: Buckets marked visited (counter)

Player events:
  - playcover_player_events_total: Events applied (counter)
    Labels: type (play, pause, stop, seek_start, seek_end, ended, tick, duration)
  - playcover_player_event_errors_total: Events rejected (counter)
    Labels: reason (decode, validate, unknown_type)

Sessions:
  - playcover_active_sessions: Sessions tracked by a consumer (gauge)
  - playcover_sessions_closed_total: Sessions finished (counter)
  - playcover_session_played_seconds: Deduplicated played time per finished session (histogram)

# Testing

Use prometheus/testutil to read collector values:

	before := testutil.ToFloat64(metrics.IntervalsRecorded)
	metrics.RecordIntervalRecorded()
	after := testutil.ToFloat64(metrics.IntervalsRecorded)
*/
package metrics
