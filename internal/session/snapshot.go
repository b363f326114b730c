// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package session

// Snapshot is the telemetry view of a session at one instant.
type Snapshot struct {
	SessionID       string   `json:"session_id"`
	State           string   `json:"state"`
	ConnectedMillis int64    `json:"connected_ms"`
	PlayedMillis    int64    `json:"played_ms"`
	Heatmap         string   `json:"heatmap"`
	PercentComplete float64  `json:"percent_complete"`
	Intervals       int      `json:"intervals"`
	DurationSeconds float64  `json:"duration_seconds,omitempty"`
	SeekOrigin      *float64 `json:"seek_origin,omitempty"`
}

// Snapshot returns the current metrics. An open interval counts up to the playhead.
func (c *Coordinator) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:       c.id,
		State:           c.state.String(),
		ConnectedMillis: c.ConnectedDurationMillis(),
		PlayedMillis:    c.PlayedDurationMillis(),
		Heatmap:         c.HeatmapReport(),
		PercentComplete: c.PercentComplete(),
		Intervals:       c.ledger.Len(),
		DurationSeconds: c.duration,
	}
	if origin, ok := c.SeekOrigin(); ok {
		snap.SeekOrigin = &origin
	}
	return snap
}
