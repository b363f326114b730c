// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

// Package heatmap tracks which positional sections of a piece of content were viewed.
//
// The content duration D is split into a fixed number of equal-width buckets
// (20 by default). Bucket k covers [k*D/N, (k+1)*D/N); the last bucket is closed
// at D, and positions past D fall into it.
//
// # Live Tracking
//
// Tracker consumes periodic playhead ticks. A bucket is marked visited only after
// sustained dwell: the first tick in a bucket starts its dwell counter at zero, each
// following tick in the same bucket increments it, and the bucket flips once the
// counter reaches the dwell threshold (5 by default, i.e. six consecutive ticks).
// Scrubbing through a bucket during a seek therefore never marks it.
//
//	tr := heatmap.NewTracker(heatmap.DefaultConfig())
//	tr.SetDuration(100)
//	for i := 0; i < 6; i++ {
//	    tr.Tick(12)
//	}
//	tr.Report() // "0,0,1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"
//
// Until a positive duration is known every tick is ignored and Report returns
// all-zero flags.
//
// # Historical Reporting
//
// BuildHistogram counts, per bucket, how many recorded intervals intersect the
// bucket's range. It is used for sessions reconstructed from a coverage ledger
// rather than from live ticks.
package heatmap
