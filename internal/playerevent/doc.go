// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

/*
Package playerevent carries player lifecycle events into session coordinators.

Events are JSON objects keyed by session:

	{"session_key":"abc","type":"duration","duration":5400}
	{"session_key":"abc","type":"play","position":0}
	{"session_key":"abc","type":"tick","position":1.5}
	{"session_key":"abc","type":"pause","position":12.25}
	{"session_key":"abc","type":"close"}

A Consumer owns one session.Coordinator per session key and serializes all
access to it, so events may be delivered from any goroutine. Events reach a
Consumer three ways:

  - Consumer.Process for in-process callers
  - Replay for newline-delimited JSON files and pipes
  - Consumer.Handle as a Watermill handler, wired by NewRouter

Malformed events are counted in playcover_player_event_errors_total and
dropped; they are never retried.
*/
package playerevent
