// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playcover/internal/heatmap"
	"github.com/tomtom215/playcover/internal/logging"
	"github.com/tomtom215/playcover/internal/metrics"
	"github.com/tomtom215/playcover/internal/session"
)

// Consumer routes events to one coordinator per session key.
// All methods are safe for concurrent use.
type Consumer struct {
	mu         sync.Mutex
	cfg        heatmap.Config
	sessions   map[string]*session.Coordinator
	finished   []session.Snapshot
	serializer *Serializer
	logger     zerolog.Logger
	sessionLog zerolog.Logger
}

// NewConsumer creates a consumer whose coordinators use cfg for their heatmaps.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumer(cfg heatmap.Config, logger zerolog.Logger) *Consumer {
	return &Consumer{
		cfg:        cfg,
		sessions:   make(map[string]*session.Coordinator),
		serializer: NewSerializer(),
		logger:     logger.With().Str("component", "playerevent").Logger(),
		sessionLog: logger.With().Str("component", "session").Logger(),
	}
}

// Handle processes a single player event message. Events that cannot be
// decoded or applied are logged and acknowledged.
func (c *Consumer) Handle(msg *message.Message) error {
	ctx := msg.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if logging.CorrelationIDFromContext(ctx) == "" {
		if msg.UUID != "" {
			ctx = logging.ContextWithCorrelationID(ctx, msg.UUID)
		} else {
			ctx = logging.ContextWithNewCorrelationID(ctx)
		}
	}

	event, err := c.serializer.Unmarshal(msg.Payload)
	if err != nil {
		metrics.RecordPlayerEventError(metrics.ReasonDecode)
		logging.Ctx(ctx).Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping undecodable player event")
		return nil
	}

	if err := c.Process(ctx, event); err != nil {
		logging.Ctx(logging.ContextWithSessionKey(ctx, event.SessionKey)).Warn().
			Err(err).
			Str("message_uuid", msg.UUID).
			Msg("Dropping player event")
	}
	return nil
}

// Process validates e and applies it to its session's coordinator, creating
// the coordinator on first sight of the session key.
func (c *Consumer) Process(ctx context.Context, e *Event) error {
	if err := e.Validate(); err != nil {
		metrics.RecordPlayerEventError(metrics.ReasonValidate)
		return fmt.Errorf("validate event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Type == TypeClose {
		c.closeLocked(e.SessionKey)
		metrics.RecordPlayerEvent(e.Type)
		return nil
	}

	coord := c.sessions[e.SessionKey]
	if coord == nil {
		coord = session.New(c.cfg, session.WithSessionID(e.SessionKey), session.WithLogger(c.sessionLog))
		c.sessions[e.SessionKey] = coord
		metrics.TrackActiveSession(true)
		logging.Ctx(logging.ContextWithSessionKey(ctx, e.SessionKey)).Debug().Msg("Session opened")
	}

	if err := Apply(e, coord); err != nil {
		if errors.Is(err, ErrUnknownEventType) {
			metrics.RecordPlayerEventError(metrics.ReasonUnknownType)
		}
		return err
	}
	metrics.RecordPlayerEvent(e.Type)
	return nil
}

// Snapshot returns the current metrics of an active session.
func (c *Consumer) Snapshot(sessionKey string) (session.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coord, ok := c.sessions[sessionKey]
	if !ok {
		return session.Snapshot{}, false
	}
	return coord.Snapshot(), true
}

// Snapshots returns the metrics of all active sessions ordered by session ID.
func (c *Consumer) Snapshots() []session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]session.Snapshot, 0, len(c.sessions))
	for _, coord := range c.sessions {
		out = append(out, coord.Snapshot())
	}
	sortSnapshots(out)
	return out
}

// Len returns the number of active sessions.
func (c *Consumer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Close finishes one session and returns its final snapshot.
func (c *Consumer) Close(sessionKey string) (session.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked(sessionKey)
}

// CloseAll finishes every active session. Returns all finished snapshots,
// including sessions closed earlier, in the order they finished.
func (c *Consumer) CloseAll() []session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.sessions))
	for key := range c.sessions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		c.closeLocked(key)
	}
	return c.finishedLocked()
}

// Finished returns the snapshots of sessions closed so far.
func (c *Consumer) Finished() []session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finishedLocked()
}

func (c *Consumer) finishedLocked() []session.Snapshot {
	out := make([]session.Snapshot, len(c.finished))
	copy(out, c.finished)
	return out
}

// closeLocked requires c.mu.
func (c *Consumer) closeLocked(sessionKey string) (session.Snapshot, bool) {
	coord, ok := c.sessions[sessionKey]
	if !ok {
		return session.Snapshot{}, false
	}
	delete(c.sessions, sessionKey)
	metrics.TrackActiveSession(false)

	snap := coord.Finish()
	c.finished = append(c.finished, snap)
	c.logger.Debug().
		Str("session_key", sessionKey).
		Int64("played_ms", snap.PlayedMillis).
		Int64("connected_ms", snap.ConnectedMillis).
		Msg("Session closed")
	return snap, true
}

func sortSnapshots(s []session.Snapshot) {
	sort.Slice(s, func(i, j int) bool { return s[i].SessionID < s[j].SessionID })
}
