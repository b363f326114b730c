// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/playcover/internal/session"
	"github.com/tomtom215/playcover/internal/validation"
)

// SchemaVersion is the current event schema version.
const SchemaVersion = 1

// Event types.
const (
	TypeLoad      = "load"
	TypeDuration  = "duration"
	TypePlay      = "play"
	TypePause     = "pause"
	TypeStop      = "stop"
	TypeSeekStart = "seek_start"
	TypeSeekEnd   = "seek_end"
	TypeEnded     = "ended"
	TypeTick      = "tick"
	TypeClose     = "close"
)

// Event is one player notification for one session.
type Event struct {
	SchemaVersion int       `json:"schema_version,omitempty" validate:"gte=0"`
	EventID       string    `json:"event_id,omitempty"`
	SessionKey    string    `json:"session_key" validate:"required,max=256"`
	Type          string    `json:"type" validate:"required,oneof=load duration play pause stop seek_start seek_end ended tick close"`
	Position      float64   `json:"position,omitempty" validate:"gte=0"`
	Duration      float64   `json:"duration,omitempty" validate:"gte=0"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent creates an event with a unique ID, timestamp, and schema version.
func NewEvent(sessionKey, eventType string) *Event {
	return &Event{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		SessionKey:    sessionKey,
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
	}
}

// GetSchemaVersion returns the schema version, defaulting to 1 for events without one.
func (e *Event) GetSchemaVersion() int {
	if e.SchemaVersion == 0 {
		return 1
	}
	return e.SchemaVersion
}

// Validate checks field constraints.
func (e *Event) Validate() error {
	return validation.ValidateStruct(e)
}

// Apply feeds e into c. Close events are handled by the Consumer and are
// rejected here along with unknown types.
func Apply(e *Event, c *session.Coordinator) error {
	switch e.Type {
	case TypeLoad:
		c.Reset()
		if e.Duration > 0 {
			c.OnDurationKnown(e.Duration)
		}
	case TypeDuration:
		c.OnDurationKnown(e.Duration)
	case TypePlay:
		c.OnPlay(e.Position)
	case TypePause:
		c.OnPause(e.Position)
	case TypeStop:
		c.OnStop(e.Position)
	case TypeSeekStart:
		c.OnSeekStart(e.Position)
	case TypeSeekEnd:
		c.OnSeekEnd(e.Position)
	case TypeEnded:
		c.OnEnded()
	case TypeTick:
		c.OnPositionTick(e.Position)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}
	return nil
}
