// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import "errors"

// ErrUnknownEventType is returned when an event type has no coordinator input.
var ErrUnknownEventType = errors.New("unknown player event type")

// ErrNilSubscriber is returned when creating a router without a subscriber.
var ErrNilSubscriber = errors.New("subscriber cannot be nil")

// ErrNilConsumer is returned when creating a router without a consumer.
var ErrNilConsumer = errors.New("consumer cannot be nil")

// ErrUnsupportedSchema is returned when decoding an event written by a newer schema.
var ErrUnsupportedSchema = errors.New("unsupported player event schema version")
