// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Serializer converts player events to and from their JSON wire form, both as
// message payloads and as newline-delimited log lines.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal validates an event and encodes it as a single JSON object.
// Events without a schema version are stamped with SchemaVersion.
func (s *Serializer) Marshal(event *Event) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	out := *event
	if out.SchemaVersion == 0 {
		out.SchemaVersion = SchemaVersion
	}
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes one JSON event. It does not validate field constraints.
func (s *Serializer) Unmarshal(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if v := event.GetSchemaVersion(); v > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, v)
	}
	return &event, nil
}

// DecodeLine decodes one line of an event log. Surrounding whitespace is
// ignored. Blank lines and lines starting with '#' carry no event and
// report ok=false with a nil error.
func (s *Serializer) DecodeLine(line []byte) (event *Event, ok bool, err error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return nil, false, nil
	}
	event, err = s.Unmarshal(line)
	if err != nil {
		return nil, false, err
	}
	return event, true, nil
}
