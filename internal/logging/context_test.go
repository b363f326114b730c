// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package logging

import (
	"context"
	"strings"
	"testing"
)

func TestNewCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := newCorrelationID()
	id2 := newCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestCorrelationIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := CorrelationIDFromContext(ctx); id != "" {
		t.Errorf("expected empty correlation ID, got %s", id)
	}

	ctx = ContextWithCorrelationID(ctx, "test-123")
	if id := CorrelationIDFromContext(ctx); id != "test-123" {
		t.Errorf("expected 'test-123', got '%s'", id)
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if id := CorrelationIDFromContext(ctx); len(id) != 8 {
		t.Errorf("expected generated correlation ID, got %q", id)
	}
}

func TestSessionKeyContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if key := SessionKeyFromContext(ctx); key != "" {
		t.Errorf("expected empty session key, got %s", key)
	}

	ctx = ContextWithSessionKey(ctx, "living-room-tv")
	if key := SessionKeyFromContext(ctx); key != "living-room-tv" {
		t.Errorf("expected 'living-room-tv', got '%s'", key)
	}
}

func TestCtx(t *testing.T) {
	buf := captureLogs(t, "info")

	ctx := ContextWithCorrelationID(context.Background(), "abc12345")
	ctx = ContextWithSessionKey(ctx, "session-1")

	Ctx(ctx).Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"correlation_id":"abc12345"`) {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"session_key":"session-1"`) {
		t.Errorf("expected session_key in output: %s", output)
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("no context")
	if strings.Contains(buf.String(), "correlation_id") {
		t.Errorf("unexpected correlation_id in output: %s", buf.String())
	}
}
