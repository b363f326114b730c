// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package playerevent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playcover/internal/heatmap"
	"github.com/tomtom215/playcover/internal/logging"
	"github.com/tomtom215/playcover/internal/metrics"
)

func newTestConsumer() *Consumer {
	return NewConsumer(heatmap.DefaultConfig(), logging.NewTestLogger(io.Discard))
}

func mustProcess(t *testing.T, c *Consumer, events ...*Event) {
	t.Helper()
	for _, e := range events {
		if err := c.Process(context.Background(), e); err != nil {
			t.Fatalf("Process(%s %s) error = %v", e.SessionKey, e.Type, err)
		}
	}
}

func TestConsumer_ProcessTracksSessionsIndependently(t *testing.T) {
	t.Parallel()

	c := newTestConsumer()
	mustProcess(t, c,
		&Event{SessionKey: "a", Type: TypeDuration, Duration: 100},
		&Event{SessionKey: "a", Type: TypePlay, Position: 0},
		&Event{SessionKey: "b", Type: TypePlay, Position: 30},
		&Event{SessionKey: "a", Type: TypePause, Position: 25},
		&Event{SessionKey: "b", Type: TypeTick, Position: 40},
	)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	a, ok := c.Snapshot("a")
	if !ok {
		t.Fatal("Snapshot(a) missing")
	}
	if a.PlayedMillis != 25000 || a.PercentComplete != 25 || a.State != "idle" {
		t.Errorf("Snapshot(a) = %+v", a)
	}

	b, _ := c.Snapshot("b")
	if b.ConnectedMillis != 10000 || b.State != "playing" {
		t.Errorf("Snapshot(b) = %+v", b)
	}

	snaps := c.Snapshots()
	if len(snaps) != 2 || snaps[0].SessionID != "a" || snaps[1].SessionID != "b" {
		t.Errorf("Snapshots() = %+v, want a then b", snaps)
	}

	if _, ok := c.Snapshot("missing"); ok {
		t.Error("Snapshot(missing) should report false")
	}
}

func TestConsumer_ProcessRejectsInvalid(t *testing.T) {
	t.Parallel()

	c := newTestConsumer()
	err := c.Process(context.Background(), &Event{SessionKey: "a", Type: "rewind"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after rejected event", c.Len())
	}
}

func TestConsumer_CloseEvent(t *testing.T) {
	t.Parallel()

	c := newTestConsumer()
	mustProcess(t, c,
		&Event{SessionKey: "a", Type: TypePlay, Position: 0},
		&Event{SessionKey: "a", Type: TypeTick, Position: 8},
		&Event{SessionKey: "a", Type: TypeClose},
		&Event{SessionKey: "unknown", Type: TypeClose},
	)

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	finished := c.Finished()
	if len(finished) != 1 {
		t.Fatalf("Finished() = %+v, want one snapshot", finished)
	}
	if finished[0].PlayedMillis != 8000 || finished[0].State != "idle" {
		t.Errorf("Finished()[0] = %+v", finished[0])
	}
}

func TestConsumer_CloseAll(t *testing.T) {
	t.Parallel()

	c := newTestConsumer()
	mustProcess(t, c,
		&Event{SessionKey: "z", Type: TypePlay, Position: 0},
		&Event{SessionKey: "z", Type: TypeClose},
		&Event{SessionKey: "b", Type: TypePlay, Position: 0},
		&Event{SessionKey: "a", Type: TypePlay, Position: 0},
	)

	all := c.CloseAll()
	if len(all) != 3 {
		t.Fatalf("CloseAll() = %+v, want 3 snapshots", all)
	}
	order := []string{all[0].SessionID, all[1].SessionID, all[2].SessionID}
	if order[0] != "z" || order[1] != "a" || order[2] != "b" {
		t.Errorf("CloseAll() order = %v, want [z a b]", order)
	}
	if _, ok := c.Close("a"); ok {
		t.Error("Close(a) after CloseAll should report false")
	}
}

func TestConsumer_ConcurrentSessions(t *testing.T) {
	t.Parallel()

	c := newTestConsumer()
	const sessions = 8

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			for pos := 0.0; pos < 10; pos++ {
				_ = c.Process(context.Background(), &Event{SessionKey: key, Type: TypePlay, Position: pos})
				_ = c.Process(context.Background(), &Event{SessionKey: key, Type: TypePause, Position: pos + 1})
			}
		}(fmt.Sprintf("s%d", i))
	}
	wg.Wait()

	snaps := c.Snapshots()
	if len(snaps) != sessions {
		t.Fatalf("Snapshots() len = %d, want %d", len(snaps), sessions)
	}
	for _, s := range snaps {
		if s.PlayedMillis != 10000 || s.ConnectedMillis != 10000 || s.Intervals != 10 {
			t.Errorf("session %s = %+v, want 10 touching one-second intervals", s.SessionID, s)
		}
	}
}

// Not parallel: reads process-wide collectors.
func TestConsumer_HandleDropsBadMessages(t *testing.T) {
	c := newTestConsumer()

	decode := testutil.ToFloat64(metrics.PlayerEventErrors.WithLabelValues(metrics.ReasonDecode))
	validate := testutil.ToFloat64(metrics.PlayerEventErrors.WithLabelValues(metrics.ReasonValidate))
	plays := testutil.ToFloat64(metrics.PlayerEvents.WithLabelValues(TypePlay))

	msgs := []*message.Message{
		message.NewMessage("m1", []byte(`{garbage`)),
		message.NewMessage("m2", []byte(`{"session_key":"","type":"play"}`)),
		message.NewMessage("m3", []byte(`{"session_key":"a","type":"play","position":1}`)),
	}
	for _, msg := range msgs {
		if err := c.Handle(msg); err != nil {
			t.Errorf("Handle(%s) error = %v, want nil", msg.UUID, err)
		}
	}

	if got := testutil.ToFloat64(metrics.PlayerEventErrors.WithLabelValues(metrics.ReasonDecode)) - decode; got != 1 {
		t.Errorf("decode errors delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.PlayerEventErrors.WithLabelValues(metrics.ReasonValidate)) - validate; got != 1 {
		t.Errorf("validate errors delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.PlayerEvents.WithLabelValues(TypePlay)) - plays; got != 1 {
		t.Errorf("play events delta = %v, want 1", got)
	}
	if snap, ok := c.Snapshot("a"); !ok || snap.State != "playing" {
		t.Errorf("Snapshot(a) = %+v, %v", snap, ok)
	}
}

// Not parallel: reads process-wide collectors.
func TestConsumer_ActiveSessionGauge(t *testing.T) {
	c := newTestConsumer()
	before := testutil.ToFloat64(metrics.ActiveSessions)
	closed := testutil.ToFloat64(metrics.SessionsClosed)

	mustProcess(t, c,
		&Event{SessionKey: "g1", Type: TypePlay},
		&Event{SessionKey: "g2", Type: TypePlay},
	)
	if got := testutil.ToFloat64(metrics.ActiveSessions) - before; got != 2 {
		t.Errorf("ActiveSessions delta = %v, want 2", got)
	}

	c.CloseAll()
	if got := testutil.ToFloat64(metrics.ActiveSessions) - before; got != 0 {
		t.Errorf("ActiveSessions delta after CloseAll = %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.SessionsClosed) - closed; got != 2 {
		t.Errorf("SessionsClosed delta = %v, want 2", got)
	}
}

func TestConsumer_ProcessUnknownTypeCounted(t *testing.T) {
	t.Parallel()

	// Close is valid on the wire but has no coordinator input; Apply is the
	// only path that can see an unknown type after validation.
	if err := Apply(&Event{Type: "bogus"}, nil); !errors.Is(err, ErrUnknownEventType) {
		t.Errorf("Apply(bogus) error = %v, want ErrUnknownEventType", err)
	}
}

// Not parallel: changes the global log level.
func TestConsumer_CoordinatorsLogAsSession(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	c := NewConsumer(heatmap.DefaultConfig(), logging.NewTestLogger(&buf))
	mustProcess(t, c,
		&Event{SessionKey: "a", Type: TypePlay, Position: 3},
		&Event{SessionKey: "a", Type: TypePause, Position: 3},
	)

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "Discarding degenerate interval") {
			line = l
		}
	}
	if line == "" {
		t.Fatalf("no degenerate close logged: %s", buf.String())
	}
	if strings.Count(line, `"component"`) != 1 || !strings.Contains(line, `"component":"session"`) {
		t.Errorf("coordinator log line = %s, want a single component=session field", line)
	}
	if !strings.Contains(line, `"session_id":"a"`) {
		t.Errorf("coordinator log line = %s, want session_id=a", line)
	}
}

// Not parallel: replaces the global logger.
func TestConsumer_HandleAssignsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "warn", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	c := newTestConsumer()
	for _, uuid := range []string{"m-fixed", ""} {
		buf.Reset()
		if err := c.Handle(message.NewMessage(uuid, []byte(`{garbage`))); err != nil {
			t.Fatalf("Handle(%q) error = %v", uuid, err)
		}

		var entry map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
			t.Fatalf("Handle(%q) log is not one JSON line: %v (%s)", uuid, err, buf.String())
		}
		id, _ := entry["correlation_id"].(string)
		switch {
		case uuid != "" && id != uuid:
			t.Errorf("correlation_id = %q, want message UUID %q", id, uuid)
		case uuid == "" && id == "":
			t.Error("message without UUID was logged without a correlation_id")
		}
	}
}
