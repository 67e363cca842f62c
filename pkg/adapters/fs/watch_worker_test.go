package fs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/silo/pkg/core"
)

func waitForWatcherActive(t *testing.T, engine *Engine, active bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if state, ok := engine.State().(EngineState); ok && state.WatcherActive == active {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for watcher active=%v", active)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatchDeliversMutationEvents(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := engine.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	waitForWatcherActive(t, engine, true)

	if _, err := engine.Mutate(ctx, appendEntry("planner", "watched")); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	var got core.Event
waitLoop:
	for {
		select {
		case event, ok := <-events:
			if !ok {
				t.Fatal("Event channel closed before any event arrived")
			}
			got = event
			break waitLoop
		case <-time.After(3 * time.Second):
			t.Fatal("Timed out waiting for storage event")
		}
	}

	// Lock and temp file churn from the mutation must never surface.
	if got.Path != engine.config.Path {
		t.Errorf("Event for unexpected path: %+v", got)
	}
	if got.Type != core.EventCreate && got.Type != core.EventModify {
		t.Errorf("Unexpected event type: %+v", got)
	}
	if got.Timestamp == 0 {
		t.Error("Expected event timestamp to be set")
	}

	// Cancelling the context stops the worker and closes the channel.
	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				waitForWatcherActive(t, engine, false)
				return
			}
		case <-deadline:
			t.Fatal("Event channel not closed after cancel")
		}
	}
}

func TestWatchEventFiltering(t *testing.T) {
	engine := newTestEngine(t, nil)
	w := newWatchWorker(engine, nil)
	dir := filepath.Dir(engine.config.Path)

	tests := []struct {
		name   string
		event  fsnotify.Event
		ignore bool
	}{
		{"storage file", fsnotify.Event{Name: engine.config.Path, Op: fsnotify.Write}, false},
		{"lock sidecar", fsnotify.Event{Name: engine.config.LockPath, Op: fsnotify.Create}, true},
		{"temp file", fsnotify.Event{Name: filepath.Join(dir, TempFilePrefix+"123"), Op: fsnotify.Write}, true},
		{"sibling file", fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.shouldIgnore(tc.event); got != tc.ignore {
				t.Errorf("shouldIgnore(%s) = %v, want %v", tc.event.Name, got, tc.ignore)
			}
		})
	}
}

func TestWatchEventMapping(t *testing.T) {
	engine := newTestEngine(t, nil)
	w := newWatchWorker(engine, nil)

	tests := []struct {
		op   fsnotify.Op
		want core.EventType
	}{
		{fsnotify.Create, core.EventCreate},
		{fsnotify.Write, core.EventModify},
		{fsnotify.Remove, core.EventRemove},
		{fsnotify.Rename, core.EventRemove},
		{fsnotify.Chmod, ""},
	}

	for _, tc := range tests {
		event := fsnotify.Event{Name: engine.config.Path, Op: tc.op}
		if got := w.mapEventType(event); got != tc.want {
			t.Errorf("mapEventType(%v) = %q, want %q", tc.op, got, tc.want)
		}
	}
}
