package fs

import (
	"sync"
	"time"

	"github.com/aretw0/silo/pkg/core"
)

// debouncer coalesces bursts of events. Each (path, type) pair gets its
// own quiet window; only the last event of a burst is delivered.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	timer *time.Timer
	event core.Event
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules event for delivery after the quiet window. A newer event
// with the same key replaces a pending one and restarts its window.
func (d *debouncer) add(event core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	key := event.Path + "|" + string(event.Type)
	if old, ok := d.pending[key]; ok {
		if old.timer.Stop() {
			d.wg.Done()
		}
		// If Stop reported false the old callback already fired; it will
		// see it lost its pending slot and bail out on its own.
	}

	p := &pendingEvent{event: event}
	d.wg.Add(1)
	d.pending[key] = p
	p.timer = time.AfterFunc(d.window, func() {
		d.fire(key, p, deliver)
	})
}

func (d *debouncer) fire(key string, p *pendingEvent, deliver func(core.Event)) {
	defer d.wg.Done()

	d.mu.Lock()
	if d.stopped || d.pending[key] != p {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	event := p.event
	d.mu.Unlock()

	deliver(event)
}

// stopAndWait rejects new events, cancels pending timers and waits for
// in-flight deliveries to finish, up to timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
