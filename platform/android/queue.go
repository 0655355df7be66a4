package android

import (
	"sync"

	"github.com/gogpu/nativehost/platform"
)

// queue carries events from the activity callbacks to the dispatch
// thread. push may be called from any goroutine.
type queue struct {
	mu       sync.Mutex
	events   []platform.Event
	redraw   bool
	closed   bool
	inflight chan struct{}
	wake     func()
}

func newQueue(wake func()) *queue {
	return &queue{wake: wake}
}

// push appends ev and wakes the dispatcher.
func (q *queue) push(ev platform.Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.events = append(q.events, ev)
	q.mu.Unlock()
	q.wake()
}

// pushSync appends ev and returns a channel closed once the dispatcher
// has finished handling it, or the queue is closed. The activity must not
// return from a window-destroyed callback before the window is released.
func (q *queue) pushSync(ev platform.Event) <-chan struct{} {
	done := make(chan struct{})
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		close(done)
		return done
	}
	q.events = append(q.events, syncEvent{Event: ev, done: done})
	q.mu.Unlock()
	q.wake()
	return done
}

// requestRedraw queues a RedrawRequested unless one is already pending.
func (q *queue) requestRedraw() {
	q.mu.Lock()
	if q.closed || q.redraw {
		q.mu.Unlock()
		return
	}
	q.redraw = true
	q.events = append(q.events, platform.RedrawRequested{})
	q.mu.Unlock()
	q.wake()
}

// pop returns the next event. Calling pop also marks the previously
// popped synchronous event as handled. ok is false when the queue is
// empty; closed reports that it is also closed, so no more events will
// arrive.
func (q *queue) pop() (ev platform.Event, ok, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.release()
	if len(q.events) == 0 {
		return nil, false, q.closed
	}
	ev = q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	switch e := ev.(type) {
	case platform.RedrawRequested:
		q.redraw = false
	case syncEvent:
		q.inflight = e.done
		ev = e.Event
	}
	return ev, true, false
}

// close stops accepting events. Events already queued are still
// delivered, but no sender waits for them any longer.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.release()
	for i, ev := range q.events {
		if e, ok := ev.(syncEvent); ok {
			close(e.done)
			q.events[i] = e.Event
		}
	}
}

func (q *queue) release() {
	if q.inflight != nil {
		close(q.inflight)
		q.inflight = nil
	}
}

// syncEvent wraps an event whose sender waits for it to be handled.
type syncEvent struct {
	platform.Event
	done chan struct{}
}
