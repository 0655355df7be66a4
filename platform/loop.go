package platform

import (
	"errors"
	"fmt"

	"github.com/gogpu/nativehost/internal/logging"
)

// ErrNoWindow is returned by CreateWindow when the OS has not granted a
// native window (before the first Resumed or after Suspended).
var ErrNoWindow = errors.New("platform: no native window")

// ErrDriverClosed is returned by a Driver when no more events will arrive.
var ErrDriverClosed = errors.New("platform: driver closed")

// Driver is the OS side of the loop. WaitEvent blocks until an event is
// available. Wake must unblock a pending WaitEvent from any goroutine;
// WaitEvent then returns (nil, nil).
type Driver interface {
	WaitEvent() (Event, error)
	Wake()
	CreateWindow() (Window, error)
}

// Handler receives dispatched events. All methods run on the loop
// goroutine, one at a time.
type Handler interface {
	Resumed(l *Loop)
	Suspended(l *Loop)
	WindowEvent(l *Loop, ev Event)
	UserEvent(l *Loop, v any)
	AboutToWait(l *Loop)
	Exiting(l *Loop)
}

// Loop dispatches driver events to a Handler on a single goroutine.
type Loop struct {
	driver  Driver
	user    []any
	exiting bool
	err     error
}

// NewLoop returns a loop reading events from d.
func NewLoop(d Driver) *Loop {
	return &Loop{driver: d}
}

// CreateWindow asks the driver for the current native window.
func (l *Loop) CreateWindow() (Window, error) {
	return l.driver.CreateWindow()
}

// Post appends v to the loop's deferred queue. It must be called on the
// loop goroutine. Posted values are delivered as UserEvent calls, in
// order, at the start of the next iteration.
func (l *Loop) Post(v any) {
	l.user = append(l.user, v)
}

// Exit stops dispatch after the current event finishes.
func (l *Loop) Exit() {
	l.exiting = true
}

// Fail stops dispatch after the current event and makes Run return err.
// The first failure wins.
func (l *Loop) Fail(err error) {
	if err == nil {
		return
	}
	if l.err == nil {
		l.err = err
	}
	l.exiting = true
}

// Exiting reports whether Exit or Fail has been called.
func (l *Loop) Exiting() bool { return l.exiting }

// Run dispatches events until Exit or Fail is called, or the driver
// closes. It returns the error passed to Fail, or nil.
func (l *Loop) Run(h Handler) error {
	for !l.exiting {
		l.drainUser(h)
		if l.exiting {
			break
		}
		h.AboutToWait(l)
		if l.exiting {
			break
		}
		if len(l.user) > 0 {
			// AboutToWait posted more work; deliver it before blocking.
			continue
		}

		ev, err := l.driver.WaitEvent()
		if err != nil {
			if !errors.Is(err, ErrDriverClosed) {
				l.Fail(fmt.Errorf("platform: wait event: %w", err))
			}
			break
		}
		if ev == nil {
			continue
		}
		l.dispatch(h, ev)
	}
	h.Exiting(l)
	return l.err
}

func (l *Loop) drainUser(h Handler) {
	for len(l.user) > 0 && !l.exiting {
		v := l.user[0]
		l.user[0] = nil
		l.user = l.user[1:]
		h.UserEvent(l, v)
	}
	if len(l.user) == 0 {
		l.user = nil
	}
}

func (l *Loop) dispatch(h Handler, ev Event) {
	switch ev.(type) {
	case Resumed:
		logging.L().Info("platform: resumed")
		h.Resumed(l)
	case Suspended:
		logging.L().Info("platform: suspended")
		h.Suspended(l)
	case CloseRequested:
		logging.L().Info("platform: close requested")
		h.WindowEvent(l, ev)
		l.Exit()
	default:
		h.WindowEvent(l, ev)
	}
}
