package ui

import (
	"github.com/gogpu/nativehost/internal/logging"
	"github.com/gogpu/nativehost/paint"
	"github.com/gogpu/nativehost/text"
)

// HostOption configures a Host.
type HostOption func(*hostOptions)

type hostOptions struct {
	theme Theme
	font  *text.Font
}

// WithTheme sets the widget theme.
func WithTheme(t Theme) HostOption {
	return func(o *hostOptions) { o.theme = t }
}

// WithFont sets the UI font. The default is Go Regular.
func WithFont(f *text.Font) HostOption {
	return func(o *hostOptions) { o.font = f }
}

// Host owns a Program, its pending event queue and the laid-out view.
// A Host is used from one goroutine.
type Host struct {
	program Program
	env     *env
	bounds  Size
	root    *node
	queue   []Event
	cursor  Cursor
	sh      shell
	gen     uint64
}

// NewHost returns a host for p laid out within bounds.
func NewHost(p Program, bounds Size, opts ...HostOption) *Host {
	o := hostOptions{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.font == nil {
		f, err := text.Default()
		if err != nil {
			logging.L().Warn("ui: default font unavailable, text will not render", "err", err)
		}
		o.font = f
	}
	h := &Host{program: p, env: newEnv(o.theme, o.font), bounds: bounds}
	h.layout()
	return h
}

// Program returns the hosted program.
func (h *Host) Program() Program { return h.program }

// Bounds returns the logical size the view is laid out in.
func (h *Host) Bounds() Size { return h.bounds }

// QueueEvent appends ev to the pending queue.
func (h *Host) QueueEvent(ev Event) {
	h.queue = append(h.queue, ev)
}

// IsQueueEmpty reports whether no events are pending.
func (h *Host) IsQueueEmpty() bool { return len(h.queue) == 0 }

// Update drains the pending queue in one pass. Every queued event is
// delivered to the widget tree in arrival order, the messages it produced
// are applied to the program in the same order, and the view is rebuilt
// once at the end. Commands other than None are returned in order.
//
// Draining an empty queue is a no-op and returns nil.
func (h *Host) Update(bounds Size, cursor Cursor, clipboard Clipboard) []Command {
	if len(h.queue) == 0 {
		return nil
	}
	h.Resize(bounds)

	// Events carry their own positions; clicks use the last position
	// seen in this batch, starting from where the previous batch ended.
	cur := h.cursor
	if !cur.Available {
		cur = cursor
	}

	h.sh.clipboard = clipboard
	var msgs []Message
	for _, ev := range h.queue {
		switch ev := ev.(type) {
		case CursorMoved:
			cur = CursorAt(ev.Position)
		case CursorLeft:
			cur = Unavailable
		case Touch:
			if ev.Phase == FingerLifted || ev.Phase == FingerLost {
				cur = Unavailable
			} else {
				cur = CursorAt(ev.Position)
			}
		}
		h.dispatch(ev, cur)
		msgs = h.sh.flush(msgs)
	}
	clear(h.queue)
	h.queue = h.queue[:0]
	h.sh.clipboard = nil
	h.cursor = cursor
	// Widget state such as focus and caret may have moved even without
	// messages.
	h.gen++

	var cmds []Command
	for _, m := range msgs {
		if cmd := h.program.Update(m); !cmd.IsNone() {
			cmds = append(cmds, cmd)
		}
	}
	if len(msgs) > 0 {
		h.layout()
	}
	return cmds
}

func (h *Host) dispatch(ev Event, cursor Cursor) {
	h.root.walk(func(n *node) {
		if w, ok := n.el.(handler); ok {
			w.event(h.env, &h.sh, n, ev, cursor)
		}
	})
}

// Resize lays the current view out within bounds. Program state is not
// touched.
func (h *Host) Resize(bounds Size) {
	if bounds == h.bounds {
		return
	}
	h.bounds = bounds
	h.layout()
}

// Refresh rebuilds the view from the program, for use after the program
// state was changed outside Update, such as by restoring a snapshot.
func (h *Host) Refresh() { h.layout() }

// layout asks the program for a fresh view and lays it out.
func (h *Host) layout() {
	view := h.program.View()
	if view == nil {
		view = Space(0, 0)
	}
	h.root = view.layout(h.env, "", h.bounds)
	h.env.prune()
	h.gen++
}

// Generation changes whenever Draw may paint something different.
func (h *Host) Generation() uint64 { return h.gen }

// MouseInteraction returns the pointer hint for the last known cursor.
func (h *Host) MouseInteraction() Interaction {
	result := Idle
	h.root.walk(func(n *node) {
		if w, ok := n.el.(interactor); ok {
			if i := w.interaction(h.env, n, h.cursor); i != Idle {
				result = i
			}
		}
	})
	return result
}

// Draw paints the current view onto c.
func (h *Host) Draw(c *paint.Canvas) {
	h.root.walk(func(n *node) {
		if w, ok := n.el.(drawer); ok {
			w.draw(h.env, c, n)
		}
	})
}
