package ui

import (
	"math"

	"github.com/gogpu/nativehost/paint"
)

const (
	sliderHeight = 24
	sliderRail   = 4
	sliderHandle = 10
)

// SliderElement selects a value in a range by dragging.
type SliderElement struct {
	min, max, value float64
	step            float64
	width           Length
	onChange        func(float64) Message
	onRelease       Message
}

// Slider returns a slider over [min, max] showing value. onChange builds
// the message published when the user moves it.
func Slider(min, max, value float64, onChange func(float64) Message) *SliderElement {
	return &SliderElement{min: min, max: max, value: value, width: Fill, onChange: onChange}
}

// Step rounds published values to multiples of v.
func (s *SliderElement) Step(v float64) *SliderElement { s.step = v; return s }

// Width sets the horizontal sizing rule.
func (s *SliderElement) Width(l Length) *SliderElement { s.width = l; return s }

// OnRelease sets a message published when a drag ends.
func (s *SliderElement) OnRelease(m Message) *SliderElement { s.onRelease = m; return s }

type sliderState struct {
	dragging bool
	finger   uint64
}

func (s *SliderElement) fillsWidth() bool { return s.width.fill }

func (s *SliderElement) layout(e *env, path string, max Size) *node {
	stateOf(e, path, func() *sliderState { return &sliderState{} })
	return &node{el: s, path: path, bounds: Rect{
		W: s.width.resolve(100, max.Width),
		H: math.Min(sliderHeight, max.Height),
	}}
}

func (s *SliderElement) valueAt(b Rect, x float64) float64 {
	usable := b.W - 2*sliderHandle
	if usable <= 0 || s.max <= s.min {
		return s.min
	}
	t := (x - b.X - sliderHandle) / usable
	t = math.Max(0, math.Min(1, t))
	v := s.min + t*(s.max-s.min)
	if s.step > 0 {
		v = s.min + math.Round((v-s.min)/s.step)*s.step
		v = math.Min(v, s.max)
	}
	return v
}

func (s *SliderElement) publish(sh *shell, v float64) {
	if v != s.value && s.onChange != nil {
		sh.publish(s.onChange(v))
		s.value = v
	}
}

func (s *SliderElement) event(e *env, sh *shell, n *node, ev Event, cursor Cursor) {
	st := stateOf(e, n.path, func() *sliderState { return &sliderState{} })
	switch ev := ev.(type) {
	case ButtonPressed:
		if ev.Button == ButtonLeft && cursor.Available && n.bounds.Contains(cursor.Position.X, cursor.Position.Y) {
			st.dragging = true
			s.publish(sh, s.valueAt(n.bounds, cursor.Position.X))
		}
	case CursorMoved:
		if st.dragging {
			s.publish(sh, s.valueAt(n.bounds, ev.Position.X))
		}
	case ButtonReleased:
		if st.dragging && ev.Button == ButtonLeft {
			s.release(sh, st)
		}
	case Touch:
		switch ev.Phase {
		case FingerPressed:
			if n.bounds.Contains(ev.Position.X, ev.Position.Y) {
				st.dragging, st.finger = true, ev.ID
				s.publish(sh, s.valueAt(n.bounds, ev.Position.X))
			}
		case FingerMoved:
			if st.dragging && st.finger == ev.ID {
				s.publish(sh, s.valueAt(n.bounds, ev.Position.X))
			}
		case FingerLifted, FingerLost:
			if st.dragging && st.finger == ev.ID {
				s.release(sh, st)
			}
		}
	}
}

func (s *SliderElement) release(sh *shell, st *sliderState) {
	st.dragging = false
	if s.onRelease != nil {
		sh.publish(s.onRelease)
	}
}

func (s *SliderElement) draw(e *env, cv *paint.Canvas, n *node) {
	b := n.bounds
	mid := b.Y + b.H/2
	cv.FillRoundedRect(Rect{X: b.X + sliderHandle/2, Y: mid - sliderRail/2, W: b.W - sliderHandle, H: sliderRail}, sliderRail/2, e.theme.Track.NRGBA())

	t := 0.0
	if s.max > s.min {
		t = (s.value - s.min) / (s.max - s.min)
	}
	hx := b.X + sliderHandle + t*(b.W-2*sliderHandle)
	cv.FillRoundedRect(Rect{X: b.X + sliderHandle/2, Y: mid - sliderRail/2, W: hx - b.X - sliderHandle/2, H: sliderRail}, sliderRail/2, e.theme.Primary.NRGBA())
	cv.FillRoundedRect(Rect{X: hx - sliderHandle, Y: mid - sliderHandle, W: 2 * sliderHandle, H: 2 * sliderHandle}, sliderHandle, e.theme.Primary.NRGBA())
}

func (s *SliderElement) interaction(e *env, n *node, cursor Cursor) Interaction {
	st := stateOf(e, n.path, func() *sliderState { return &sliderState{} })
	if st.dragging {
		return Grabbing
	}
	if cursor.Available && n.bounds.Contains(cursor.Position.X, cursor.Position.Y) {
		return Grab
	}
	return Idle
}
