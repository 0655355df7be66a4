package android

import (
	"github.com/gogpu/nativehost/platform"
)

// Motion event actions, from android/input.h.
const (
	motionActionMask        = 0xff
	motionPointerIndexMask  = 0xff00
	motionPointerIndexShift = 8
	motionActionDown        = 0
	motionActionUp          = 1
	motionActionMove        = 2
	motionActionCancel      = 3
	motionActionPointerDown = 5
	motionActionPointerUp   = 6
	motionActionHoverMove   = 7
	motionActionScroll      = 8
	motionActionHoverExit   = 10
)

// Input sources and mouse button state bits.
const (
	sourceClassPointer = 0x02
	sourceMouse        = 0x2000 | sourceClassPointer

	buttonPrimary   = 0x01
	buttonSecondary = 0x02
	buttonTertiary  = 0x04
)

// Pointer is one pointer of a motion event, in physical pixels.
type Pointer struct {
	ID   int32
	X, Y float64
}

// MotionEvent is the subset of an AInputEvent of motion type used by the
// translator.
type MotionEvent struct {
	Action   int32
	Source   int32
	Buttons  int32
	Pointers []Pointer
	// ScrollX and ScrollY are the scroll axes for scroll actions.
	ScrollX, ScrollY float64
}

func (m MotionEvent) masked() int32 { return m.Action & motionActionMask }

func (m MotionEvent) index() int {
	return int((m.Action & motionPointerIndexMask) >> motionPointerIndexShift)
}

// TranslateMotion converts a motion event into platform events. Mouse
// sources become cursor and button events; everything else is touch.
// prevButtons is the button state of the previous mouse event.
func TranslateMotion(m MotionEvent, prevButtons int32) []platform.Event {
	if m.Source&sourceMouse == sourceMouse {
		return translateMouse(m, prevButtons)
	}
	return translateTouch(m)
}

func translateTouch(m MotionEvent) []platform.Event {
	touch := func(p Pointer, phase platform.TouchPhase) platform.Event {
		return platform.Touch{ID: uint64(p.ID), Phase: phase, X: p.X, Y: p.Y}
	}
	var out []platform.Event
	switch m.masked() {
	case motionActionDown, motionActionPointerDown:
		if i := m.index(); i < len(m.Pointers) {
			out = append(out, touch(m.Pointers[i], platform.TouchStarted))
		}
	case motionActionUp, motionActionPointerUp:
		if i := m.index(); i < len(m.Pointers) {
			out = append(out, touch(m.Pointers[i], platform.TouchEnded))
		}
	case motionActionMove:
		for _, p := range m.Pointers {
			out = append(out, touch(p, platform.TouchMoved))
		}
	case motionActionCancel:
		for _, p := range m.Pointers {
			out = append(out, touch(p, platform.TouchCancelled))
		}
	}
	return out
}

func translateMouse(m MotionEvent, prevButtons int32) []platform.Event {
	var out []platform.Event
	if len(m.Pointers) > 0 {
		switch m.masked() {
		case motionActionHoverExit:
			return []platform.Event{platform.CursorLeft{}}
		case motionActionScroll:
			// Android reports positive values for scrolling up.
			return []platform.Event{platform.MouseWheel{DX: m.ScrollX, DY: m.ScrollY}}
		default:
			p := m.Pointers[0]
			out = append(out, platform.CursorMoved{X: p.X, Y: p.Y})
		}
	}
	for _, b := range []struct {
		bit    int32
		button platform.MouseButton
	}{
		{buttonPrimary, platform.ButtonLeft},
		{buttonSecondary, platform.ButtonRight},
		{buttonTertiary, platform.ButtonMiddle},
	} {
		was, is := prevButtons&b.bit != 0, m.Buttons&b.bit != 0
		switch {
		case is && !was:
			out = append(out, platform.MouseInput{Button: b.button, State: platform.Pressed})
		case was && !is:
			out = append(out, platform.MouseInput{Button: b.button, State: platform.Released})
		}
	}
	return out
}
