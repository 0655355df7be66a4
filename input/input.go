// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input translates raw platform events into normalized UI events.
//
// Translate is a pure function of the event, the viewport and the Input
// State it updates. State keeps the last pointer position in physical
// pixels; it is converted to logical units only when the cursor is
// handed to the UI update step (State.Cursor).
package input

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/nativehost/internal/logging"
	"github.com/gogpu/nativehost/platform"
	"github.com/gogpu/nativehost/ui"
	"github.com/gogpu/nativehost/viewport"
)

// State is the input state carried between events.
type State struct {
	pointer    viewport.Point
	hasPointer bool
	modifiers  platform.Modifiers
	// held has bit i set while sideKeys[i] is down.
	held uint8
}

// sideKeys are the modifier keys tracked per side, so releasing one
// keeps the modifier while its twin is still held.
var sideKeys = [...]platform.KeyCode{
	platform.KeyShiftLeft, platform.KeyShiftRight,
	platform.KeyControlLeft, platform.KeyControlRight,
	platform.KeyAltLeft, platform.KeyAltRight,
	platform.KeyMetaLeft, platform.KeyMetaRight,
}

// Reset forgets the pointer and clears all modifiers.
func (s *State) Reset() { *s = State{} }

// Pointer returns the last pointer position in physical pixels.
func (s *State) Pointer() (viewport.Point, bool) { return s.pointer, s.hasPointer }

// Modifiers returns the active modifier set.
func (s *State) Modifiers() platform.Modifiers { return s.modifiers }

// Cursor returns the pointer position in the logical units of vp.
func (s *State) Cursor(vp viewport.Viewport) ui.Cursor {
	if !s.hasPointer {
		return ui.Unavailable
	}
	p := vp.ToLogical(s.pointer)
	return ui.CursorAt(ui.Point{X: p.X, Y: p.Y})
}

func (s *State) modifierKey(code platform.KeyCode, pressed bool) {
	mod := code.Modifier()
	if mod == 0 {
		return
	}
	for i, k := range sideKeys {
		if k == code {
			if pressed {
				s.held |= 1 << i
			} else {
				s.held &^= 1 << i
			}
		}
	}
	if pressed {
		s.modifiers |= mod
		return
	}
	for i, k := range sideKeys {
		if s.held&(1<<i) != 0 && k.Modifier() == mod {
			return
		}
	}
	s.modifiers &^= mod
}

// setModifiers replaces the modifier set and forgets held keys whose
// modifier the platform reports as up.
func (s *State) setModifiers(m platform.Modifiers) {
	s.modifiers = m
	for i, k := range sideKeys {
		if !m.Contains(k.Modifier()) {
			s.held &^= 1 << i
		}
	}
}

func (s *State) setPointer(x, y float64) {
	s.pointer = viewport.Point{X: x, Y: y}
	s.hasPointer = true
}

// Translate updates st from ev and returns the normalized event, if ev has
// one.
func Translate(ev platform.Event, vp viewport.Viewport, st *State) (ui.Event, bool) {
	switch ev := ev.(type) {
	case platform.CursorMoved:
		st.setPointer(ev.X, ev.Y)
		return ui.CursorMoved{Position: logical(vp, ev.X, ev.Y)}, true

	case platform.CursorLeft:
		st.hasPointer = false
		return ui.CursorLeft{}, true

	case platform.Touch:
		st.setPointer(ev.X, ev.Y)
		return ui.Touch{ID: ev.ID, Phase: touchPhase(ev.Phase), Position: logical(vp, ev.X, ev.Y)}, true

	case platform.MouseInput:
		if ev.State == platform.Pressed {
			return ui.ButtonPressed{Button: mouseButton(ev.Button)}, true
		}
		return ui.ButtonReleased{Button: mouseButton(ev.Button)}, true

	case platform.MouseWheel:
		return ui.WheelScrolled{DX: ev.DX, DY: ev.DY}, true

	case platform.ModifiersChanged:
		st.setModifiers(ev.Modifiers)
		return ui.ModifiersChanged{Modifiers: modifiers(st.modifiers)}, true

	case platform.KeyboardInput:
		st.modifierKey(ev.Code, ev.State == platform.Pressed)
		key, char := keyOf(ev.Code)
		mods := modifiers(st.modifiers)
		if ev.State == platform.Released {
			return ui.KeyReleased{Key: key, Char: char, Modifiers: mods}, true
		}
		return ui.KeyPressed{Key: key, Char: char, Modifiers: mods, Text: norm.NFC.String(ev.Text)}, true

	case platform.Resized:
		l := viewport.New(viewport.Size{Width: ev.Width, Height: ev.Height}, vp.ScaleFactor()).Logical()
		return ui.WindowResized{Size: ui.Size{Width: l.Width, Height: l.Height}}, true

	case platform.Focused:
		if !ev.Focused {
			st.hasPointer = false
		}
		return ui.WindowFocused{Focused: ev.Focused}, true

	case platform.Ime:
		logging.L().Debug("input: ime", "kind", ev.Kind, "text", ev.Text)
		return nil, false

	case platform.DeviceEvent:
		logging.L().Debug("input: device event dropped", "device", ev.Device, "source", ev.Source)
		return nil, false
	}
	return nil, false
}

func logical(vp viewport.Viewport, x, y float64) ui.Point {
	p := vp.ToLogical(viewport.Point{X: x, Y: y})
	return ui.Point{X: p.X, Y: p.Y}
}

func modifiers(m platform.Modifiers) ui.Modifiers {
	var out ui.Modifiers
	if m.Contains(platform.ModShift) {
		out |= ui.Shift
	}
	if m.Contains(platform.ModControl) {
		out |= ui.Control
	}
	if m.Contains(platform.ModAlt) {
		out |= ui.Alt
	}
	if m.Contains(platform.ModMeta) {
		out |= ui.Meta
	}
	return out
}

func mouseButton(b platform.MouseButton) ui.MouseButton {
	switch b {
	case platform.ButtonRight:
		return ui.ButtonRight
	case platform.ButtonMiddle:
		return ui.ButtonMiddle
	default:
		return ui.ButtonLeft
	}
}

func touchPhase(p platform.TouchPhase) ui.TouchPhase {
	switch p {
	case platform.TouchMoved:
		return ui.FingerMoved
	case platform.TouchEnded:
		return ui.FingerLifted
	case platform.TouchCancelled:
		return ui.FingerLost
	default:
		return ui.FingerPressed
	}
}

var namedKeys = map[platform.KeyCode]ui.Key{
	platform.KeyEnter:        ui.KeyEnter,
	platform.KeyTab:          ui.KeyTab,
	platform.KeyEscape:       ui.KeyEscape,
	platform.KeyBack:         ui.KeyEscape,
	platform.KeyBackspace:    ui.KeyBackspace,
	platform.KeyDelete:       ui.KeyDelete,
	platform.KeyLeft:         ui.KeyLeft,
	platform.KeyRight:        ui.KeyRight,
	platform.KeyUp:           ui.KeyUp,
	platform.KeyDown:         ui.KeyDown,
	platform.KeyHome:         ui.KeyHome,
	platform.KeyEnd:          ui.KeyEnd,
	platform.KeySpace:        ui.KeySpace,
	platform.KeyShiftLeft:    ui.KeyShift,
	platform.KeyShiftRight:   ui.KeyShift,
	platform.KeyControlLeft:  ui.KeyControl,
	platform.KeyControlRight: ui.KeyControl,
	platform.KeyAltLeft:      ui.KeyAlt,
	platform.KeyAltRight:     ui.KeyAlt,
	platform.KeyMetaLeft:     ui.KeyMeta,
	platform.KeyMetaRight:    ui.KeyMeta,
}

func keyOf(code platform.KeyCode) (ui.Key, rune) {
	switch {
	case code >= platform.KeyA && code <= platform.KeyZ:
		return ui.KeyCharacter, 'a' + rune(code-platform.KeyA)
	case code >= platform.Key0 && code <= platform.Key9:
		return ui.KeyCharacter, '0' + rune(code-platform.Key0)
	}
	if k, ok := namedKeys[code]; ok {
		return k, 0
	}
	return ui.KeyOther, 0
}
