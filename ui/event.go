package ui

import "fmt"

// Point is a position in logical units.
type Point struct {
	X, Y float64
}

// Size is a size in logical units.
type Size struct {
	Width, Height float64
}

// Cursor is the pointer position available to the update step, in
// logical units.
type Cursor struct {
	Position  Point
	Available bool
}

// CursorAt returns an available cursor at p.
func CursorAt(p Point) Cursor { return Cursor{Position: p, Available: true} }

// Unavailable is a cursor with no known position.
var Unavailable = Cursor{}

func (c Cursor) String() string {
	if !c.Available {
		return "unavailable"
	}
	return fmt.Sprintf("(%.1f, %.1f)", c.Position.X, c.Position.Y)
}

// Event is a normalized input event.
type Event interface {
	isEvent()
}

// Key is a layout-independent named key. Letters and digits are reported
// as KeyCharacter with the character in KeyPressed.Char.
type Key uint8

const (
	KeyOther Key = iota
	KeyCharacter
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
)

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Meta
)

// Has reports whether every bit of o is held.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// MouseButton identifies a pointer button. Touches act as ButtonLeft.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// TouchPhase is the phase of a finger event.
type TouchPhase uint8

const (
	FingerPressed TouchPhase = iota
	FingerMoved
	FingerLifted
	FingerLost
)

// CursorMoved reports a new pointer position.
type CursorMoved struct{ Position Point }

// CursorLeft reports that the pointer left the window.
type CursorLeft struct{}

// ButtonPressed reports a pointer button press.
type ButtonPressed struct{ Button MouseButton }

// ButtonReleased reports a pointer button release.
type ButtonReleased struct{ Button MouseButton }

// WheelScrolled reports a scroll in lines.
type WheelScrolled struct{ DX, DY float64 }

// Touch reports a finger event.
type Touch struct {
	ID       uint64
	Phase    TouchPhase
	Position Point
}

// KeyPressed reports a key press. Text is the NFC-normalized text the key
// produced, empty for non-printing keys.
type KeyPressed struct {
	Key       Key
	Char      rune
	Modifiers Modifiers
	Text      string
}

// KeyReleased reports a key release.
type KeyReleased struct {
	Key       Key
	Char      rune
	Modifiers Modifiers
}

// ModifiersChanged reports a new modifier set.
type ModifiersChanged struct{ Modifiers Modifiers }

// WindowResized reports a new logical window size.
type WindowResized struct{ Size Size }

// WindowFocused reports a window focus change.
type WindowFocused struct{ Focused bool }

func (CursorMoved) isEvent()      {}
func (CursorLeft) isEvent()       {}
func (ButtonPressed) isEvent()    {}
func (ButtonReleased) isEvent()   {}
func (WheelScrolled) isEvent()    {}
func (Touch) isEvent()            {}
func (KeyPressed) isEvent()       {}
func (KeyReleased) isEvent()      {}
func (ModifiersChanged) isEvent() {}
func (WindowResized) isEvent()    {}
func (WindowFocused) isEvent()    {}
