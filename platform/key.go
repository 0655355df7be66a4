package platform

import "strings"

// KeyCode identifies a physical key, independent of layout.
type KeyCode uint16

// Recognized key codes. Keys a driver cannot map are KeyUnknown.
const (
	KeyUnknown KeyCode = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
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
	KeyBack
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeyMetaLeft
	KeyMetaRight
)

// Modifier returns the modifier bit a key controls, or 0 for
// non-modifier keys.
func (k KeyCode) Modifier() Modifiers {
	switch k {
	case KeyShiftLeft, KeyShiftRight:
		return ModShift
	case KeyControlLeft, KeyControlRight:
		return ModControl
	case KeyAltLeft, KeyAltRight:
		return ModAlt
	case KeyMetaLeft, KeyMetaRight:
		return ModMeta
	default:
		return 0
	}
}

// Modifiers is a set of active modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

// Contains reports whether all bits of m2 are set in m.
func (m Modifiers) Contains(m2 Modifiers) bool { return m&m2 == m2 }

func (m Modifiers) String() string {
	if m == 0 {
		return "{}"
	}
	var parts []string
	for _, mod := range []struct {
		bit  Modifiers
		name string
	}{{ModShift, "shift"}, {ModControl, "control"}, {ModAlt, "alt"}, {ModMeta, "meta"}} {
		if m&mod.bit != 0 {
			parts = append(parts, mod.name)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
