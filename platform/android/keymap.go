package android

import (
	"github.com/gogpu/nativehost/platform"
)

// Android key codes, from android/keycodes.h.
const (
	keycodeBack        = 4
	keycode0           = 7
	keycode9           = 16
	keycodeDpadUp      = 19
	keycodeDpadDown    = 20
	keycodeDpadLeft    = 21
	keycodeDpadRight   = 22
	keycodeA           = 29
	keycodeZ           = 54
	keycodeAltLeft     = 57
	keycodeAltRight    = 58
	keycodeShiftLeft   = 59
	keycodeShiftRight  = 60
	keycodeTab         = 61
	keycodeSpace       = 62
	keycodeEnter       = 66
	keycodeDel         = 67
	keycodeEscape      = 111
	keycodeForwardDel  = 112
	keycodeCtrlLeft    = 113
	keycodeCtrlRight   = 114
	keycodeMetaLeft    = 117
	keycodeMetaRight   = 118
	keycodeMoveHome    = 122
	keycodeMoveEnd     = 123
	keycodeNumpadEnter = 160
)

// Meta state bits, from android/input.h.
const (
	metaShiftOn = 0x01
	metaAltOn   = 0x02
	metaCtrlOn  = 0x1000
	metaMetaOn  = 0x10000
)

// Key event actions.
const (
	keyActionDown     = 0
	keyActionUp       = 1
	keyActionMultiple = 2
)

var namedKeys = map[int32]platform.KeyCode{
	keycodeBack:        platform.KeyBack,
	keycodeDpadUp:      platform.KeyUp,
	keycodeDpadDown:    platform.KeyDown,
	keycodeDpadLeft:    platform.KeyLeft,
	keycodeDpadRight:   platform.KeyRight,
	keycodeAltLeft:     platform.KeyAltLeft,
	keycodeAltRight:    platform.KeyAltRight,
	keycodeShiftLeft:   platform.KeyShiftLeft,
	keycodeShiftRight:  platform.KeyShiftRight,
	keycodeTab:         platform.KeyTab,
	keycodeSpace:       platform.KeySpace,
	keycodeEnter:       platform.KeyEnter,
	keycodeNumpadEnter: platform.KeyEnter,
	keycodeDel:         platform.KeyBackspace,
	keycodeEscape:      platform.KeyEscape,
	keycodeForwardDel:  platform.KeyDelete,
	keycodeCtrlLeft:    platform.KeyControlLeft,
	keycodeCtrlRight:   platform.KeyControlRight,
	keycodeMetaLeft:    platform.KeyMetaLeft,
	keycodeMetaRight:   platform.KeyMetaRight,
	keycodeMoveHome:    platform.KeyHome,
	keycodeMoveEnd:     platform.KeyEnd,
}

// KeyCode maps an Android key code to a platform key.
func KeyCode(code int32) platform.KeyCode {
	switch {
	case code >= keycodeA && code <= keycodeZ:
		return platform.KeyA + platform.KeyCode(code-keycodeA)
	case code >= keycode0 && code <= keycode9:
		return platform.Key0 + platform.KeyCode(code-keycode0)
	}
	if k, ok := namedKeys[code]; ok {
		return k
	}
	return platform.KeyUnknown
}

// Modifiers maps an Android meta state to a modifier set.
func Modifiers(meta int32) platform.Modifiers {
	var m platform.Modifiers
	if meta&metaShiftOn != 0 {
		m |= platform.ModShift
	}
	if meta&metaCtrlOn != 0 {
		m |= platform.ModControl
	}
	if meta&metaAltOn != 0 {
		m |= platform.ModAlt
	}
	if meta&metaMetaOn != 0 {
		m |= platform.ModMeta
	}
	return m
}

// KeyText returns the character a hardware key produces under meta, or
// "" for keys without one. Only the US layout is known; soft keyboards
// deliver text through the input method instead.
func KeyText(code, meta int32) string {
	if meta&(metaCtrlOn|metaAltOn|metaMetaOn) != 0 {
		return ""
	}
	shift := meta&metaShiftOn != 0
	switch {
	case code >= keycodeA && code <= keycodeZ:
		r := rune('a' + code - keycodeA)
		if shift {
			r -= 'a' - 'A'
		}
		return string(r)
	case code >= keycode0 && code <= keycode9:
		if shift {
			return string(")!@#$%^&*("[code-keycode0])
		}
		return string(rune('0' + code - keycode0))
	case code == keycodeSpace:
		return " "
	}
	return ""
}

// KeyEvent is the subset of an AInputEvent of key type used by the
// translator.
type KeyEvent struct {
	Action int32
	Code   int32
	Meta   int32
	Repeat int32
}

// TranslateKey converts a key event into platform events. Events whose
// meta state differs from prev are preceded by a ModifiersChanged.
func TranslateKey(k KeyEvent, prev platform.Modifiers) []platform.Event {
	var out []platform.Event
	if mods := Modifiers(k.Meta); mods != prev {
		out = append(out, platform.ModifiersChanged{Modifiers: mods})
	}
	code := KeyCode(k.Code)
	switch k.Action {
	case keyActionDown:
		out = append(out, platform.KeyboardInput{
			Code:   code,
			State:  platform.Pressed,
			Text:   KeyText(k.Code, k.Meta),
			Repeat: k.Repeat > 0,
		})
	case keyActionUp:
		out = append(out, platform.KeyboardInput{Code: code, State: platform.Released})
	case keyActionMultiple:
		// Repeated presses batched by the system.
		n := max(k.Repeat, 1)
		text := KeyText(k.Code, k.Meta)
		for i := int32(0); i < n; i++ {
			out = append(out,
				platform.KeyboardInput{Code: code, State: platform.Pressed, Text: text, Repeat: i > 0},
				platform.KeyboardInput{Code: code, State: platform.Released},
			)
		}
	}
	return out
}
