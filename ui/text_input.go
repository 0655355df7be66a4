package ui

import (
	"math"
	"unicode"

	"github.com/gogpu/nativehost/paint"
)

// TextInputElement is a single-line editable text field.
type TextInputElement struct {
	placeholder string
	value       string
	size        float64
	padding     float64
	width       Length
	onInput     func(string) Message
	onFocus     func(bool) Message
	onSubmit    Message
}

// TextInput returns a text field showing value. onInput builds the
// message published with the edited value.
func TextInput(placeholder, value string, onInput func(string) Message) *TextInputElement {
	return &TextInputElement{
		placeholder: placeholder,
		value:       value,
		size:        16,
		padding:     8,
		width:       Fill,
		onInput:     onInput,
	}
}

// OnFocus sets the message built when the field gains or loses focus.
func (t *TextInputElement) OnFocus(f func(focused bool) Message) *TextInputElement {
	t.onFocus = f
	return t
}

// OnSubmit sets the message published on Enter.
func (t *TextInputElement) OnSubmit(m Message) *TextInputElement { t.onSubmit = m; return t }

// Size sets the font size.
func (t *TextInputElement) Size(v float64) *TextInputElement { t.size = v; return t }

// Padding sets the inner padding.
func (t *TextInputElement) Padding(v float64) *TextInputElement { t.padding = v; return t }

// Width sets the horizontal sizing rule.
func (t *TextInputElement) Width(l Length) *TextInputElement { t.width = l; return t }

type textInputState struct {
	focused bool
	// caret is a rune index into the value.
	caret int
}

func (t *TextInputElement) fillsWidth() bool { return t.width.fill }

func (t *TextInputElement) state(e *env, path string) *textInputState {
	return stateOf(e, path, func() *textInputState { return &textInputState{} })
}

func (t *TextInputElement) layout(e *env, path string, max Size) *node {
	t.state(e, path)
	h := e.lineHeight(t.size) + 2*t.padding
	return &node{el: t, path: path, bounds: Rect{
		W: t.width.resolve(200, max.Width),
		H: math.Min(h, max.Height),
	}}
}

// Focused reports whether the text input at the given tree position has
// focus. It exists for tests and embedders that need to inspect focus.
func (h *Host) Focused(path string) bool {
	st, ok := h.env.state[path].(*textInputState)
	return ok && st.focused
}

func (t *TextInputElement) setFocus(sh *shell, st *textInputState, focused bool) {
	if st.focused == focused {
		return
	}
	st.focused = focused
	if t.onFocus != nil {
		sh.focus(t.onFocus(focused), focused)
	}
}

func (t *TextInputElement) press(e *env, sh *shell, n *node, st *textInputState, p Point) {
	if !n.bounds.Contains(p.X, p.Y) {
		t.setFocus(sh, st, false)
		return
	}
	run := e.shape(t.value, t.size)
	st.caret = run.Index(p.X - n.bounds.X - t.padding)
	t.setFocus(sh, st, true)
}

func (t *TextInputElement) edit(sh *shell, st *textInputState, v []rune, caret int) {
	st.caret = caret
	s := string(v)
	if s == t.value {
		return
	}
	t.value = s
	if t.onInput != nil {
		sh.publish(t.onInput(s))
	}
}

func (t *TextInputElement) event(e *env, sh *shell, n *node, ev Event, cursor Cursor) {
	st := t.state(e, n.path)
	switch ev := ev.(type) {
	case ButtonPressed:
		if ev.Button == ButtonLeft {
			if cursor.Available {
				t.press(e, sh, n, st, cursor.Position)
			} else {
				t.setFocus(sh, st, false)
			}
		}
		return
	case Touch:
		if ev.Phase == FingerPressed {
			t.press(e, sh, n, st, ev.Position)
		}
		return
	case WindowFocused:
		if !ev.Focused {
			t.setFocus(sh, st, false)
		}
		return
	case KeyPressed:
		if st.focused {
			t.key(sh, st, ev)
		}
	}
}

func (t *TextInputElement) key(sh *shell, st *textInputState, ev KeyPressed) {
	v := []rune(t.value)
	st.caret = min(max(st.caret, 0), len(v))

	if ev.Modifiers.Has(Control) && ev.Key == KeyCharacter {
		switch unicode.ToLower(ev.Char) {
		case 'c':
			if sh.clipboard != nil && len(v) > 0 {
				sh.clipboard.Write(t.value)
			}
		case 'x':
			if sh.clipboard != nil && len(v) > 0 {
				sh.clipboard.Write(t.value)
				t.edit(sh, st, nil, 0)
			}
		case 'v':
			if sh.clipboard == nil {
				return
			}
			if s, ok := sh.clipboard.Read(); ok && s != "" {
				ins := []rune(s)
				out := append(append(append([]rune{}, v[:st.caret]...), ins...), v[st.caret:]...)
				t.edit(sh, st, out, st.caret+len(ins))
			}
		case 'a':
			st.caret = len(v)
		}
		return
	}

	switch ev.Key {
	case KeyBackspace:
		if st.caret > 0 {
			out := append(append([]rune{}, v[:st.caret-1]...), v[st.caret:]...)
			t.edit(sh, st, out, st.caret-1)
		}
		return
	case KeyDelete:
		if st.caret < len(v) {
			out := append(append([]rune{}, v[:st.caret]...), v[st.caret+1:]...)
			t.edit(sh, st, out, st.caret)
		}
		return
	case KeyLeft:
		st.caret = max(st.caret-1, 0)
		return
	case KeyRight:
		st.caret = min(st.caret+1, len(v))
		return
	case KeyHome:
		st.caret = 0
		return
	case KeyEnd:
		st.caret = len(v)
		return
	case KeyEnter:
		if t.onSubmit != nil {
			sh.publish(t.onSubmit)
		}
		return
	case KeyEscape:
		t.setFocus(sh, st, false)
		return
	}

	if ev.Text == "" || ev.Modifiers.Has(Alt) || ev.Modifiers.Has(Meta) {
		return
	}
	ins := make([]rune, 0, len(ev.Text))
	for _, r := range ev.Text {
		if unicode.IsPrint(r) {
			ins = append(ins, r)
		}
	}
	if len(ins) == 0 {
		return
	}
	out := append(append(append([]rune{}, v[:st.caret]...), ins...), v[st.caret:]...)
	t.edit(sh, st, out, st.caret+len(ins))
}

func (t *TextInputElement) draw(e *env, cv *paint.Canvas, n *node) {
	st := t.state(e, n.path)
	b := n.bounds

	border := e.theme.Border
	if st.focused {
		border = e.theme.Focus
	}
	cv.FillRoundedRect(b, 4, border.NRGBA())
	cv.FillRoundedRect(Rect{X: b.X + 1, Y: b.Y + 1, W: b.W - 2, H: b.H - 2}, 3, e.theme.Field.NRGBA())

	inner := Rect{X: b.X + t.padding, Y: b.Y + t.padding, W: b.W - 2*t.padding, H: b.H - 2*t.padding}
	baseline := inner.Y + e.baseline(t.size)

	cv.PushClip(inner)
	defer cv.PopClip()

	if t.value == "" {
		if t.placeholder != "" {
			cv.DrawRun(e.shape(t.placeholder, t.size), e.font, t.size, inner.X, baseline, e.theme.Placeholder.NRGBA())
		}
	} else {
		run := e.shape(t.value, t.size)
		// Keep the caret visible by scrolling long values left.
		scroll := 0.0
		if st.focused {
			if cx := run.CaretX(st.caret); cx > inner.W {
				scroll = cx - inner.W + 1
			}
		}
		cv.DrawRun(run, e.font, t.size, inner.X-scroll, baseline, e.theme.Text.NRGBA())
		if st.focused {
			cv.FillRect(Rect{X: inner.X - scroll + run.CaretX(st.caret), Y: inner.Y, W: 1, H: inner.H}, e.theme.Text.NRGBA())
		}
		return
	}
	if st.focused {
		cv.FillRect(Rect{X: inner.X, Y: inner.Y, W: 1, H: inner.H}, e.theme.Text.NRGBA())
	}
}

func (t *TextInputElement) interaction(e *env, n *node, cursor Cursor) Interaction {
	if cursor.Available && n.bounds.Contains(cursor.Position.X, cursor.Position.Y) {
		return Text
	}
	return Idle
}
