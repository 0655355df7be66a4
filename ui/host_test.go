package ui

import (
	"reflect"
	"testing"

	"github.com/gogpu/nativehost/paint"
)

type inputMsg struct {
	field int
	value string
}

type focusMsg struct {
	field   int
	focused bool
}

type sliderMsg float64

// formProgram is a test program with two text fields and a slider.
type formProgram struct {
	values [2]string
	level  float64
	msgs   []Message
	views  int
	// swap puts the second field first in the tree.
	swap bool
}

func (p *formProgram) Update(m Message) Command {
	p.msgs = append(p.msgs, m)
	switch m := m.(type) {
	case inputMsg:
		p.values[m.field] = m.value
	case sliderMsg:
		p.level = float64(m)
	case focusMsg:
		if m.focused {
			return Action("showKeyboard")
		}
		return Action("hideKeyboard")
	}
	return None()
}

func (p *formProgram) field(i int) Element {
	return TextInput("type here", p.values[i], func(s string) Message { return inputMsg{i, s} }).
		OnFocus(func(f bool) Message { return focusMsg{i, f} })
}

func (p *formProgram) View() Element {
	p.views++
	a, b := p.field(0), p.field(1)
	if p.swap {
		a, b = b, a
	}
	return Column(a, b, Slider(0, 1, p.level, func(v float64) Message { return sliderMsg(v) }).Step(0.1)).
		Padding(10).
		Spacing(10)
}

func (p *formProgram) BackgroundColor() Color { return RGB(float32(p.level), 0, 0) }

// Layout of formProgram in 300x600: fields are 37 high (21 line + 2*8
// padding) at y=10 and y=57; the slider is at y=104, x 10..290.
var bounds = Size{Width: 300, Height: 600}

func tap(h *Host, x, y float64) {
	h.QueueEvent(CursorMoved{Position: Point{X: x, Y: y}})
	h.QueueEvent(ButtonPressed{Button: ButtonLeft})
	h.QueueEvent(ButtonReleased{Button: ButtonLeft})
}

func typeText(h *Host, s string) {
	for _, r := range s {
		h.QueueEvent(KeyPressed{Key: KeyCharacter, Char: r, Text: string(r)})
	}
}

type memClipboard struct {
	text   string
	ok     bool
	writes []string
}

func (c *memClipboard) Read() (string, bool) { return c.text, c.ok }
func (c *memClipboard) Write(s string) {
	c.writes = append(c.writes, s)
	c.text, c.ok = s, true
}

func TestUpdateAppliesMessagesInOrder(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)

	tap(h, 50, 20)
	typeText(h, "abc")
	cmds := h.Update(bounds, Unavailable, nil)

	want := []Message{
		focusMsg{0, true},
		inputMsg{0, "a"},
		inputMsg{0, "ab"},
		inputMsg{0, "abc"},
	}
	if !reflect.DeepEqual(p.msgs, want) {
		t.Fatalf("messages = %v, want %v", p.msgs, want)
	}
	if len(cmds) != 1 || cmds[0].Name() != "showKeyboard" {
		t.Errorf("commands = %v", cmds)
	}
	if p.values[0] != "abc" {
		t.Errorf("value = %q", p.values[0])
	}
	if !h.IsQueueEmpty() {
		t.Error("queue not empty after Update")
	}
}

func TestUpdateRebuildsViewOncePerDrain(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	before := p.views

	tap(h, 50, 20)
	typeText(h, "hello")
	h.Update(bounds, Unavailable, nil)

	if got := p.views - before; got != 1 {
		t.Errorf("View called %d times for one drain, want 1", got)
	}
}

func TestEmptyDrainIsNoop(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	views := p.views

	for i := 0; i < 3; i++ {
		if cmds := h.Update(bounds, CursorAt(Point{X: 1, Y: 1}), nil); cmds != nil {
			t.Fatalf("Update on empty queue returned %v", cmds)
		}
	}
	if len(p.msgs) != 0 || p.views != views {
		t.Errorf("empty drain touched program: msgs=%v views=%d->%d", p.msgs, views, p.views)
	}
}

func TestEventsWithoutMessages(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	h.QueueEvent(CursorMoved{Position: Point{X: 5, Y: 5}})
	h.QueueEvent(KeyPressed{Key: KeyCharacter, Char: 'x', Text: "x"})
	if cmds := h.Update(bounds, Unavailable, nil); len(cmds) != 0 {
		t.Errorf("commands = %v", cmds)
	}
	if len(p.msgs) != 0 {
		t.Errorf("unfocused typing produced %v", p.msgs)
	}
}

func TestFocusMoveBlursBeforeFocusing(t *testing.T) {
	for _, swap := range []bool{false, true} {
		p := &formProgram{swap: swap}
		h := NewHost(p, bounds)

		// Focus the field at the bottom, then tap the top one.
		tap(h, 50, 70)
		h.Update(bounds, Unavailable, nil)
		p.msgs = nil

		tap(h, 50, 20)
		cmds := h.Update(bounds, Unavailable, nil)

		top, bottom := 0, 1
		if swap {
			top, bottom = 1, 0
		}
		want := []Message{focusMsg{bottom, false}, focusMsg{top, true}}
		if !reflect.DeepEqual(p.msgs, want) {
			t.Errorf("swap=%v: messages = %v, want %v", swap, p.msgs, want)
		}
		if len(cmds) != 2 || cmds[0].Name() != "hideKeyboard" || cmds[1].Name() != "showKeyboard" {
			t.Errorf("swap=%v: commands = %v", swap, cmds)
		}
		if !h.Focused("/0") || h.Focused("/1") {
			t.Errorf("swap=%v: focus state /0=%v /1=%v", swap, h.Focused("/0"), h.Focused("/1"))
		}
	}
}

func TestTapOutsideBlurs(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	tap(h, 50, 20)
	h.Update(bounds, Unavailable, nil)

	tap(h, 50, 400)
	cmds := h.Update(bounds, Unavailable, nil)
	if len(cmds) != 1 || cmds[0].Name() != "hideKeyboard" {
		t.Errorf("commands = %v", cmds)
	}
}

func TestTouchFocuses(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	h.QueueEvent(Touch{ID: 1, Phase: FingerPressed, Position: Point{X: 40, Y: 60}})
	h.QueueEvent(Touch{ID: 1, Phase: FingerLifted, Position: Point{X: 40, Y: 60}})
	h.Update(bounds, Unavailable, nil)
	if !h.Focused("/1") {
		t.Error("touch did not focus the second field")
	}
}

func TestEditingKeys(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	tap(h, 50, 20)
	typeText(h, "abcd")
	h.QueueEvent(KeyPressed{Key: KeyLeft})
	h.QueueEvent(KeyPressed{Key: KeyBackspace})
	h.QueueEvent(KeyPressed{Key: KeyHome})
	h.QueueEvent(KeyPressed{Key: KeyDelete})
	h.QueueEvent(KeyPressed{Key: KeyEnd})
	typeText(h, "!")
	h.Update(bounds, Unavailable, nil)

	if p.values[0] != "bd!" {
		t.Errorf("value = %q, want %q", p.values[0], "bd!")
	}
}

func TestClipboardShortcuts(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	cb := &memClipboard{}

	tap(h, 50, 20)
	typeText(h, "hi")
	h.QueueEvent(KeyPressed{Key: KeyCharacter, Char: 'c', Modifiers: Control})
	h.QueueEvent(KeyPressed{Key: KeyCharacter, Char: 'v', Modifiers: Control})
	h.Update(bounds, Unavailable, cb)

	if p.values[0] != "hihi" {
		t.Errorf("after copy+paste value = %q", p.values[0])
	}
	if !reflect.DeepEqual(cb.writes, []string{"hi"}) {
		t.Errorf("clipboard writes = %v", cb.writes)
	}

	h.QueueEvent(KeyPressed{Key: KeyCharacter, Char: 'x', Modifiers: Control})
	h.Update(bounds, Unavailable, cb)
	if p.values[0] != "" || cb.text != "hihi" {
		t.Errorf("after cut value = %q clipboard = %q", p.values[0], cb.text)
	}

	// Unavailable clipboard leaves the value alone.
	h.QueueEvent(KeyPressed{Key: KeyCharacter, Char: 'v', Modifiers: Control})
	h.Update(bounds, Unavailable, &memClipboard{})
	if p.values[0] != "" {
		t.Errorf("paste from empty clipboard produced %q", p.values[0])
	}
}

func TestSliderDrag(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)

	// Rail spans x 20..280 (handle inset 10 on each side of 10..290).
	h.QueueEvent(CursorMoved{Position: Point{X: 150, Y: 115}})
	h.QueueEvent(ButtonPressed{Button: ButtonLeft})
	h.QueueEvent(CursorMoved{Position: Point{X: 400, Y: 115}})
	h.QueueEvent(ButtonReleased{Button: ButtonLeft})
	h.QueueEvent(CursorMoved{Position: Point{X: 20, Y: 115}})
	h.Update(bounds, Unavailable, nil)

	want := []Message{sliderMsg(0.5), sliderMsg(1)}
	if !reflect.DeepEqual(p.msgs, want) {
		t.Errorf("messages = %v, want %v", p.msgs, want)
	}
	if got := p.BackgroundColor(); got.R != 1 {
		t.Errorf("background = %v", got)
	}
}

func TestMouseInteraction(t *testing.T) {
	h := NewHost(&formProgram{}, bounds)
	tests := []struct {
		cursor Cursor
		want   Interaction
	}{
		{Unavailable, Idle},
		{CursorAt(Point{X: 50, Y: 20}), Text},
		{CursorAt(Point{X: 150, Y: 115}), Grab},
		{CursorAt(Point{X: 150, Y: 500}), Idle},
	}
	for _, tt := range tests {
		h.QueueEvent(WindowFocused{Focused: true})
		h.Update(bounds, tt.cursor, nil)
		if got := h.MouseInteraction(); got != tt.want {
			t.Errorf("cursor %v: interaction = %v, want %v", tt.cursor, got, tt.want)
		}
	}
}

func TestDrawProducesInk(t *testing.T) {
	p := &formProgram{values: [2]string{"hello", ""}, level: 0.3}
	h := NewHost(p, bounds)
	c := paint.NewCanvas(600, 1200, 2)
	h.Draw(c)

	var inked int
	for i := 3; i < len(c.Image().Pix); i += 4 {
		if c.Image().Pix[i] != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("Draw left the canvas empty")
	}
}

func TestResizeRelayouts(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	h.Resize(Size{Width: 600, Height: 300})
	if h.Bounds().Width != 600 {
		t.Fatalf("bounds = %v", h.Bounds())
	}
	// The second field is still at y=57..94; tapping its right half only
	// works after the relayout widened it.
	tap(h, 500, 70)
	h.Update(h.Bounds(), Unavailable, nil)
	if !h.Focused("/1") {
		t.Error("field not widened by Resize")
	}
	if len(p.msgs) != 1 {
		t.Errorf("messages = %v", p.msgs)
	}
}

func TestGenerationTracksChanges(t *testing.T) {
	p := &formProgram{}
	h := NewHost(p, bounds)
	g := h.Generation()

	h.Update(bounds, Unavailable, nil)
	if h.Generation() != g {
		t.Error("empty drain changed generation")
	}

	h.QueueEvent(CursorMoved{Position: Point{X: 5, Y: 5}})
	h.Update(bounds, Unavailable, nil)
	if h.Generation() == g {
		t.Error("drain did not change generation")
	}

	g = h.Generation()
	h.Resize(Size{Width: 200, Height: 600})
	if h.Generation() == g {
		t.Error("resize did not change generation")
	}
}
