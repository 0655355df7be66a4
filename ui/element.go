package ui

import (
	"math"
	"strconv"

	"github.com/gogpu/nativehost/paint"
	"github.com/gogpu/nativehost/text"
)

// Rect is a rectangle in logical units.
type Rect = paint.Rect

// Element is a node of the widget tree returned by Program.View.
// Elements are built with Column, Row, Container, Label, Slider and
// TextInput.
type Element interface {
	// layout sizes the element within max and returns its node at the
	// origin. path identifies the element across rebuilds.
	layout(e *env, path string, max Size) *node
	fillsWidth() bool
}

// drawer, handler and interactor are optional element behaviors. The host
// walks the node tree and calls whichever an element implements.
type drawer interface {
	draw(e *env, c *paint.Canvas, n *node)
}

type handler interface {
	event(e *env, s *shell, n *node, ev Event, cursor Cursor)
}

type interactor interface {
	interaction(e *env, n *node, cursor Cursor) Interaction
}

type node struct {
	el       Element
	path     string
	bounds   Rect
	children []*node
}

func (n *node) move(dx, dy float64) {
	n.bounds.X += dx
	n.bounds.Y += dy
	for _, c := range n.children {
		c.move(dx, dy)
	}
}

func (n *node) size() Size { return Size{Width: n.bounds.W, Height: n.bounds.H} }

// walk visits n and its descendants in pre-order.
func (n *node) walk(fn func(*node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

func childPath(parent string, i int) string {
	return parent + "/" + strconv.Itoa(i)
}

// env is shared by every element during layout, drawing and events.
type env struct {
	theme  Theme
	font   *text.Font
	shaper *text.Shaper
	// state holds per-widget state keyed by tree path; it outlives the
	// element values that View rebuilds.
	state map[string]any
	// seen marks paths present in the latest layout.
	seen map[string]bool
}

func newEnv(theme Theme, f *text.Font) *env {
	return &env{
		theme:  theme,
		font:   f,
		shaper: text.NewShaper(),
		state:  make(map[string]any),
		seen:   make(map[string]bool),
	}
}

// stateOf returns the state stored at path, creating it with mk.
func stateOf[T any](e *env, path string, mk func() *T) *T {
	e.seen[path] = true
	if s, ok := e.state[path].(*T); ok {
		return s
	}
	s := mk()
	e.state[path] = s
	return s
}

// prune drops state for widgets that disappeared from the tree.
func (e *env) prune() {
	for p := range e.state {
		if !e.seen[p] {
			delete(e.state, p)
		}
	}
	clear(e.seen)
}

func (e *env) shape(s string, size float64) text.Run {
	if e.font == nil {
		// No font: approximate so layout still works.
		n := len([]rune(s))
		return text.Run{Advance: float64(n) * size * 0.5, Runes: n}
	}
	return e.shaper.Shape(s, e.font, size)
}

func (e *env) lineHeight(size float64) float64 {
	return math.Ceil(size * 1.3)
}

func (e *env) baseline(size float64) float64 {
	if e.font == nil {
		return size
	}
	m := e.font.Metrics(size)
	return (e.lineHeight(size)-(m.Ascent+m.Descent))/2 + m.Ascent
}

// shell collects the messages produced while one event is dispatched.
// Focus changes are ordered after other messages, losses before gains,
// so a tap that moves focus between two inputs always blurs first.
type shell struct {
	clipboard Clipboard
	messages  []Message
	blurs     []Message
	gains     []Message
}

func (s *shell) publish(m Message) { s.messages = append(s.messages, m) }

func (s *shell) focus(m Message, gained bool) {
	if gained {
		s.gains = append(s.gains, m)
	} else {
		s.blurs = append(s.blurs, m)
	}
}

// flush moves the messages of one event, in delivery order, onto out.
func (s *shell) flush(out []Message) []Message {
	out = append(out, s.messages...)
	out = append(out, s.blurs...)
	out = append(out, s.gains...)
	s.messages, s.blurs, s.gains = s.messages[:0], s.blurs[:0], s.gains[:0]
	return out
}

// Length is a sizing rule along one axis.
type Length struct {
	fill  bool
	fixed float64
}

// Shrink sizes to content.
var Shrink = Length{}

// Fill takes all available space.
var Fill = Length{fill: true}

// Fixed is an exact size in logical units.
func Fixed(v float64) Length { return Length{fixed: v} }

func (l Length) resolve(content, max float64) float64 {
	switch {
	case l.fill:
		return max
	case l.fixed > 0:
		return math.Min(l.fixed, max)
	default:
		return math.Min(content, max)
	}
}

// Alignment positions a child inside extra space.
type Alignment uint8

const (
	Start Alignment = iota
	Center
	End
)

func (a Alignment) offset(extra float64) float64 {
	if extra <= 0 {
		return 0
	}
	switch a {
	case Center:
		return extra / 2
	case End:
		return extra
	default:
		return 0
	}
}
