package ui

import (
	"math"

	"github.com/gogpu/nativehost/paint"
)

// ColumnElement stacks children vertically.
type ColumnElement struct {
	children []Element
	spacing  float64
	padding  float64
	width    Length
	align    Alignment
}

// Column returns a vertical stack of children.
func Column(children ...Element) *ColumnElement {
	return &ColumnElement{children: children}
}

// Spacing sets the gap between children.
func (c *ColumnElement) Spacing(v float64) *ColumnElement { c.spacing = v; return c }

// Padding sets the inner padding on every side.
func (c *ColumnElement) Padding(v float64) *ColumnElement { c.padding = v; return c }

// Width sets the horizontal sizing rule.
func (c *ColumnElement) Width(l Length) *ColumnElement { c.width = l; return c }

// AlignItems sets the horizontal alignment of children.
func (c *ColumnElement) AlignItems(a Alignment) *ColumnElement { c.align = a; return c }

// Push appends a child.
func (c *ColumnElement) Push(e Element) *ColumnElement {
	c.children = append(c.children, e)
	return c
}

func (c *ColumnElement) fillsWidth() bool { return c.width.fill }

func (c *ColumnElement) layout(e *env, path string, max Size) *node {
	inner := Size{Width: math.Max(0, max.Width-2*c.padding), Height: math.Max(0, max.Height-2*c.padding)}
	if c.width.fixed > 0 {
		inner.Width = math.Max(0, math.Min(c.width.fixed, max.Width)-2*c.padding)
	}

	n := &node{el: c, path: path}
	y, widest := c.padding, 0.0
	for i, ch := range c.children {
		if i > 0 {
			y += c.spacing
		}
		cn := ch.layout(e, childPath(path, i), Size{Width: inner.Width, Height: math.Max(0, inner.Height-(y-c.padding))})
		cn.move(0, y)
		y += cn.bounds.H
		widest = math.Max(widest, cn.bounds.W)
		n.children = append(n.children, cn)
	}
	w := c.width.resolve(widest+2*c.padding, max.Width)
	for _, cn := range n.children {
		cn.move(c.padding+c.align.offset(w-2*c.padding-cn.bounds.W), 0)
	}
	n.bounds = Rect{W: w, H: math.Min(y+c.padding, max.Height)}
	return n
}

// RowElement places children side by side. Children that fill their
// width share the space left by the others.
type RowElement struct {
	children []Element
	spacing  float64
	padding  float64
	width    Length
	align    Alignment
}

// Row returns a horizontal sequence of children.
func Row(children ...Element) *RowElement {
	return &RowElement{children: children}
}

// Spacing sets the gap between children.
func (r *RowElement) Spacing(v float64) *RowElement { r.spacing = v; return r }

// Padding sets the inner padding on every side.
func (r *RowElement) Padding(v float64) *RowElement { r.padding = v; return r }

// Width sets the horizontal sizing rule.
func (r *RowElement) Width(l Length) *RowElement { r.width = l; return r }

// AlignItems sets the vertical alignment of children.
func (r *RowElement) AlignItems(a Alignment) *RowElement { r.align = a; return r }

func (r *RowElement) fillsWidth() bool { return r.width.fill }

func (r *RowElement) layout(e *env, path string, max Size) *node {
	innerW := math.Max(0, max.Width-2*r.padding)
	if r.width.fixed > 0 {
		innerW = math.Max(0, math.Min(r.width.fixed, max.Width)-2*r.padding)
	}
	innerH := math.Max(0, max.Height-2*r.padding)
	gaps := r.spacing * float64(max0(len(r.children)-1))

	nodes := make([]*node, len(r.children))
	used, fills := gaps, 0
	for i, ch := range r.children {
		if ch.fillsWidth() {
			fills++
			continue
		}
		nodes[i] = ch.layout(e, childPath(path, i), Size{Width: math.Max(0, innerW-used), Height: innerH})
		used += nodes[i].bounds.W
	}
	if fills > 0 {
		share := math.Max(0, innerW-used) / float64(fills)
		for i, ch := range r.children {
			if ch.fillsWidth() {
				nodes[i] = ch.layout(e, childPath(path, i), Size{Width: share, Height: innerH})
				used += nodes[i].bounds.W
			}
		}
	}

	tallest := 0.0
	for _, cn := range nodes {
		tallest = math.Max(tallest, cn.bounds.H)
	}
	n := &node{el: r, path: path, children: nodes}
	x := r.padding
	for i, cn := range nodes {
		if i > 0 {
			x += r.spacing
		}
		cn.move(x, r.padding+r.align.offset(tallest-cn.bounds.H))
		x += cn.bounds.W
	}
	n.bounds = Rect{W: r.width.resolve(x+r.padding, max.Width), H: math.Min(tallest+2*r.padding, max.Height)}
	return n
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// ContainerElement wraps one child with padding, sizing, alignment and an
// optional background.
type ContainerElement struct {
	child      Element
	padding    float64
	width      Length
	height     Length
	alignX     Alignment
	alignY     Alignment
	background Color
}

// Container wraps child.
func Container(child Element) *ContainerElement {
	return &ContainerElement{child: child}
}

// Padding sets the inner padding on every side.
func (c *ContainerElement) Padding(v float64) *ContainerElement { c.padding = v; return c }

// Width sets the horizontal sizing rule.
func (c *ContainerElement) Width(l Length) *ContainerElement { c.width = l; return c }

// Height sets the vertical sizing rule.
func (c *ContainerElement) Height(l Length) *ContainerElement { c.height = l; return c }

// Align positions the child inside the container.
func (c *ContainerElement) Align(x, y Alignment) *ContainerElement {
	c.alignX, c.alignY = x, y
	return c
}

// Background fills the container before drawing the child.
func (c *ContainerElement) Background(col Color) *ContainerElement { c.background = col; return c }

func (c *ContainerElement) fillsWidth() bool { return c.width.fill }

func (c *ContainerElement) layout(e *env, path string, max Size) *node {
	inner := Size{Width: math.Max(0, max.Width-2*c.padding), Height: math.Max(0, max.Height-2*c.padding)}
	cn := c.child.layout(e, childPath(path, 0), inner)
	w := c.width.resolve(cn.bounds.W+2*c.padding, max.Width)
	h := c.height.resolve(cn.bounds.H+2*c.padding, max.Height)
	cn.move(
		c.padding+c.alignX.offset(w-2*c.padding-cn.bounds.W),
		c.padding+c.alignY.offset(h-2*c.padding-cn.bounds.H),
	)
	return &node{el: c, path: path, bounds: Rect{W: w, H: h}, children: []*node{cn}}
}

func (c *ContainerElement) draw(e *env, cv *paint.Canvas, n *node) {
	if c.background.A > 0 {
		cv.FillRect(n.bounds, c.background.NRGBA())
	}
}

// LabelElement is a single line of text.
type LabelElement struct {
	content string
	size    float64
	color   *Color
}

// Label returns a text element with the default size of 16.
func Label(content string) *LabelElement {
	return &LabelElement{content: content, size: 16}
}

// Size sets the font size in logical units.
func (l *LabelElement) Size(v float64) *LabelElement { l.size = v; return l }

// Color overrides the theme text color.
func (l *LabelElement) Color(c Color) *LabelElement { l.color = &c; return l }

func (l *LabelElement) fillsWidth() bool { return false }

func (l *LabelElement) layout(e *env, path string, max Size) *node {
	run := e.shape(l.content, l.size)
	return &node{el: l, path: path, bounds: Rect{
		W: math.Min(math.Ceil(run.Advance), max.Width),
		H: math.Min(e.lineHeight(l.size), max.Height),
	}}
}

func (l *LabelElement) draw(e *env, cv *paint.Canvas, n *node) {
	col := e.theme.Text
	if l.color != nil {
		col = *l.color
	}
	cv.PushClip(n.bounds)
	cv.DrawRun(e.shape(l.content, l.size), e.font, l.size, n.bounds.X, n.bounds.Y+e.baseline(l.size), col.NRGBA())
	cv.PopClip()
}

// Space is an empty element of fixed size.
func Space(width, height float64) Element { return spaceElement{w: width, h: height} }

type spaceElement struct{ w, h float64 }

func (s spaceElement) fillsWidth() bool { return false }

func (s spaceElement) layout(_ *env, path string, max Size) *node {
	return &node{el: s, path: path, bounds: Rect{W: math.Min(s.w, max.Width), H: math.Min(s.h, max.Height)}}
}
