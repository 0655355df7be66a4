package paint

import "math"

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

func (p Point) lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) length() float64 { return math.Hypot(p.X, p.Y) }

// Element is one segment of a Path.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

// LineTo draws a straight line.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

// Close ends the subpath with a line back to its start.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Path is a vector outline in canvas pixels. The zero value is empty and
// ready to use.
type Path struct {
	elements []Element
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.elements = append(p.elements, MoveTo{Point{x, y}})
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.elements = append(p.elements, LineTo{Point{x, y}})
}

// QuadraticTo adds a quadratic curve with control (cx, cy) ending at (x, y).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{Point{cx, cy}, Point{x, y}})
}

// CubicTo adds a cubic curve ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
}

// Clear removes all elements, keeping the backing storage.
func (p *Path) Clear() { p.elements = p.elements[:0] }

// Elements returns the path elements.
func (p *Path) Elements() []Element { return p.elements }

// Rectangle adds a closed rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// RoundedRectangle adds a rectangle whose corners are circular arcs of
// radius r, clamped to half the shorter side.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// arc adds a circular arc from angle a1 to a2 in cubic segments of at
// most a quarter turn. The current point must already be at the start.
func (p *Path) arc(cx, cy, r, a1, a2 float64) {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	n := int(math.Ceil((a2 - a1) / (math.Pi / 2)))
	step := (a2 - a1) / float64(n)
	for i := range n {
		s := a1 + float64(i)*step
		e := s + step
		k := math.Sin(e-s) * (math.Sqrt(4+3*math.Tan((e-s)/2)*math.Tan((e-s)/2)) - 1) / 3
		cos1, sin1 := math.Cos(s), math.Sin(s)
		cos2, sin2 := math.Cos(e), math.Sin(e)
		x1, y1 := cx+r*cos1, cy+r*sin1
		x2, y2 := cx+r*cos2, cy+r*sin2
		p.CubicTo(x1-k*r*sin1, y1+k*r*cos1, x2+k*r*sin2, y2-k*r*cos2, x2, y2)
	}
}

// flatTolerance is the maximum distance in pixels between a curve and
// its flattened polyline.
const flatTolerance = 0.1

// segment is a line from p0 to p1.
type segment struct{ p0, p1 Point }

// appendSegments flattens p into line segments and appends them to dst.
// Every subpath is closed back to its own start, so separate contours
// are never joined.
func (p *Path) appendSegments(dst []segment) []segment {
	var start, cur Point
	open := false
	closeSub := func() {
		if open && cur != start {
			dst = append(dst, segment{cur, start})
		}
		cur = start
		open = false
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			closeSub()
			start, cur = e.Point, e.Point
		case LineTo:
			dst = append(dst, segment{cur, e.Point})
			cur, open = e.Point, true
		case QuadTo:
			dst = flattenQuad(dst, cur, e.Control, e.Point)
			cur, open = e.Point, true
		case CubicTo:
			dst = flattenCubic(dst, cur, e.Control1, e.Control2, e.Point)
			cur, open = e.Point, true
		case Close:
			closeSub()
		}
	}
	closeSub()
	return dst
}

func flattenQuad(dst []segment, p0, p1, p2 Point) []segment {
	if distanceToLine(p1, p0, p2) < flatTolerance {
		return append(dst, segment{p0, p2})
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	m := q0.lerp(q1, 0.5)
	dst = flattenQuad(dst, p0, q0, m)
	return flattenQuad(dst, m, q1, p2)
}

func flattenCubic(dst []segment, p0, p1, p2, p3 Point) []segment {
	if math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < flatTolerance {
		return append(dst, segment{p0, p3})
	}
	// de Casteljau split at t=0.5.
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	m := r0.lerp(r1, 0.5)
	dst = flattenCubic(dst, p0, q0, r0, m)
	return flattenCubic(dst, m, r1, q2, p3)
}

// distanceToLine is the distance from p to the segment a-b.
func distanceToLine(p, a, b Point) float64 {
	ab := b.sub(a)
	l := ab.length()
	if l < 1e-10 {
		return p.sub(a).length()
	}
	ap := p.sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / (l * l)
	switch {
	case t < 0:
		return p.sub(a).length()
	case t > 1:
		return p.sub(b).length()
	}
	return p.sub(a.lerp(b, t)).length()
}
