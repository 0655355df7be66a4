package paint

import (
	"image"
	"math"
)

// Coverage is sampled on a 4x4 grid per pixel.
const (
	sampleShift  = 2
	sampleScale  = 1 << sampleShift
	fullCoverage = sampleScale * sampleScale
)

// edge is a non-horizontal segment stored top to bottom. dir is +1 if the
// segment pointed down, -1 if it pointed up.
type edge struct {
	x0, y0, y1 float64
	dxdy       float64
	dir        int
}

func newEdge(s segment) (edge, bool) {
	p0, p1 := s.p0, s.p1
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	if p1.Y-p0.Y < 1e-3 {
		return edge{}, false
	}
	return edge{x0: p0.X, y0: p0.Y, y1: p1.Y, dxdy: (p1.X - p0.X) / (p1.Y - p0.Y), dir: dir}, true
}

func (e *edge) xAt(y float64) float64 { return e.x0 + (y-e.y0)*e.dxdy }

type crossing struct {
	x   float64
	dir int
}

// rasterizer is a supersampled scanline filler using the non-zero
// winding rule. Its buffers are reused between fills.
type rasterizer struct {
	segs  []segment
	edges []edge
	cross []crossing
	cov   []uint16
}

// fill computes the coverage of p inside area and calls blend once for
// every pixel with non-zero coverage.
func (r *rasterizer) fill(p *Path, area image.Rectangle, blend func(x, y int, alpha uint8)) {
	if area.Empty() {
		return
	}
	r.segs = p.appendSegments(r.segs[:0])
	r.edges = r.edges[:0]
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, s := range r.segs {
		if e, ok := newEdge(s); ok {
			r.edges = append(r.edges, e)
			yMin = math.Min(yMin, e.y0)
			yMax = math.Max(yMax, e.y1)
		}
	}
	if len(r.edges) == 0 {
		return
	}

	top := max(area.Min.Y, int(math.Floor(yMin)))
	bottom := min(area.Max.Y, int(math.Ceil(yMax)))
	if cap(r.cov) < area.Dx() {
		r.cov = make([]uint16, area.Dx())
	}
	r.cov = r.cov[:area.Dx()]

	for y := top; y < bottom; y++ {
		clear(r.cov)
		hit := false
		for sub := range sampleScale {
			sy := float64(y) + (float64(sub)+0.5)/sampleScale
			if r.scanline(sy, area) {
				hit = true
			}
		}
		if !hit {
			continue
		}
		for i, c := range r.cov {
			if c > 0 {
				blend(area.Min.X+i, y, uint8(uint32(min(c, fullCoverage))*255/fullCoverage))
			}
		}
	}
}

// scanline accumulates the spans of one sub-scanline into r.cov and
// reports whether any span was inside the path.
func (r *rasterizer) scanline(sy float64, area image.Rectangle) bool {
	r.cross = r.cross[:0]
	for i := range r.edges {
		e := &r.edges[i]
		if e.y0 <= sy && sy < e.y1 {
			r.cross = append(r.cross, crossing{x: e.xAt(sy), dir: e.dir})
		}
	}
	if len(r.cross) == 0 {
		return false
	}
	// Few crossings per line; insertion sort.
	for i := 1; i < len(r.cross); i++ {
		c := r.cross[i]
		j := i - 1
		for j >= 0 && r.cross[j].x > c.x {
			r.cross[j+1] = r.cross[j]
			j--
		}
		r.cross[j+1] = c
	}

	hit := false
	winding := 0
	var start float64
	for _, c := range r.cross {
		if winding == 0 {
			start = c.x
		}
		winding += c.dir
		if winding == 0 {
			r.span(start, c.x, area)
			hit = true
		}
	}
	return hit
}

// span adds horizontal coverage for [x1, x2) in pixels, clipped to area.
func (r *rasterizer) span(x1, x2 float64, area image.Rectangle) {
	s1 := max(int(math.Round(x1*sampleScale)), area.Min.X<<sampleShift)
	s2 := min(int(math.Round(x2*sampleScale)), area.Max.X<<sampleShift)
	for s1 < s2 {
		px := s1 >> sampleShift
		end := min(s2, (px+1)<<sampleShift)
		r.cov[px-area.Min.X] += uint16(end - s1)
		s1 = end
	}
}
