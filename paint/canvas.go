// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package paint rasterizes UI drawables on the CPU.
//
// A Canvas wraps an RGBA image in physical pixels and accepts coordinates
// in logical units, multiplying by its scale factor. Shapes are built as
// Paths, filled by a 4x4 supersampled scanline rasterizer with the
// non-zero rule, and composited with Porter-Duff over, so the image holds
// premultiplied alpha.
package paint

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/nativehost/text"
)

// Rect is an axis-aligned rectangle in logical units.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the intersection of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Canvas is a CPU drawing target.
type Canvas struct {
	img   *image.RGBA
	scale float64
	path  Path
	ras   rasterizer
	clips []image.Rectangle
}

// NewCanvas returns a transparent canvas of the given physical size.
func NewCanvas(width, height int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height)), scale: scale}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Scale returns device pixels per logical unit.
func (c *Canvas) Scale() float64 { return c.scale }

// Resize reallocates the backing image if the physical size changed and
// clears it.
func (c *Canvas) Resize(width, height int, scale float64) {
	if scale > 0 {
		c.scale = scale
	}
	b := c.img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		c.img = image.NewRGBA(image.Rect(0, 0, width, height))
		c.clips = c.clips[:0]
		return
	}
	c.Clear()
}

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// PushClip restricts drawing to r intersected with the current clip.
func (c *Canvas) PushClip(r Rect) {
	c.clips = append(c.clips, c.clip().Intersect(c.toPixels(r)))
}

// PopClip restores the previous clip.
func (c *Canvas) PopClip() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
	}
}

func (c *Canvas) clip() image.Rectangle {
	if n := len(c.clips); n > 0 {
		return c.clips[n-1]
	}
	return c.img.Bounds()
}

func (c *Canvas) toPixels(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X*c.scale)),
		int(math.Floor(r.Y*c.scale)),
		int(math.Ceil((r.X+r.W)*c.scale)),
		int(math.Ceil((r.Y+r.H)*c.scale)),
	)
}

// FillRect fills r with col.
func (c *Canvas) FillRect(r Rect, col color.NRGBA) {
	c.FillRoundedRect(r, 0, col)
}

// FillRoundedRect fills r with corners of the given logical radius.
func (c *Canvas) FillRoundedRect(r Rect, radius float64, col color.NRGBA) {
	if r.Empty() || col.A == 0 {
		return
	}
	s := c.scale
	x0, y0 := r.X*s, r.Y*s
	x1, y1 := (r.X+r.W)*s, (r.Y+r.H)*s
	rad := math.Min(radius*s, math.Min(x1-x0, y1-y0)/2)

	area := c.clip().Intersect(image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))))
	if area.Empty() {
		return
	}
	c.path.Clear()
	c.path.RoundedRectangle(x0, y0, x1-x0, y1-y0, rad)
	c.FillPath(&c.path, area, col)
}

// FillPath fills p, given in canvas pixels, inside area intersected with
// the current clip.
func (c *Canvas) FillPath(p *Path, area image.Rectangle, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	area = c.clip().Intersect(area)
	// Straight alpha to premultiplied, then scaled by coverage.
	pix, stride := c.img.Pix, c.img.Stride
	c.ras.fill(p, area, func(x, y int, cov uint8) {
		sa := uint32(col.A) * uint32(cov) / 255
		if sa == 0 {
			return
		}
		inv := 255 - sa
		i := y*stride + x*4
		pix[i+0] = uint8(uint32(col.R)*sa/255 + uint32(pix[i+0])*inv/255)
		pix[i+1] = uint8(uint32(col.G)*sa/255 + uint32(pix[i+1])*inv/255)
		pix[i+2] = uint8(uint32(col.B)*sa/255 + uint32(pix[i+2])*inv/255)
		pix[i+3] = uint8(sa + uint32(pix[i+3])*inv/255)
	})
}

// DrawRun draws a shaped run with its pen origin at (x, baseline), both
// logical. size is the logical font size the run was shaped at.
func (c *Canvas) DrawRun(run text.Run, f *text.Font, size, x, baseline float64, col color.NRGBA) {
	if len(run.Glyphs) == 0 || col.A == 0 || f == nil {
		return
	}
	s := c.scale
	px := size * s
	m := f.Metrics(px)
	ox, oy := x*s, baseline*s

	area := c.clip().Intersect(image.Rect(
		int(math.Floor(ox)), int(math.Floor(oy-m.Ascent)),
		int(math.Ceil(ox+run.Advance*s))+1, int(math.Ceil(oy+m.Descent))+1,
	))
	if area.Empty() {
		return
	}

	c.path.Clear()
	for _, g := range run.Glyphs {
		segs, err := f.Outline(g.ID, px)
		if err != nil || len(segs) == 0 {
			continue
		}
		gx := ox + (g.X+g.XOffset)*s
		gy := oy + g.YOffset*s
		for _, seg := range segs {
			pt := seg.Points
			switch seg.Op {
			case text.MoveTo:
				c.path.MoveTo(gx+pt[0].X, gy+pt[0].Y)
			case text.LineTo:
				c.path.LineTo(gx+pt[0].X, gy+pt[0].Y)
			case text.QuadTo:
				c.path.QuadraticTo(gx+pt[0].X, gy+pt[0].Y, gx+pt[1].X, gy+pt[1].Y)
			case text.CubeTo:
				c.path.CubicTo(gx+pt[0].X, gy+pt[0].Y, gx+pt[1].X, gy+pt[1].Y, gx+pt[2].X, gy+pt[2].Y)
			}
		}
	}
	c.FillPath(&c.path, area, col)
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
