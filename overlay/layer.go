// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"image"

	"github.com/gogpu/nativehost/paint"
	"github.com/gogpu/nativehost/viewport"
)

// Drawable is anything that paints onto a canvas; ui.Host is one.
type Drawable interface {
	Draw(c *paint.Canvas)
}

// Versioned is implemented by drawables that can report whether their
// output changed. Generation must change whenever Draw would paint
// something different.
type Versioned interface {
	Generation() uint64
}

// layer rasterizes a drawable on the CPU and skips the work when neither
// the drawable nor the viewport changed.
type layer struct {
	canvas *paint.Canvas
	vp     viewport.Viewport
	gen    uint64
	valid  bool
}

// update repaints the layer if needed and reports whether the image
// changed.
func (l *layer) update(d Drawable, vp viewport.Viewport) (*image.RGBA, bool) {
	phys := vp.Physical()
	w, h := int(phys.Width), int(phys.Height)

	var gen uint64
	v, versioned := d.(Versioned)
	if versioned {
		gen = v.Generation()
	}
	if l.valid && versioned && gen == l.gen && l.vp == vp {
		return l.canvas.Image(), false
	}

	if l.canvas == nil {
		l.canvas = paint.NewCanvas(w, h, vp.ScaleFactor())
	} else {
		l.canvas.Resize(w, h, vp.ScaleFactor())
	}
	d.Draw(l.canvas)
	l.vp, l.gen, l.valid = vp, gen, true
	return l.canvas.Image(), true
}

func (l *layer) invalidate() { l.valid = false }
