// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package viewport relates the physical pixel size of a window surface to
// the logical units used for UI layout.
//
// All GPU configuration uses physical units; all layout and cursor math
// uses logical units. A Viewport is the only place the two meet.
package viewport

import "fmt"

// Size is a physical size in device pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether either dimension is zero.
func (s Size) IsZero() bool { return s.Width == 0 || s.Height == 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// LogicalSize is a size in logical units.
type LogicalSize struct {
	Width  float64
	Height float64
}

// Point is a position. Whether it is physical or logical depends on context.
type Point struct {
	X, Y float64
}

// Viewport is the physical size and scale factor of a window.
// The zero value is not usable; construct with New.
type Viewport struct {
	physical Size
	scale    float64
}

// New returns a viewport for a surface of the given physical size.
// Scale is the number of device pixels per logical unit; values <= 0 are
// treated as 1.
func New(physical Size, scale float64) Viewport {
	if scale <= 0 {
		scale = 1
	}
	return Viewport{physical: physical, scale: scale}
}

// Physical returns the physical size in device pixels.
func (v Viewport) Physical() Size { return v.physical }

// ScaleFactor returns device pixels per logical unit.
func (v Viewport) ScaleFactor() float64 { return v.scale }

// Logical returns the physical size divided by the scale factor.
func (v Viewport) Logical() LogicalSize {
	return LogicalSize{
		Width:  float64(v.physical.Width) / v.scale,
		Height: float64(v.physical.Height) / v.scale,
	}
}

// ToLogical converts a physical position to logical units.
func (v Viewport) ToLogical(p Point) Point {
	return Point{X: p.X / v.scale, Y: p.Y / v.scale}
}

// ToPhysical converts a logical position to physical pixels.
func (v Viewport) ToPhysical(p Point) Point {
	return Point{X: p.X * v.scale, Y: p.Y * v.scale}
}

func (v Viewport) String() string {
	l := v.Logical()
	return fmt.Sprintf("%s @%.2fx (%.1fx%.1f)", v.physical, v.scale, l.Width, l.Height)
}
