package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFont is returned by Parse for empty input.
var ErrEmptyFont = errors.New("text: empty font data")

// Font is a parsed OpenType/TrueType font usable for both shaping and
// outline extraction. A Font is safe for concurrent use.
type Font struct {
	name  string
	sfnt  *sfnt.Font
	gtext *gotext.Font

	// bufPool holds sfnt.Buffers; sfnt.Buffer is not safe for concurrent use.
	bufPool sync.Pool
}

// Parse parses font data.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to load font for shaping: %w", err)
	}
	f := &Font{sfnt: sf, gtext: face.Font}
	f.bufPool.New = func() any { return new(sfnt.Buffer) }
	if name, err := sf.Name(nil, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

var (
	defaultOnce sync.Once
	defaultFont *Font
	defaultErr  error
)

// Default returns the embedded Go Regular font.
func Default() (*Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = Parse(goregular.TTF)
	})
	return defaultFont, defaultErr
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string { return f.name }

// Metrics are vertical font metrics at a given size, in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	buf := f.bufPool.Get().(*sfnt.Buffer)
	defer f.bufPool.Put(buf)
	m, err := f.sfnt.Metrics(buf, toFixed(size), font.HintingNone)
	if err != nil {
		// Fall back to typical proportions for Latin fonts.
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size * 1.2}
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		Height:  fromFixed(m.Height),
	}
}

// SegmentOp is a path operation in a glyph outline.
type SegmentOp uint8

const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Segment is one outline operation. Points are in pixels relative to the
// glyph origin on the baseline, with Y increasing downward. Only the first
// 1, 1, 2 or 3 points are used for MoveTo, LineTo, QuadTo and CubeTo.
type Segment struct {
	Op     SegmentOp
	Points [3]Point
}

// Point is an outline coordinate in pixels.
type Point struct {
	X, Y float64
}

// Outline returns the outline of glyph gid at size pixels per em.
// Empty glyphs such as spaces return a nil slice.
func (f *Font) Outline(gid GlyphID, size float64) ([]Segment, error) {
	buf := f.bufPool.Get().(*sfnt.Buffer)
	defer f.bufPool.Put(buf)

	segs, err := f.sfnt.LoadGlyph(buf, sfnt.GlyphIndex(gid), toFixed(size), nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	if len(segs) == 0 {
		return nil, nil
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		var op SegmentOp
		n := 1
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			op = MoveTo
		case sfnt.SegmentOpLineTo:
			op = LineTo
		case sfnt.SegmentOpQuadTo:
			op, n = QuadTo, 2
		case sfnt.SegmentOpCubeTo:
			op, n = CubeTo, 3
		}
		out[i].Op = op
		for j := 0; j < n; j++ {
			out[i].Points[j] = Point{X: fromFixed(s.Args[j].X), Y: fromFixed(s.Args[j].Y)}
		}
	}
	return out, nil
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
