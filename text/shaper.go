package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// GlyphID indexes a glyph in a font.
type GlyphID uint16

// Glyph is a shaped glyph positioned along a run.
type Glyph struct {
	ID GlyphID
	// X is the pen position of the glyph origin, relative to the run start.
	X float64
	// XOffset and YOffset shift the glyph from its pen position.
	XOffset, YOffset float64
	Advance          float64
	// Cluster is the index of the first rune this glyph was shaped from.
	Cluster int
}

// Run is a shaped line of text.
type Run struct {
	Glyphs  []Glyph
	Advance float64
	// Runes is the number of runes in the source string.
	Runes int
}

// CaretX returns the pen offset before rune index i. Indexes past the end
// return the run's full advance.
func (r Run) CaretX(i int) float64 {
	if i <= 0 {
		return 0
	}
	if i >= r.Runes {
		return r.Advance
	}
	for _, g := range r.Glyphs {
		if g.Cluster >= i {
			return g.X
		}
	}
	return r.Advance
}

// Index returns the rune index whose caret position is closest to x.
func (r Run) Index(x float64) int {
	if x <= 0 || r.Runes == 0 {
		return 0
	}
	best, bestDist := 0, x
	for i := 1; i <= r.Runes; i++ {
		d := r.CaretX(i) - x
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Shaper shapes left-to-right text with HarfBuzz. It is safe for
// concurrent use.
type Shaper struct {
	// HarfbuzzShaper keeps an internal buffer and is not safe for
	// concurrent use, so instances are pooled.
	pool sync.Pool
}

// NewShaper returns a Shaper.
func NewShaper() *Shaper {
	return &Shaper{pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }}}
}

// Shape shapes s with font f at size pixels per em.
func (s *Shaper) Shape(str string, f *Font, size float64) Run {
	runes := []rune(str)
	if len(runes) == 0 || f == nil {
		return Run{}
	}

	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.gtext),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(in)
	s.pool.Put(hb)

	run := Run{Glyphs: make([]Glyph, 0, len(out.Glyphs)), Runes: len(runes)}
	var pen float64
	for _, g := range out.Glyphs {
		adv := fromFixed(g.Advance)
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:      GlyphID(g.GlyphID),
			X:       pen,
			XOffset: fromFixed(g.XOffset),
			// go-text offsets are Y-up; outlines are Y-down.
			YOffset: -fromFixed(g.YOffset),
			Advance: adv,
			Cluster: g.TextIndex(),
		})
		pen += adv
	}
	run.Advance = pen
	return run
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
