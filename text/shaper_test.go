package text

import (
	"math"
	"testing"
)

func loadDefaultFont(t *testing.T) *Font {
	t.Helper()
	f, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return f
}

func TestDefaultFont(t *testing.T) {
	f := loadDefaultFont(t)
	if f.Name() == "" {
		t.Error("default font has no family name")
	}
	m := f.Metrics(16)
	if m.Ascent <= 0 || m.Descent <= 0 || m.Height < m.Ascent {
		t.Errorf("implausible metrics %+v", m)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil); err != ErrEmptyFont {
		t.Errorf("Parse(nil) error = %v, want ErrEmptyFont", err)
	}
	if _, err := Parse([]byte("not a font")); err == nil {
		t.Error("Parse accepted garbage")
	}
}

func TestShape(t *testing.T) {
	f := loadDefaultFont(t)
	s := NewShaper()

	tests := []struct {
		name string
		in   string
	}{
		{"ascii", "Hello"},
		{"spaces", "a b c"},
		{"accented", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := s.Shape(tt.in, f, 16)
			if run.Runes != len([]rune(tt.in)) {
				t.Errorf("Runes = %d, want %d", run.Runes, len([]rune(tt.in)))
			}
			if len(run.Glyphs) == 0 {
				t.Fatal("no glyphs")
			}
			if run.Advance <= 0 {
				t.Errorf("Advance = %v", run.Advance)
			}
			prev := -1.0
			for _, g := range run.Glyphs {
				if g.X < prev {
					t.Errorf("glyph pen positions not monotonic: %v after %v", g.X, prev)
				}
				prev = g.X
			}
		})
	}

	if run := s.Shape("", f, 16); len(run.Glyphs) != 0 || run.Advance != 0 {
		t.Errorf("empty string shaped to %+v", run)
	}
}

func TestShapeScalesWithSize(t *testing.T) {
	f := loadDefaultFont(t)
	s := NewShaper()
	small := s.Shape("scale", f, 10).Advance
	large := s.Shape("scale", f, 20).Advance
	if math.Abs(large-2*small) > 1 {
		t.Errorf("advance at 20px = %v, want about twice %v", large, small)
	}
}

func TestCaretAndIndex(t *testing.T) {
	f := loadDefaultFont(t)
	run := NewShaper().Shape("abcd", f, 16)

	if got := run.CaretX(0); got != 0 {
		t.Errorf("CaretX(0) = %v", got)
	}
	if got := run.CaretX(4); got != run.Advance {
		t.Errorf("CaretX(end) = %v, want %v", got, run.Advance)
	}
	for i := 0; i <= 4; i++ {
		if got := run.Index(run.CaretX(i)); got != i {
			t.Errorf("Index(CaretX(%d)) = %d", i, got)
		}
	}
	if got := run.Index(-5); got != 0 {
		t.Errorf("Index(-5) = %d", got)
	}
	if got := run.Index(run.Advance + 100); got != 4 {
		t.Errorf("Index(past end) = %d", got)
	}
}

func TestOutline(t *testing.T) {
	f := loadDefaultFont(t)
	run := NewShaper().Shape("O ", f, 32)
	if len(run.Glyphs) != 2 {
		t.Fatalf("glyphs = %d, want 2", len(run.Glyphs))
	}
	segs, err := f.Outline(run.Glyphs[0].ID, 32)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if len(segs) == 0 || segs[0].Op != MoveTo {
		t.Fatalf("outline of O = %v", segs)
	}
	// Glyph bodies sit above the baseline in Y-down space.
	minY := 0.0
	for _, s := range segs {
		for _, p := range s.Points {
			minY = math.Min(minY, p.Y)
		}
	}
	if minY >= 0 {
		t.Errorf("outline does not extend above baseline (minY = %v)", minY)
	}

	space, err := f.Outline(run.Glyphs[1].ID, 32)
	if err != nil {
		t.Fatalf("Outline(space): %v", err)
	}
	if len(space) != 0 {
		t.Errorf("space has %d segments", len(space))
	}
}
