package shape

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ErrUnknownGlyph is returned when the layout text holds a rune with no glyph
var ErrUnknownGlyph = errors.New("unknown glyph")

// Text is the fixed glyph sequence drawn by the field
const Text = "NASA"

// Layout places glyph slots left to right
type Layout struct {
	Text      string
	HalfWidth float64
	Spacing   float64
	StartX    float64
	Bounds    sdf.Box2 // Sampling rectangle covering all slots
}

// DefaultLayout returns the reference letterform placement
func DefaultLayout() Layout {
	return Layout{
		Text:      Text,
		HalfWidth: 0.045,
		Spacing:   0.55,
		StartX:    -1.1,
		Bounds: sdf.Box2{
			Min: v2.Vec{X: -2, Y: -1},
			Max: v2.Vec{X: 2, Y: 1},
		},
	}
}

// Field is the stateless signed distance classifier for the glyph sequence
// Implements sdf.SDF2; safe for concurrent use once built
type Field struct {
	union   sdf.SDF2
	bounds  sdf.Box2
	strokes int
}

// NewField builds the union of every stroke of every glyph in the layout
func NewField(l Layout) (*Field, error) {
	var strokes []sdf.SDF2
	for i, r := range []rune(l.Text) {
		build, ok := glyphs[r]
		if !ok {
			return nil, fmt.Errorf("glyph %q at slot %d: %w", r, i, ErrUnknownGlyph)
		}
		ox := l.StartX + float64(i)*l.Spacing
		for _, s := range build(l.HalfWidth) {
			strokes = append(strokes, place(s, ox, 0))
		}
	}
	if len(strokes) == 0 {
		return nil, fmt.Errorf("empty layout text: %w", ErrUnknownGlyph)
	}

	union := sdf.Union2D(strokes...)
	return &Field{
		union: union,
		// Grown to cover slots placed past the configured rectangle
		bounds:  l.Bounds.Extend(union.BoundingBox()),
		strokes: len(strokes),
	}, nil
}

// Distance returns the signed distance at (x, y), <= 0 is inside a stroke
func (f *Field) Distance(x, y float64) float64 {
	return f.union.Evaluate(v2.Vec{X: x, Y: y})
}

// Inside reports whether (x, y) lies in a stroke
func (f *Field) Inside(x, y float64) bool {
	return f.Distance(x, y) <= 0
}

// Evaluate satisfies sdf.SDF2
func (f *Field) Evaluate(p v2.Vec) float64 {
	return f.union.Evaluate(p)
}

// BoundingBox returns the tight stroke box, see Bounds for the sampling area
func (f *Field) BoundingBox() sdf.Box2 {
	return f.union.BoundingBox()
}

// Bounds returns the sampling rectangle, the layout rectangle extended to cover every stroke
func (f *Field) Bounds() sdf.Box2 {
	return f.bounds
}

// Strokes returns the number of primitives in the union
func (f *Field) Strokes() int {
	return f.strokes
}
