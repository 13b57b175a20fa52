package shape

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// glyphHeight is the cap height shared by all glyphs, centred on y=0
const glyphHeight = 0.6

// glyphBuilder returns a glyph's strokes in slot-local coordinates for half width w
type glyphBuilder func(w float64) []sdf.SDF2

var glyphs = map[rune]glyphBuilder{
	'N': glyphN,
	'A': glyphA,
	'S': glyphS,
}

// Supported reports whether r has a glyph
func Supported(r rune) bool {
	_, ok := glyphs[r]
	return ok
}

func glyphN(w float64) []sdf.SDF2 {
	h := glyphHeight / 2
	return []sdf.SDF2{
		&Bar{Axis: AxisVertical, Offset: 0, SpanMin: -h, SpanMax: h, HalfWidth: w},
		&Capsule{A: v2.Vec{X: 0, Y: h}, B: v2.Vec{X: 0.3, Y: -h}, HalfWidth: w},
		&Bar{Axis: AxisVertical, Offset: 0.3, SpanMin: -h, SpanMax: h, HalfWidth: w},
	}
}

func glyphA(w float64) []sdf.SDF2 {
	h := glyphHeight / 2
	return []sdf.SDF2{
		&Capsule{A: v2.Vec{X: 0, Y: -h}, B: v2.Vec{X: 0.15, Y: h}, HalfWidth: w},
		&Capsule{A: v2.Vec{X: 0.15, Y: h}, B: v2.Vec{X: 0.3, Y: -h}, HalfWidth: w},
		&Bar{Axis: AxisHorizontal, Offset: 0, SpanMin: 0.05, SpanMax: 0.25, HalfWidth: w},
	}
}

func glyphS(w float64) []sdf.SDF2 {
	const cx, r = 0.15, 0.15

	top := Open()
	top.MinY, top.MaxX = 0, cx+0.05
	bottom := Open()
	bottom.MaxY, bottom.MinX = 0, cx-0.05

	return []sdf.SDF2{
		&Arc{Center: v2.Vec{X: cx, Y: r}, Radius: r, HalfWidth: w, Clip: top},
		&Arc{Center: v2.Vec{X: cx, Y: -r}, Radius: r, HalfWidth: w, Clip: bottom},
		// Wider inclusion band than the stroke, inherited from the reference letterform
		&Bar{Axis: AxisHorizontal, Offset: 0, SpanMin: 0.05, SpanMax: 0.25, HalfWidth: w, Band: w * 1.5},
	}
}

// place moves a slot-local stroke to the slot origin (ox, oy)
func place(s sdf.SDF2, ox, oy float64) sdf.SDF2 {
	switch p := s.(type) {
	case *Capsule:
		return &Capsule{
			A:         v2.Vec{X: p.A.X + ox, Y: p.A.Y + oy},
			B:         v2.Vec{X: p.B.X + ox, Y: p.B.Y + oy},
			HalfWidth: p.HalfWidth,
		}
	case *Arc:
		return &Arc{
			Center:    v2.Vec{X: p.Center.X + ox, Y: p.Center.Y + oy},
			Radius:    p.Radius,
			HalfWidth: p.HalfWidth,
			Clip:      p.Clip.translate(ox, oy),
		}
	case *Bar:
		moved := *p
		if p.Axis == AxisVertical {
			moved.Offset += ox
			moved.SpanMin += oy
			moved.SpanMax += oy
		} else {
			moved.Offset += oy
			moved.SpanMin += ox
			moved.SpanMax += ox
		}
		return &moved
	default:
		return sdf.Transform2D(s, sdf.Translate2d(v2.Vec{X: ox, Y: oy}))
	}
}
