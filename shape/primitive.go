package shape

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Far is returned by clipped primitives outside their window so they never win the union
const Far = 1e5

// Capsule is a thick line segment from A to B
type Capsule struct {
	A, B      v2.Vec
	HalfWidth float64
}

// Evaluate returns distance to the segment minus half the stroke width
func (c *Capsule) Evaluate(p v2.Vec) float64 {
	dx := c.B.X - c.A.X
	dy := c.B.Y - c.A.Y
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq > 0 {
		t = clamp(((p.X-c.A.X)*dx+(p.Y-c.A.Y)*dy)/lenSq, 0, 1)
	}
	qx := c.A.X + t*dx
	qy := c.A.Y + t*dy
	return math.Hypot(p.X-qx, p.Y-qy) - c.HalfWidth
}

// BoundingBox returns the segment box grown by the half width
func (c *Capsule) BoundingBox() sdf.Box2 {
	return sdf.Box2{
		Min: v2.Vec{X: math.Min(c.A.X, c.B.X) - c.HalfWidth, Y: math.Min(c.A.Y, c.B.Y) - c.HalfWidth},
		Max: v2.Vec{X: math.Max(c.A.X, c.B.X) + c.HalfWidth, Y: math.Max(c.A.Y, c.B.Y) + c.HalfWidth},
	}
}

// Window is an open axis-aligned clip region, infinite sides use ±Inf
type Window struct {
	MinX, MaxX, MinY, MaxY float64
}

// Open returns a window with no restriction
func Open() Window {
	return Window{
		MinX: math.Inf(-1), MaxX: math.Inf(1),
		MinY: math.Inf(-1), MaxY: math.Inf(1),
	}
}

// Contains reports strict containment
func (w Window) Contains(x, y float64) bool {
	return x > w.MinX && x < w.MaxX && y > w.MinY && y < w.MaxY
}

func (w Window) translate(dx, dy float64) Window {
	return Window{MinX: w.MinX + dx, MaxX: w.MaxX + dx, MinY: w.MinY + dy, MaxY: w.MaxY + dy}
}

// Arc is a ring stroke around Center restricted to Clip
type Arc struct {
	Center    v2.Vec
	Radius    float64
	HalfWidth float64
	Clip      Window
}

// Evaluate returns the ring distance inside the clip window, Far outside it
func (a *Arc) Evaluate(p v2.Vec) float64 {
	if !a.Clip.Contains(p.X, p.Y) {
		return Far
	}
	d := math.Hypot(p.X-a.Center.X, p.Y-a.Center.Y)
	return math.Abs(d-a.Radius) - a.HalfWidth
}

// BoundingBox returns the full ring box, the clip is not applied
func (a *Arc) BoundingBox() sdf.Box2 {
	r := a.Radius + a.HalfWidth
	return sdf.Box2{
		Min: v2.Vec{X: a.Center.X - r, Y: a.Center.Y - r},
		Max: v2.Vec{X: a.Center.X + r, Y: a.Center.Y + r},
	}
}

// Axis selects the direction a bar runs along
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Bar is an axis-aligned band along Axis at Offset, spanning (SpanMin, SpanMax)
// Band is the half width used for the inclusion test, HalfWidth the one subtracted
type Bar struct {
	Axis             Axis
	Offset           float64
	SpanMin, SpanMax float64
	HalfWidth        float64
	Band             float64
}

// Evaluate returns perpendicular distance minus half width inside the band, Far elsewhere
func (b *Bar) Evaluate(p v2.Vec) float64 {
	across, along := p.X-b.Offset, p.Y
	if b.Axis == AxisHorizontal {
		across, along = p.Y-b.Offset, p.X
	}
	if math.Abs(across) < b.band() && along > b.SpanMin && along < b.SpanMax {
		return math.Abs(across) - b.HalfWidth
	}
	return Far
}

// BoundingBox returns the band rectangle
func (b *Bar) BoundingBox() sdf.Box2 {
	w := b.band()
	if b.Axis == AxisHorizontal {
		return sdf.Box2{
			Min: v2.Vec{X: b.SpanMin, Y: b.Offset - w},
			Max: v2.Vec{X: b.SpanMax, Y: b.Offset + w},
		}
	}
	return sdf.Box2{
		Min: v2.Vec{X: b.Offset - w, Y: b.SpanMin},
		Max: v2.Vec{X: b.Offset + w, Y: b.SpanMax},
	}
}

func (b *Bar) band() float64 {
	if b.Band > 0 {
		return b.Band
	}
	return b.HalfWidth
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
