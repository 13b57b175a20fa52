package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB is an 8-bit per channel color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// clamp converts float to uint8 with saturation
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + t*float64(int(b.R)-int(a.R)) + 0.5),
		G: clamp(float64(a.G) + t*float64(int(b.G)-int(a.G)) + 0.5),
		B: clamp(float64(a.B) + t*float64(int(b.B)-int(a.B)) + 0.5),
	}
}

// Scale multiplies all channels by factor, saturating at 255
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Palette is a piecewise linear gradient over evenly spaced stops
type Palette []RGB

// GlowPalette runs from deep blue through cyan to white, the look of over-bright additive points
var GlowPalette = Palette{
	{8, 16, 64},
	{24, 64, 180},
	{90, 170, 255},
	{200, 235, 255},
	RGBWhite,
}

// At samples the gradient, t is clamped to [0, 1]
func (p Palette) At(t float64) RGB {
	switch {
	case len(p) == 0:
		return RGBBlack
	case len(p) == 1 || t <= 0:
		return p[0]
	case t >= 1:
		return p[len(p)-1]
	}
	f := t * float64(len(p)-1)
	i := int(f)
	return Lerp(p[i], p[i+1], f-float64(i))
}
