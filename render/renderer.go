// Package render draws the particle cloud onto a terminal surface using braille dots as backing pixels
package render

import (
	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/letterswarm/camera"
	"github.com/lixenwraith/letterswarm/particle"
)

// Options tune point splatting and the cell gradient
type Options struct {
	PointWeight float32 // Intensity added per unit of particle color
	Threshold   float32 // Minimum dot intensity to light a braille dot
	Saturation  float32 // Peak intensity mapped to the top of the palette
	ShowHUD     bool
	FPS         int // Frame rate the HUD spring is tuned for
	Palette     Palette
}

// DefaultOptions returns the reference look
func DefaultOptions() Options {
	return Options{
		PointWeight: 0.08,
		Threshold:   0.05,
		Saturation:  2.0,
		ShowHUD:     true,
		FPS:         60,
		Palette:     GlowPalette,
	}
}

// Renderer splats particles onto a Canvas and composes braille cells onto a tcell screen
// Not safe for concurrent use, the owning loop serialises Resize, Draw and Release
type Renderer struct {
	screen tcell.Screen
	cam    *camera.Camera
	opts   Options
	canvas *Canvas
	hud    *HUD

	cols, rows int
	released   bool
}

// NewRenderer creates a renderer for screen viewed through cam, call Resize before drawing
func NewRenderer(screen tcell.Screen, cam *camera.Camera, opts Options) *Renderer {
	if len(opts.Palette) == 0 {
		opts.Palette = GlowPalette
	}
	if opts.Saturation <= 0 {
		opts.Saturation = 1
	}
	return &Renderer{
		screen: screen,
		cam:    cam,
		opts:   opts,
		canvas: NewCanvas(0, 0),
		hud:    NewHUD(opts.FPS),
	}
}

// Resize sets the cell dimensions, returns false and keeps the old size for zero area
func (r *Renderer) Resize(cols, rows int) bool {
	if r.released || cols <= 0 || rows <= 0 {
		return false
	}
	r.cols, r.rows = cols, rows
	r.canvas.Resize(cols*DotsX, rows*DotsY)
	return true
}

// Backing returns the dot resolution
func (r *Renderer) Backing() (width, height int) {
	return r.canvas.Width(), r.canvas.Height()
}

// Aspect returns the backing width/height ratio, zero before the first Resize
func (r *Renderer) Aspect() float32 {
	if r.canvas.Height() == 0 {
		return 0
	}
	return float32(r.canvas.Width()) / float32(r.canvas.Height())
}

// SetStats feeds the HUD for the next Draw
func (r *Renderer) SetStats(s Stats) {
	r.hud.Update(s)
}

// HUD returns the status line state
func (r *Renderer) HUD() *HUD {
	return r.hud
}

// Draw renders one frame of ps rotated by rot and shows the screen
func (r *Renderer) Draw(ps *particle.Set, rot mgl32.Quat) {
	if r.released || r.cols == 0 || r.rows == 0 {
		return
	}

	r.splat(ps, rot)
	r.compose()
	if r.opts.ShowHUD {
		r.drawHUD()
	}
	r.screen.Show()
}

// splat accumulates every visible particle onto the canvas
func (r *Renderer) splat(ps *particle.Set, rot mgl32.Quat) {
	c := r.canvas
	c.Clear()

	// Optimization: fold the cloud rotation into the view-projection once per frame
	mvp := r.cam.ViewProjection().Mul4(rot.Normalize().Mat4())
	w, h := float32(c.Width()), float32(c.Height())
	weight := r.opts.PointWeight / 3

	for i := 0; i < ps.Len(); i++ {
		x, y, z := ps.At(i)
		ndc, ok := camera.ProjectWith(mvp, mgl32.Vec3{x, y, z})
		if !ok || ndc.Z() < -1 || ndc.Z() > 1 {
			continue
		}
		if ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
			continue
		}
		px := int(math32.Floor((ndc.X() + 1) * 0.5 * w))
		py := int(math32.Floor((1 - ndc.Y()) * 0.5 * h))

		cr, cg, cb := ps.ColorAt(i)
		c.Add(px, py, (cr+cg+cb)*weight)
	}
}

// compose maps canvas dots to braille cells colored by peak intensity
func (r *Renderer) compose() {
	blank := tcell.StyleDefault
	for cy := 0; cy < r.rows; cy++ {
		for cx := 0; cx < r.cols; cx++ {
			ch, peak, ok := brailleCell(r.canvas, cx, cy, r.opts.Threshold)
			if !ok {
				r.screen.SetContent(cx, cy, ' ', nil, blank)
				continue
			}
			fg := r.opts.Palette.At(float64(peak / r.opts.Saturation))
			r.screen.SetContent(cx, cy, ch, nil, blank.Foreground(fg.Color()))
		}
	}
}

func (r *Renderer) drawHUD() {
	style := tcell.StyleDefault.Foreground(RGBWhite.Color()).Background(RGB{16, 16, 32}.Color())
	x := 0
	for _, ch := range r.hud.Line() {
		if x >= r.cols {
			break
		}
		r.screen.SetContent(x, 0, ch, nil, style)
		x++
	}
}

// Release drops the canvas, further Draw and Resize calls are no-ops
func (r *Renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.canvas.Release()
	r.cols, r.rows = 0, 0
}

// Released reports whether Release has run
func (r *Renderer) Released() bool {
	return r.released
}
