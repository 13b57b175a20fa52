// Package camera provides the perspective camera used for picking and projection
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFov  = 75 // Vertical field of view, degrees
	DefaultNear = 0.1
	DefaultFar  = 1000
	DefaultZ    = 1.5
)

// Camera is a perspective camera at Position looking down -Z
type Camera struct {
	Fov      float32
	Near     float32
	Far      float32
	Aspect   float32
	Position mgl32.Vec3

	projection    mgl32.Mat4
	projectionInv mgl32.Mat4
	world         mgl32.Mat4
	view          mgl32.Mat4
}

// New creates a camera with aspect 1 at (0, 0, z)
func New(fov, near, far, z float32) *Camera {
	c := &Camera{
		Fov:      fov,
		Near:     near,
		Far:      far,
		Aspect:   1,
		Position: mgl32.Vec3{0, 0, z},
	}
	c.update()
	return c
}

// Default returns the reference camera
func Default() *Camera {
	return New(DefaultFov, DefaultNear, DefaultFar, DefaultZ)
}

// SetAspect applies a new width/height ratio, ignoring non-finite or non-positive values
func (c *Camera) SetAspect(a float32) bool {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) || a <= 0 {
		return false
	}
	c.Aspect = a
	c.update()
	return true
}

func (c *Camera) update() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
	c.projectionInv = c.projection.Inv()
	c.world = mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
	c.view = c.world.Inv()
}

// Projection returns the projection matrix
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl32.Mat4 {
	return c.view
}

// ViewProjection returns projection * view
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}

// Ray unprojects an NDC point at depth 0.5 and returns the picking ray from the camera
func (c *Camera) Ray(ndcX, ndcY float32) (origin, dir mgl32.Vec3) {
	origin = c.Position

	clip := c.projectionInv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 0.5, 1})
	local := clip.Vec3().Mul(1 / clip.W())
	world := c.world.Mul4x1(local.Vec4(1)).Vec3()

	dir = world.Sub(origin)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return origin, dir
}

// Project maps a world point to NDC, ok is false for points at or behind the camera plane
func (c *Camera) Project(p mgl32.Vec3) (ndc mgl32.Vec3, ok bool) {
	return ProjectWith(c.ViewProjection(), p)
}

// ProjectWith projects p through a precomputed view-projection matrix
// Optimization: callers projecting many points compute vp once per frame
func ProjectWith(vp mgl32.Mat4, p mgl32.Vec3) (ndc mgl32.Vec3, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl32.Vec3{}, false
	}
	inv := 1 / w
	return mgl32.Vec3{clip.X() * inv, clip.Y() * inv, clip.Z() * inv}, true
}
