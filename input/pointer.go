// Package input turns pointer, touch and terminal events into simulation controls
package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/letterswarm/camera"
)

// Plane is n·p + d = 0
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DrawingPlane is z = 0 facing the camera
var DrawingPlane = Plane{Normal: mgl32.Vec3{0, 0, 1}}

// IntersectPlane returns the ray/plane hit, false when parallel off-plane or behind the origin
func IntersectPlane(origin, dir mgl32.Vec3, pl Plane) (mgl32.Vec3, bool) {
	denom := pl.Normal.Dot(dir)
	dist := pl.Normal.Dot(origin) + pl.D

	if denom == 0 {
		// Parallel: only a ray lying in the plane hits, at its origin
		if dist == 0 {
			return origin, true
		}
		return mgl32.Vec3{}, false
	}

	t := -dist / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// Projector tracks the pointer's interaction point on the drawing plane
// The point only changes on Move and Leave, a stationary pointer keeps its last hit
type Projector struct {
	cam   *camera.Camera
	plane Plane
	point mgl32.Vec3
	valid bool
}

// NewProjector creates a projector casting rays from cam onto DrawingPlane
func NewProjector(cam *camera.Camera) *Projector {
	return &Projector{cam: cam, plane: DrawingPlane}
}

// NDC converts surface coordinates to normalized device coordinates
func NDC(x, y, width, height float32) (float32, float32) {
	return (x/width)*2 - 1, -(y/height)*2 + 1
}

// Move recomputes the interaction point for a pointer at (x, y) on a width×height surface
func (p *Projector) Move(x, y, width, height float32) {
	if width <= 0 || height <= 0 {
		p.valid = false
		return
	}
	nx, ny := NDC(x, y, width, height)
	origin, dir := p.cam.Ray(nx, ny)
	p.point, p.valid = IntersectPlane(origin, dir, p.plane)
}

// Leave clears the interaction point
func (p *Projector) Leave() {
	p.valid = false
	p.point = mgl32.Vec3{}
}

// Intersection returns the current point, false when there is none
func (p *Projector) Intersection() (mgl32.Vec3, bool) {
	return p.point, p.valid
}
