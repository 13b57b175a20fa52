package input

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultSmoothing   = 0.1
	DefaultSensitivity = 0.005
)

// maxPitch bounds the X rotation to avoid flipping the cloud over
const maxPitch = math32.Pi / 2

// Rotation is the drag-driven rotation state machine
// X is pitch (clamped), Y is yaw (unbounded), both in radians
type Rotation struct {
	Smoothing   float32
	Sensitivity float32

	current  mgl32.Vec2
	target   mgl32.Vec2
	dragging bool
	lastX    float32
	lastY    float32
}

// NewRotation creates an idle controller at zero rotation
func NewRotation(smoothing, sensitivity float32) *Rotation {
	return &Rotation{Smoothing: smoothing, Sensitivity: sensitivity}
}

// DragStart begins a drag at (x, y)
func (r *Rotation) DragStart(x, y float32) {
	r.dragging = true
	r.lastX, r.lastY = x, y
}

// DragMove steers the target by the delta since the last recorded position
func (r *Rotation) DragMove(x, y float32) {
	if !r.dragging {
		return
	}
	dx, dy := x-r.lastX, y-r.lastY

	r.target[1] -= dx * r.Sensitivity
	r.target[0] = mgl32.Clamp(r.target[0]-dy*r.Sensitivity, -maxPitch, maxPitch)

	r.lastX, r.lastY = x, y
}

// DragEnd stops the drag, the target is kept
func (r *Rotation) DragEnd() {
	r.dragging = false
}

// Dragging reports whether a drag is in progress
func (r *Rotation) Dragging() bool {
	return r.dragging
}

// Update eases current toward target, called once per frame
func (r *Rotation) Update() {
	r.current[0] += (r.target[0] - r.current[0]) * r.Smoothing
	r.current[1] += (r.target[1] - r.current[1]) * r.Smoothing
}

// Current returns the applied (x, y) rotation
func (r *Rotation) Current() (x, y float32) {
	return r.current[0], r.current[1]
}

// Target returns the (x, y) rotation being eased toward
func (r *Rotation) Target() (x, y float32) {
	return r.target[0], r.target[1]
}

// Quat returns the current rotation as an XYZ Euler quaternion with Z = 0
func (r *Rotation) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(r.current[0], r.current[1], 0, mgl32.XYZ)
}

// Inverse returns the inverse of Quat, mapping world points into the cloud's rest frame
func (r *Rotation) Inverse() mgl32.Quat {
	return r.Quat().Inverse()
}
