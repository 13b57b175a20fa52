// Package physics advances the particle cloud: swirl targets, pointer repulsion, spring return and damping
package physics

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/letterswarm/particle"
)

// MinDistSq guards the repulsion normalisation against a pointer sitting on a particle
const MinDistSq = 1e-4

// minChunk is the smallest slice handed to a worker
const minChunk = 1024

// Params are the per-frame force constants
type Params struct {
	SwirlRadius  float32 // Orbit radius around the reference point
	AngularSpeed float32 // Orbit rate, radians per time unit
	EffectRadius float32 // Pointer influence radius
	Repel        float32 // Peak repulsion at the pointer
	Attract      float32 // Spring constant toward the swirl target
	Damping      float32 // Velocity multiplier per step
	Brightness   float32 // Color written every step
}

// DefaultParams returns the reference tuning
func DefaultParams() Params {
	return Params{
		SwirlRadius:  0.01,
		AngularSpeed: 1,
		EffectRadius: 0.3,
		Repel:        0.05,
		Attract:      0.05,
		Damping:      0.95,
		Brightness:   4,
	}
}

// Integrator steps a particle set once per frame
// Workers > 1 splits the arena into contiguous chunks, results match the sequential step exactly
type Integrator struct {
	Params  Params
	Workers int
}

// New creates an integrator with the given params
func New(p Params, workers int) *Integrator {
	return &Integrator{Params: p, Workers: workers}
}

// SwirlTarget returns the orbit point of a particle with reference (ox, oy, oz) and phase at time t
func SwirlTarget(ox, oy, oz, phase, t, radius, speed float32) (x, y, z float32) {
	s, c := math32.Sincos(t*speed + phase)
	return ox + c*radius, oy + s*radius, oz
}

// Repulsion returns the velocity kick on a particle at offset (dx, dy, dz) from the pointer
// Zero outside the effect radius and inside the MinDistSq guard
func Repulsion(dx, dy, dz, effectRadius, strength float32) (kx, ky, kz float32) {
	distSq := dx*dx + dy*dy + dz*dz
	if distSq <= MinDistSq || distSq >= effectRadius*effectRadius {
		return 0, 0, 0
	}
	dist := math32.Sqrt(distSq)
	force := (1 - dist/effectRadius) * strength
	inv := 1 / dist
	return dx * inv * force, dy * inv * force, dz * inv * force
}

// Step advances every particle by one frame at time t
// hit is the pointer in the cloud's rest frame, nil when there is none
func (it *Integrator) Step(ps *particle.Set, t float32, hit *mgl32.Vec3) {
	n := ps.Len()
	if n == 0 {
		return
	}

	workers := it.Workers
	if workers > 1 {
		workers = min(workers, (n+minChunk-1)/minChunk)
	}
	if workers <= 1 {
		it.stepRange(ps, t, hit, 0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			it.stepRange(ps, t, hit, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// stepRange integrates particles [lo, hi), touching only their slots
func (it *Integrator) stepRange(ps *particle.Set, t float32, hit *mgl32.Vec3, lo, hi int) {
	p := it.Params
	pos, ref, vel, col, phase := ps.Position, ps.Reference, ps.Velocity, ps.Color, ps.Phase

	var hx, hy, hz float32
	if hit != nil {
		hx, hy, hz = hit.X(), hit.Y(), hit.Z()
	}

	for i := lo; i < hi; i++ {
		j := 3 * i
		px, py, pz := pos[j], pos[j+1], pos[j+2]
		vx, vy, vz := vel[j], vel[j+1], vel[j+2]

		tx, ty, tz := SwirlTarget(ref[j], ref[j+1], ref[j+2], phase[i], t, p.SwirlRadius, p.AngularSpeed)

		if hit != nil {
			kx, ky, kz := Repulsion(px-hx, py-hy, pz-hz, p.EffectRadius, p.Repel)
			vx += kx
			vy += ky
			vz += kz
		}

		vx += (tx - px) * p.Attract
		vy += (ty - py) * p.Attract
		vz += (tz - pz) * p.Attract

		vx *= p.Damping
		vy *= p.Damping
		vz *= p.Damping

		pos[j], pos[j+1], pos[j+2] = px+vx, py+vy, pz+vz
		vel[j], vel[j+1], vel[j+2] = vx, vy, vz
		col[j], col[j+1], col[j+2] = p.Brightness, p.Brightness, p.Brightness
	}
}

// KineticEnergy returns the sum of ½|v|² over the set
func KineticEnergy(ps *particle.Set) float64 {
	var e float64
	v := ps.Velocity
	for j := 0; j+2 < len(v); j += 3 {
		x, y, z := float64(v[j]), float64(v[j+1]), float64(v[j+2])
		e += x*x + y*y + z*z
	}
	return e / 2
}
