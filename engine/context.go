package engine

import (
	"fmt"
	"log"

	"github.com/lixenwraith/letterswarm/camera"
	"github.com/lixenwraith/letterswarm/input"
	"github.com/lixenwraith/letterswarm/particle"
	"github.com/lixenwraith/letterswarm/physics"
	"github.com/lixenwraith/letterswarm/shape"
)

// Options are the simulation tunables the loop is built from
type Options struct {
	Layout      shape.Layout
	Count       int
	Thickness   float32
	MaxAttempts int
	Seed        uint64 // 0 seeds from the wall clock

	Physics physics.Params
	Workers int

	Smoothing   float32
	Sensitivity float32
	DragScale   float32 // Surface units to drag pixels, terminal cells are several pixels wide

	Fov     float32
	Near    float32
	Far     float32
	CameraZ float32

	FPS       int
	QueueSize int // Input events buffered between ticks
}

// DefaultOptions returns the reference simulation
func DefaultOptions() Options {
	return Options{
		Layout:      shape.DefaultLayout(),
		Count:       15000,
		Thickness:   0.2,
		MaxAttempts: 1_500_000,
		Physics:     physics.DefaultParams(),
		Workers:     1,
		Smoothing:   input.DefaultSmoothing,
		Sensitivity: input.DefaultSensitivity,
		DragScale:   8,
		Fov:         camera.DefaultFov,
		Near:        camera.DefaultNear,
		Far:         camera.DefaultFar,
		CameraZ:     camera.DefaultZ,
		FPS:         60,
		QueueSize:   64,
	}
}

// Context owns the mutable simulation state, passed explicitly to update and draw
type Context struct {
	// ===== Immutable After Init =====

	Field     *shape.Field
	Particles *particle.Set // Arena fixed, contents stepped each tick
	Sampling  particle.Stats

	// ===== Main-Loop Exclusive =====
	// Touched only by the loop goroutine once running, under Loop.mu

	Camera   *camera.Camera
	Rotation *input.Rotation
	Pointer  *input.Projector
	Physics  *physics.Integrator

	Width, Height int // Surface size in cells
}

// NewContext builds the field, samples the cloud and wires camera and controllers for a width×height surface
func NewContext(opts Options, width, height int) (*Context, error) {
	field, err := shape.NewField(opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("build shape field: %w", err)
	}

	cfg := particle.SamplerConfig{
		Count:       opts.Count,
		Bounds:      field.Bounds(),
		Thickness:   opts.Thickness,
		MaxAttempts: opts.MaxAttempts,
	}
	ps, st := particle.Sample(field, cfg, particle.NewRand(opts.Seed))
	log.Printf("particle: sampled %d/%d in %d attempts (%.2f%% accepted)",
		st.Accepted, opts.Count, st.Attempts, st.Ratio()*100)
	if st.Exhausted {
		log.Printf("particle: attempt budget %d exhausted, running with %d particles", opts.MaxAttempts, st.Accepted)
	}

	cam := camera.New(opts.Fov, opts.Near, opts.Far, opts.CameraZ)

	return &Context{
		Field:     field,
		Particles: ps,
		Sampling:  st,
		Camera:    cam,
		Rotation:  input.NewRotation(opts.Smoothing, opts.Sensitivity),
		Pointer:   input.NewProjector(cam),
		Physics:   physics.New(opts.Physics, opts.Workers),
		Width:     width,
		Height:    height,
	}, nil
}
