// Package engine drives the simulation: lifecycle, frame scheduling and input dispatch
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/letterswarm/camera"
	"github.com/lixenwraith/letterswarm/input"
	"github.com/lixenwraith/letterswarm/particle"
	"github.com/lixenwraith/letterswarm/physics"
	"github.com/lixenwraith/letterswarm/render"
)

var (
	ErrNoSurface      = errors.New("no drawing surface")
	ErrEmptySurface   = errors.New("drawing surface has zero area")
	ErrDisposed       = errors.New("loop disposed")
	ErrNotInitialized = errors.New("loop not initialized")
)

// State is the loop lifecycle stage
type State int32

const (
	StateUninitialized State = iota
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Source delivers input events to a sink until cancelled
type Source interface {
	Subscribe(sink input.Sink) (cancel func())
}

// Drawer presents a frame, implemented by render.Renderer
type Drawer interface {
	Resize(cols, rows int) bool
	Aspect() float32
	SetStats(s render.Stats)
	Draw(ps *particle.Set, rot mgl32.Quat)
	Release()
}

// EnergySink receives the cloud's kinetic energy every frame, implemented by audio.Hum
type EnergySink interface {
	SetEnergy(e float64)
	Close() error
}

// Deps are the loop's collaborators, only Surface is required
type Deps struct {
	Surface  render.Surface
	Source   Source
	Clock    Clock
	Renderer func(cam *camera.Camera) Drawer
	Audio    EnergySink
	Report   func(FrameStats) // Called after every tick on the loop goroutine
}

// FrameStats describes one completed tick
type FrameStats struct {
	Frame     uint64
	Time      float32 // Simulation seconds since Init
	FPS       float64 // Smoothed tick rate
	Energy    float64
	Particles int
	Pointer   bool
	Dragging  bool
	RotX      float32
	RotY      float32
}

// Loop owns a Context and advances it once per tick
type Loop struct {
	opts Options
	deps Deps

	// ===== Atomic =====
	state   atomic.Int32
	dropped atomic.Uint64

	// ===== Channels =====
	events   chan input.Event
	stopChan chan struct{}

	// ===== Mutex-Protected (mu) =====
	// Tick, Handle, Resize, Init and Dispose serialise on mu
	mu          sync.Mutex
	ctx         *Context
	drawer      Drawer
	unsubscribe func()
	start       time.Time
	last        time.Time
	fps         float64
	stats       FrameStats

	disposeOnce sync.Once
}

// New creates an uninitialized loop
func New(opts Options, deps Deps) *Loop {
	if deps.Clock == nil {
		deps.Clock = NewTimeProvider()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	return &Loop{
		opts:     opts,
		deps:     deps,
		events:   make(chan input.Event, opts.QueueSize),
		stopChan: make(chan struct{}),
	}
}

// State returns the lifecycle stage
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Init validates the surface and builds the simulation, nothing is created on error
func (l *Loop) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.State() {
	case StateDisposed:
		return ErrDisposed
	case StateRunning:
		return nil
	}

	if l.deps.Surface == nil {
		return ErrNoSurface
	}
	w, h := l.deps.Surface.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptySurface, w, h)
	}

	ctx, err := NewContext(l.opts, w, h)
	if err != nil {
		return err
	}
	l.ctx = ctx

	if l.deps.Renderer != nil {
		l.drawer = l.deps.Renderer(ctx.Camera)
	}
	l.resizeLocked(w, h)

	if l.deps.Source != nil {
		l.unsubscribe = l.deps.Source.Subscribe(func(ev input.Event) { l.Post(ev) })
	}

	l.start = l.deps.Clock.Now()
	l.state.Store(int32(StateRunning))
	log.Printf("engine: running %d particles on %dx%d at %d fps", ctx.Particles.Len(), w, h, l.opts.FPS)
	return nil
}

// Context returns the simulation state, nil before Init
func (l *Loop) Context() *Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx
}

// Stats returns the last completed tick
func (l *Loop) Stats() FrameStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Dropped returns the number of input events discarded on a full queue
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// Run ticks at the configured rate until ctx is cancelled, a Quit event arrives or the loop is disposed
// Queued input is applied on this goroutine before each tick
func (l *Loop) Run(ctx context.Context) error {
	switch l.State() {
	case StateUninitialized:
		return ErrNotInitialized
	case StateDisposed:
		return ErrDisposed
	}

	ticker := time.NewTicker(time.Second / time.Duration(l.opts.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case <-ticker.C:
			if l.drain() {
				return nil
			}
			l.Tick(l.deps.Clock.Now())
		}
	}
}

// drain applies all queued input, returns true on Quit
func (l *Loop) drain() bool {
	for {
		select {
		case ev := <-l.events:
			if l.Handle(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// Post queues ev without blocking, returns false when dropped
func (l *Loop) Post(ev input.Event) bool {
	if l.State() == StateDisposed {
		return false
	}
	select {
	case l.events <- ev:
		return true
	default:
		n := l.dropped.Add(1)
		log.Printf("engine: input queue full, dropped %s (%d total)", ev.Kind, n)
		return false
	}
}

// Handle applies ev to the simulation, returns true when ev asks the loop to stop
func (l *Loop) Handle(ev input.Event) (quit bool) {
	if ev.Kind == input.Quit {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.State() != StateRunning {
		return false
	}

	ctx := l.ctx
	scale := l.opts.DragScale
	switch ev.Kind {
	case input.PointerDown, input.TouchStart:
		ctx.Rotation.DragStart(ev.X*scale, ev.Y*scale)
	case input.PointerMove, input.TouchMove:
		ctx.Pointer.Move(ev.X, ev.Y, ev.Width, ev.Height)
		ctx.Rotation.DragMove(ev.X*scale, ev.Y*scale)
	case input.PointerUp, input.TouchEnd:
		ctx.Rotation.DragEnd()
	case input.PointerLeave:
		ctx.Pointer.Leave()
		ctx.Rotation.DragEnd()
	case input.Resize:
		l.resizeLocked(int(ev.Width), int(ev.Height))
	}
	return false
}

// Resize applies a new surface size, zero area is ignored and particles are never touched
func (l *Loop) Resize(w, h int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.State() != StateRunning {
		return false
	}
	return l.resizeLocked(w, h)
}

func (l *Loop) resizeLocked(w, h int) bool {
	if w <= 0 || h <= 0 {
		log.Printf("engine: ignoring resize to %dx%d", w, h)
		return false
	}

	var aspect float32
	if l.drawer != nil {
		l.drawer.Resize(w, h)
		aspect = l.drawer.Aspect()
	} else {
		aspect = float32(w*render.DotsX) / float32(h*render.DotsY)
	}
	l.ctx.Camera.SetAspect(aspect)
	l.ctx.Width, l.ctx.Height = w, h
	log.Printf("engine: resized to %dx%d (aspect %.3f)", w, h, aspect)
	return true
}

// Tick advances the simulation to now and draws one frame, a no-op unless running
func (l *Loop) Tick(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.State() != StateRunning {
		return
	}

	ctx := l.ctx
	ctx.Rotation.Update()

	// Pointer goes into the cloud's rest frame once per frame, not per particle
	var hit *mgl32.Vec3
	if p, ok := ctx.Pointer.Intersection(); ok {
		local := ctx.Rotation.Inverse().Rotate(p)
		hit = &local
	}

	t := float32(now.Sub(l.start).Seconds())
	ctx.Physics.Step(ctx.Particles, t, hit)
	energy := physics.KineticEnergy(ctx.Particles)

	if !l.last.IsZero() {
		if dt := now.Sub(l.last).Seconds(); dt > 0 {
			if l.fps == 0 {
				l.fps = 1 / dt
			} else {
				l.fps += (1/dt - l.fps) * 0.1
			}
		}
	}
	l.last = now

	rx, ry := ctx.Rotation.Current()
	l.stats = FrameStats{
		Frame:     l.stats.Frame + 1,
		Time:      t,
		FPS:       l.fps,
		Energy:    energy,
		Particles: ctx.Particles.Len(),
		Pointer:   hit != nil,
		Dragging:  ctx.Rotation.Dragging(),
		RotX:      rx,
		RotY:      ry,
	}

	if l.drawer != nil {
		l.drawer.SetStats(render.Stats{
			FPS:       l.fps,
			Particles: l.stats.Particles,
			Energy:    energy,
			RotX:      rx,
			RotY:      ry,
			Pointer:   l.stats.Pointer,
			Dragging:  l.stats.Dragging,
		})
		l.drawer.Draw(ctx.Particles, ctx.Rotation.Quat())
	}
	if l.deps.Audio != nil {
		l.deps.Audio.SetEnergy(energy)
	}
	if l.deps.Report != nil {
		l.deps.Report(l.stats)
	}
}

// Dispose stops ticking, unsubscribes input and releases the renderer and audio sink
// Idempotent and safe after a failed or skipped Init
func (l *Loop) Dispose() {
	l.disposeOnce.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		l.state.Store(int32(StateDisposed))
		close(l.stopChan)

		if l.unsubscribe != nil {
			l.unsubscribe()
			l.unsubscribe = nil
		}
		if l.drawer != nil {
			l.drawer.Release()
		}
		if l.deps.Audio != nil {
			if err := l.deps.Audio.Close(); err != nil {
				log.Printf("engine: closing audio: %v", err)
			}
		}
		log.Printf("engine: disposed after %d frames, %d input events dropped", l.stats.Frame, l.dropped.Load())
	})
}
