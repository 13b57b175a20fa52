package main

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/letterswarm/camera"
	"github.com/lixenwraith/letterswarm/engine"
	"github.com/lixenwraith/letterswarm/input"
	"github.com/lixenwraith/letterswarm/render"
)

var (
	benchFrames int
	benchCols   int
	benchRows   int
	benchRender bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run headless frames with a synthetic pointer sweep",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "Frames to simulate")
	benchCmd.Flags().IntVar(&benchCols, "cols", 120, "Virtual surface width in cells")
	benchCmd.Flags().IntVar(&benchRows, "rows", 40, "Virtual surface height in cells")
	benchCmd.Flags().BoolVar(&benchRender, "render", false, "Include braille composition on a simulated screen")
	rootCmd.AddCommand(benchCmd)
}

// benchResult summarises one headless run
type benchResult struct {
	Frames    int
	Particles int
	Elapsed   time.Duration
	Energy    []float64 // Per-frame kinetic energy
}

// PerFrame returns mean wall time per frame
func (r benchResult) PerFrame() time.Duration {
	if r.Frames == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Frames)
}

// Peak returns the highest frame energy
func (r benchResult) Peak() float64 {
	var p float64
	for _, e := range r.Energy {
		p = max(p, e)
	}
	return p
}

// sweep returns the synthetic pointer for frame f: a horizontal pass across the middle row band
func sweep(f, frames, cols, rows int) input.Event {
	phase := float32(f) / float32(max(frames, 1))
	x := float32(cols) * (0.5 + 0.45*math32.Sin(2*math32.Pi*phase))
	y := float32(rows) * (0.5 + 0.1*math32.Sin(6*math32.Pi*phase))
	return input.Event{
		Kind:   input.PointerMove,
		X:      x,
		Y:      y,
		Width:  float32(cols),
		Height: float32(rows),
	}
}

// bench drives a loop through frames ticks on a mock clock
func bench(opts engine.Options, frames, cols, rows int, withRender bool) (benchResult, error) {
	res := benchResult{Energy: make([]float64, 0, frames)}
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))

	deps := engine.Deps{
		Surface: render.FixedSurface{Width: cols, Height: rows},
		Clock:   clock,
		Report: func(s engine.FrameStats) {
			res.Energy = append(res.Energy, s.Energy)
		},
	}
	if withRender {
		screen := tcell.NewSimulationScreen("UTF-8")
		if err := screen.Init(); err != nil {
			return res, fmt.Errorf("init simulation screen: %w", err)
		}
		defer screen.Fini()
		screen.SetSize(cols, rows)
		deps.Renderer = func(cam *camera.Camera) engine.Drawer {
			return render.NewRenderer(screen, cam, render.DefaultOptions())
		}
	}

	loop := engine.New(opts, deps)
	if err := loop.Init(); err != nil {
		return res, fmt.Errorf("init loop: %w", err)
	}
	defer loop.Dispose()
	res.Particles = loop.Context().Particles.Len()

	start := time.Now()
	for f := 0; f < frames; f++ {
		loop.Handle(sweep(f, frames, cols, rows))
		loop.Tick(clock.Frame(opts.FPS))
	}
	res.Elapsed = time.Since(start)
	res.Frames = frames
	return res, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchFrames <= 0 || benchCols <= 0 || benchRows <= 0 {
		return fmt.Errorf("frames, cols and rows must be positive")
	}

	res, err := bench(cfg.Engine(), benchFrames, benchCols, benchRows, benchRender)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("letterswarm bench: %d frames on %dx%d", res.Frames, benchCols, benchRows)))
	row(out, "particles", "%d", res.Particles)
	row(out, "workers", "%d", cfg.Display.Workers)
	row(out, "render", "%v", benchRender)
	row(out, "elapsed", "%v", res.Elapsed.Round(time.Millisecond))
	row(out, "per frame", "%.3f ms", float64(res.PerFrame().Microseconds())/1000)
	row(out, "peak energy", "%.3e", res.Peak())

	if len(res.Energy) > 1 {
		chart := asciigraph.Plot(res.Energy,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Precision(4),
			asciigraph.Caption("kinetic energy per frame"))
		fmt.Fprintln(out, graphStyle.Render(chart))
	}
	return nil
}
