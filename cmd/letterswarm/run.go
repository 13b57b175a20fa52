package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/letterswarm/audio"
	"github.com/lixenwraith/letterswarm/camera"
	"github.com/lixenwraith/letterswarm/engine"
	"github.com/lixenwraith/letterswarm/input"
	"github.com/lixenwraith/letterswarm/render"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive simulation (default)",
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Panic Recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mLETTERSWARM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	source := input.NewScreenSource(screen)
	ropts := cfg.Render()
	deps := engine.Deps{
		Surface: screen,
		Source:  source,
		Renderer: func(cam *camera.Camera) engine.Drawer {
			return render.NewRenderer(screen, cam, ropts)
		},
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.AudioConfig())
		if err := player.Start(); err != nil {
			log.Printf("audio: %v, continuing silently", err)
			player.Close()
		} else {
			deps.Audio = player
		}
	}

	loop := engine.New(cfg.Engine(), deps)
	if err := loop.Init(); err != nil {
		loop.Dispose()
		screen.Fini()
		return fmt.Errorf("init loop: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := loop.Run(ctx)

	loop.Dispose()
	source.Stop()
	screen.Fini()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
