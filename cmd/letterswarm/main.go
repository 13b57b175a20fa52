package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/letterswarm/config"
)

var (
	configPath  string
	seedFlag    uint64
	fpsFlag     int
	workersFlag int
	audioFlag   bool
	debugFlag   bool

	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "letterswarm",
	Short: "Particle letterforms in the terminal, push them with the mouse and drag to rotate",
	// Bare invocation runs the simulation
	RunE:         runSimulation,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logFile = setupLogging(debugFlag)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "TOML config file, defaults apply when empty or missing")
	pf.Uint64Var(&seedFlag, "seed", 0, "Sampler seed, 0 seeds from the clock")
	pf.IntVar(&fpsFlag, "fps", 0, "Target frame rate")
	pf.IntVar(&workersFlag, "workers", 0, "Physics worker goroutines")
	pf.BoolVar(&audioFlag, "audio", false, "Play the kinetic hum")
	pf.BoolVar(&debugFlag, "debug", false, "Write logs to logs/letterswarm.log")
}

// loadConfig reads the config file and applies flags the user set explicitly
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Display.Seed = seedFlag
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = fpsFlag
	}
	if flags.Changed("workers") {
		cfg.Display.Workers = workersFlag
	}
	if flags.Changed("audio") {
		cfg.Audio.Enabled = audioFlag
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	log.Printf("config: loaded (file %q, seed %d, fps %d, workers %d, audio %v)",
		configPath, cfg.Display.Seed, cfg.Display.FPS, cfg.Display.Workers, cfg.Audio.Enabled)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
