// Package config loads the TOML tunables and converts them into engine, render and audio options
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/letterswarm/audio"
	"github.com/lixenwraith/letterswarm/engine"
	"github.com/lixenwraith/letterswarm/physics"
	"github.com/lixenwraith/letterswarm/render"
	"github.com/lixenwraith/letterswarm/shape"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Sampling struct {
	Text        string  `toml:"text"`
	Count       int     `toml:"count"`
	HalfWidth   float64 `toml:"half_width"`
	Spacing     float64 `toml:"spacing"`
	Thickness   float32 `toml:"thickness"`
	MaxAttempts int     `toml:"max_attempts"`
}

type Physics struct {
	SwirlRadius  float32 `toml:"swirl_radius"`
	AngularSpeed float32 `toml:"angular_speed"`
	EffectRadius float32 `toml:"effect_radius"`
	Repel        float32 `toml:"repel"`
	Attract      float32 `toml:"attract"`
	Damping      float32 `toml:"damping"`
}

type Rotation struct {
	Smoothing   float32 `toml:"smoothing"`
	Sensitivity float32 `toml:"sensitivity"`
}

type Camera struct {
	Fov  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
	Z    float32 `toml:"z"`
}

type Display struct {
	FPS         int     `toml:"fps"`
	PointWeight float32 `toml:"point_weight"`
	Brightness  float32 `toml:"brightness"`
	Workers     int     `toml:"workers"`
	Seed        uint64  `toml:"seed"`
	DragScale   float32 `toml:"drag_scale"`
	HUD         bool    `toml:"hud"`
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Config mirrors the TOML file layout
type Config struct {
	Sampling Sampling `toml:"sampling"`
	Physics  Physics  `toml:"physics"`
	Rotation Rotation `toml:"rotation"`
	Camera   Camera   `toml:"camera"`
	Display  Display  `toml:"display"`
	Audio    Audio    `toml:"audio"`
}

// Default returns the reference tunables
func Default() Config {
	eo := engine.DefaultOptions()
	pp := eo.Physics
	return Config{
		Sampling: Sampling{
			Text:        eo.Layout.Text,
			Count:       eo.Count,
			HalfWidth:   eo.Layout.HalfWidth,
			Spacing:     eo.Layout.Spacing,
			Thickness:   eo.Thickness,
			MaxAttempts: eo.MaxAttempts,
		},
		Physics: Physics{
			SwirlRadius:  pp.SwirlRadius,
			AngularSpeed: pp.AngularSpeed,
			EffectRadius: pp.EffectRadius,
			Repel:        pp.Repel,
			Attract:      pp.Attract,
			Damping:      pp.Damping,
		},
		Rotation: Rotation{
			Smoothing:   eo.Smoothing,
			Sensitivity: eo.Sensitivity,
		},
		Camera: Camera{
			Fov:  eo.Fov,
			Near: eo.Near,
			Far:  eo.Far,
			Z:    eo.CameraZ,
		},
		Display: Display{
			FPS:         eo.FPS,
			PointWeight: render.DefaultOptions().PointWeight,
			Brightness:  pp.Brightness,
			Workers:     eo.Workers,
			Seed:        0,
			DragScale:   eo.DragScale,
			HUD:         true,
		},
		Audio: Audio{
			Enabled: false,
			Volume:  audio.DefaultConfig().Volume,
		},
	}
}

// Load decodes path over the defaults, an empty path or missing file yields the defaults
// Values are not validated here, callers apply overrides first and then call Validate
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("config: %s not found, using defaults", path)
			return Default(), nil
		}
		return Default(), fmt.Errorf("decode %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		log.Printf("config: warning: unrecognised key '%s' in %s", key.String(), path)
	}
	return cfg, nil
}

// Encode writes c as TOML
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, name, v)
	}
	return nil
}

func unit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalid, name, v)
	}
	return nil
}

// Validate reports every out-of-range value, joined
func (c Config) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if c.Sampling.Text == "" {
		add(fmt.Errorf("%w: sampling.text is empty", ErrInvalid))
	}
	for _, r := range c.Sampling.Text {
		if !shape.Supported(r) {
			add(fmt.Errorf("%w: sampling.text glyph %q: %w", ErrInvalid, r, shape.ErrUnknownGlyph))
		}
	}
	add(nonNegative("sampling.count", float64(c.Sampling.Count)))
	add(positive("sampling.half_width", c.Sampling.HalfWidth))
	add(positive("sampling.spacing", c.Sampling.Spacing))
	add(nonNegative("sampling.thickness", float64(c.Sampling.Thickness)))
	add(nonNegative("sampling.max_attempts", float64(c.Sampling.MaxAttempts)))

	add(nonNegative("physics.swirl_radius", float64(c.Physics.SwirlRadius)))
	add(nonNegative("physics.effect_radius", float64(c.Physics.EffectRadius)))
	add(nonNegative("physics.repel", float64(c.Physics.Repel)))
	add(nonNegative("physics.attract", float64(c.Physics.Attract)))
	add(unit("physics.damping", float64(c.Physics.Damping)))

	add(unit("rotation.smoothing", float64(c.Rotation.Smoothing)))
	add(nonNegative("rotation.sensitivity", float64(c.Rotation.Sensitivity)))

	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		add(fmt.Errorf("%w: camera.fov must be within (0, 180), got %v", ErrInvalid, c.Camera.Fov))
	}
	add(positive("camera.near", float64(c.Camera.Near)))
	if c.Camera.Far <= c.Camera.Near {
		add(fmt.Errorf("%w: camera.far %v must exceed camera.near %v", ErrInvalid, c.Camera.Far, c.Camera.Near))
	}

	add(positive("display.fps", float64(c.Display.FPS)))
	add(nonNegative("display.point_weight", float64(c.Display.PointWeight)))
	add(nonNegative("display.brightness", float64(c.Display.Brightness)))
	add(positive("display.workers", float64(c.Display.Workers)))
	add(positive("display.drag_scale", float64(c.Display.DragScale)))

	add(unit("audio.volume", c.Audio.Volume))

	return errors.Join(errs...)
}

// Engine converts c into loop options
func (c Config) Engine() engine.Options {
	o := engine.DefaultOptions()
	o.Layout.Text = c.Sampling.Text
	o.Layout.HalfWidth = c.Sampling.HalfWidth
	o.Layout.Spacing = c.Sampling.Spacing
	o.Count = c.Sampling.Count
	o.Thickness = c.Sampling.Thickness
	o.MaxAttempts = c.Sampling.MaxAttempts
	o.Seed = c.Display.Seed

	o.Physics = physics.Params{
		SwirlRadius:  c.Physics.SwirlRadius,
		AngularSpeed: c.Physics.AngularSpeed,
		EffectRadius: c.Physics.EffectRadius,
		Repel:        c.Physics.Repel,
		Attract:      c.Physics.Attract,
		Damping:      c.Physics.Damping,
		Brightness:   c.Display.Brightness,
	}
	o.Workers = c.Display.Workers

	o.Smoothing = c.Rotation.Smoothing
	o.Sensitivity = c.Rotation.Sensitivity
	o.DragScale = c.Display.DragScale

	o.Fov = c.Camera.Fov
	o.Near = c.Camera.Near
	o.Far = c.Camera.Far
	o.CameraZ = c.Camera.Z

	o.FPS = c.Display.FPS
	return o
}

// Render converts c into renderer options
func (c Config) Render() render.Options {
	o := render.DefaultOptions()
	o.PointWeight = c.Display.PointWeight
	o.ShowHUD = c.Display.HUD
	o.FPS = c.Display.FPS
	return o
}

// AudioConfig converts c into hum settings
func (c Config) AudioConfig() audio.Config {
	o := audio.DefaultConfig()
	o.SampleRate = beep.SampleRate(48000)
	o.Volume = c.Audio.Volume
	o.Glide = 50 * time.Millisecond
	return o
}
