package config

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/letterswarm/engine"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "letterswarm.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestDefaultValues(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"count", float64(c.Sampling.Count), 15000},
		{"half width", c.Sampling.HalfWidth, 0.045},
		{"spacing", c.Sampling.Spacing, 0.55},
		{"thickness", float64(c.Sampling.Thickness), float64(float32(0.2))},
		{"max attempts", float64(c.Sampling.MaxAttempts), 1_500_000},
		{"swirl", float64(c.Physics.SwirlRadius), float64(float32(0.01))},
		{"angular speed", float64(c.Physics.AngularSpeed), 1},
		{"effect radius", float64(c.Physics.EffectRadius), float64(float32(0.3))},
		{"repel", float64(c.Physics.Repel), float64(float32(0.05))},
		{"attract", float64(c.Physics.Attract), float64(float32(0.05))},
		{"damping", float64(c.Physics.Damping), float64(float32(0.95))},
		{"smoothing", float64(c.Rotation.Smoothing), float64(float32(0.1))},
		{"sensitivity", float64(c.Rotation.Sensitivity), float64(float32(0.005))},
		{"fov", float64(c.Camera.Fov), 75},
		{"fps", float64(c.Display.FPS), 60},
		{"brightness", float64(c.Display.Brightness), 4},
		{"workers", float64(c.Display.Workers), 1},
		{"seed", float64(c.Display.Seed), 0},
		{"volume", c.Audio.Volume, 0.3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
	if c.Audio.Enabled {
		t.Error("Expected audio off by default")
	}
	if c.Sampling.Text != "NASA" {
		t.Errorf("Expected text NASA, got %q", c.Sampling.Text)
	}
}

func TestLoadEmptyPathAndMissingFile(t *testing.T) {
	captureLog(t)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if c != Default() {
		t.Error("Expected defaults for empty path")
	}

	c, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load(missing) failed: %v", err)
	}
	if c != Default() {
		t.Error("Expected defaults for missing file")
	}
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	captureLog(t)
	path := writeFile(t, `
[sampling]
count = 500

[physics]
repel = 0.1

[display]
seed = 42
workers = 4

[audio]
enabled = true
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Sampling.Count != 500 || c.Physics.Repel != 0.1 || c.Display.Seed != 42 || c.Display.Workers != 4 {
		t.Errorf("Overrides not applied: %+v", c)
	}
	if !c.Audio.Enabled {
		t.Error("Expected audio enabled")
	}
	if c.Physics.Damping != Default().Physics.Damping {
		t.Errorf("Expected untouched damping default, got %v", c.Physics.Damping)
	}
}

func TestLoadWarnsUnknownKeys(t *testing.T) {
	buf := captureLog(t)
	path := writeFile(t, `
[physics]
repel = 0.05
gravity = 9.8

[extras]
colour = "red"
`)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	out := buf.String()
	for _, key := range []string{"physics.gravity", "extras.colour"} {
		if !strings.Contains(out, key) {
			t.Errorf("Expected warning for %s, log: %q", key, out)
		}
	}
	if strings.Contains(out, "physics.repel") {
		t.Errorf("Known key reported as unrecognised: %q", out)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	captureLog(t)
	path := writeFile(t, "[physics\nrepel = ")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected decode error")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	captureLog(t)
	path := writeFile(t, `
[physics]
damping = 1.5

[display]
fps = 0
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load must defer validation, got %v", err)
	}
	if c.Display.FPS != 0 {
		t.Errorf("Expected file fps 0 kept for the caller, got %d", c.Display.FPS)
	}

	err = c.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
	for _, key := range []string{"physics.damping", "display.fps"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Expected %s in joined error: %v", key, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty text", func(c *Config) { c.Sampling.Text = "" }, "sampling.text"},
		{"unknown glyph", func(c *Config) { c.Sampling.Text = "NAZA" }, "sampling.text"},
		{"negative count", func(c *Config) { c.Sampling.Count = -1 }, "sampling.count"},
		{"zero half width", func(c *Config) { c.Sampling.HalfWidth = 0 }, "sampling.half_width"},
		{"negative repel", func(c *Config) { c.Physics.Repel = -0.1 }, "physics.repel"},
		{"smoothing above one", func(c *Config) { c.Rotation.Smoothing = 2 }, "rotation.smoothing"},
		{"flat fov", func(c *Config) { c.Camera.Fov = 180 }, "camera.fov"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }, "camera.far"},
		{"zero workers", func(c *Config) { c.Display.Workers = 0 }, "display.workers"},
		{"zero drag scale", func(c *Config) { c.Display.DragScale = 0 }, "display.drag_scale"},
		{"loud volume", func(c *Config) { c.Audio.Volume = 1.5 }, "audio.volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected %s in error, got %v", tt.field, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c := Default()
	c.Display.Seed = 7
	c.Audio.Enabled = true

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	for _, section := range []string{"[sampling]", "[physics]", "[rotation]", "[camera]", "[display]", "[audio]"} {
		if !strings.Contains(out, section) {
			t.Errorf("Expected section %s in output", section)
		}
	}

	var back Config
	if _, err := toml.Decode(out, &back); err != nil {
		t.Fatalf("Decode of encoded config failed: %v", err)
	}
	if back != c {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", back, c)
	}
}

func TestConversions(t *testing.T) {
	c := Default()
	c.Sampling.Count = 321
	c.Display.Seed = 9
	c.Display.Workers = 3
	c.Display.Brightness = 2
	c.Display.HUD = false
	c.Audio.Volume = 0.5

	eo := c.Engine()
	def := engine.DefaultOptions()
	if eo.Count != 321 || eo.Seed != 9 || eo.Workers != 3 {
		t.Errorf("Engine options not carried: %+v", eo)
	}
	if eo.Physics.Brightness != 2 {
		t.Errorf("Expected brightness 2, got %v", eo.Physics.Brightness)
	}
	if eo.Layout.Bounds != def.Layout.Bounds || eo.Layout.StartX != def.Layout.StartX {
		t.Error("Expected layout placement kept from defaults")
	}
	if eo.QueueSize != def.QueueSize {
		t.Errorf("Expected queue size %d, got %d", def.QueueSize, eo.QueueSize)
	}

	ro := c.Render()
	if ro.ShowHUD {
		t.Error("Expected HUD disabled")
	}
	if ro.FPS != c.Display.FPS || ro.PointWeight != c.Display.PointWeight {
		t.Errorf("Render options not carried: %+v", ro)
	}

	if ac := c.AudioConfig(); ac.Volume != 0.5 {
		t.Errorf("Expected volume 0.5, got %v", ac.Volume)
	}
}
