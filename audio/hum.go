// Package audio sonifies the particle cloud as a hum whose loudness follows kinetic energy
package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

// Config tunes the hum
type Config struct {
	SampleRate  beep.SampleRate
	Volume      float64 // Peak gain at saturating energy
	BaseFreq    float64 // Pitch at rest, Hz
	PitchSpan   float64 // Extra Hz at full gain
	EnergyScale float64 // Energy giving ~63% of Volume
	Glide       time.Duration
}

// DefaultConfig returns a quiet low hum
func DefaultConfig() Config {
	return Config{
		SampleRate:  beep.SampleRate(48000),
		Volume:      0.3,
		BaseFreq:    55,
		PitchSpan:   55,
		EnergyScale: 0.05,
		Glide:       50 * time.Millisecond,
	}
}

// Hum is a beep.Streamer producing a sine drone, gain is set atomically from any goroutine
type Hum struct {
	cfg    Config
	target atomic.Uint64 // float64 bits of the target gain
	closed atomic.Bool

	// Stream-goroutine exclusive
	level float64
	phase float64
	glide float64 // One-pole coefficient per sample
}

// NewHum creates a silent hum
func NewHum(cfg Config) *Hum {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.EnergyScale <= 0 {
		cfg.EnergyScale = DefaultConfig().EnergyScale
	}
	h := &Hum{cfg: cfg, glide: 1}
	if n := cfg.SampleRate.N(cfg.Glide); n > 0 {
		h.glide = 1 - math.Exp(-1/float64(n))
	}
	return h
}

// Gain maps kinetic energy to the target gain, saturating toward Volume
func (h *Hum) Gain(e float64) float64 {
	if math.IsNaN(e) || e <= 0 {
		return 0
	}
	return h.cfg.Volume * (1 - math.Exp(-e/h.cfg.EnergyScale))
}

// SetEnergy sets the target gain from the cloud's kinetic energy
func (h *Hum) SetEnergy(e float64) {
	h.target.Store(math.Float64bits(h.Gain(e)))
}

// Target returns the current target gain
func (h *Hum) Target() float64 {
	return math.Float64frombits(h.target.Load())
}

// Stream fills samples with the drone, draining once the hum is closed
func (h *Hum) Stream(samples [][2]float64) (n int, ok bool) {
	if h.closed.Load() {
		return 0, false
	}
	target := h.Target()
	sr := float64(h.cfg.SampleRate)

	for i := range samples {
		h.level += (target - h.level) * h.glide

		norm := 0.0
		if h.cfg.Volume > 0 {
			norm = h.level / h.cfg.Volume
		}
		freq := h.cfg.BaseFreq + h.cfg.PitchSpan*norm

		// Fundamental plus a soft octave
		v := h.level * (0.8*math.Sin(2*math.Pi*h.phase) + 0.2*math.Sin(4*math.Pi*h.phase))
		samples[i][0] = v
		samples[i][1] = v

		h.phase += freq / sr
		if h.phase >= 1 {
			h.phase -= math.Floor(h.phase)
		}
	}
	return len(samples), true
}

// Err satisfies beep.Streamer
func (h *Hum) Err() error {
	return nil
}

// Close ends the stream, the mixer drops it on the next pull
func (h *Hum) Close() error {
	h.closed.Store(true)
	return nil
}
