package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker and plays a Hum through a mixer
type Player struct {
	mu          sync.Mutex
	hum         *Hum
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
	closed      bool
}

// NewPlayer creates a player for a hum built from cfg, call Start to open the device
func NewPlayer(cfg Config) *Player {
	hum := NewHum(cfg)
	return &Player{
		hum:   hum,
		ctrl:  &beep.Ctrl{Streamer: hum, Paused: false},
		mixer: &beep.Mixer{},
	}
}

// Start initializes the speaker and begins playback
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("audio player closed")
	}
	if p.initialized {
		return nil
	}

	sr := p.hum.cfg.SampleRate
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	p.mixer.Add(p.ctrl)
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Hum returns the underlying streamer
func (p *Player) Hum() *Hum {
	return p.hum
}

// SetEnergy forwards the cloud energy to the hum
func (p *Player) SetEnergy(e float64) {
	p.hum.SetEnergy(e)
}

// Close silences the hum and releases the speaker, safe to call more than once
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.hum.Close()

	if !p.initialized {
		return nil
	}

	speaker.Lock()
	p.ctrl.Paused = true
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	p.initialized = false
	return nil
}
