package render

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
)

// Stats is the per-frame readout shown on the HUD line
type Stats struct {
	FPS       float64
	Particles int
	Energy    float64 // Raw kinetic energy, smoothed for display
	RotX      float32
	RotY      float32
	Pointer   bool
	Dragging  bool
}

// HUD formats the status line, easing the energy readout with a critically damped spring
type HUD struct {
	spring    harmonica.Spring
	energy    float64
	energyVel float64
	last      Stats
}

// NewHUD creates a HUD whose spring is tuned for the given frame rate
func NewHUD(fps int) *HUD {
	if fps <= 0 {
		fps = 60
	}
	return &HUD{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Update records a frame's stats and advances the energy spring
func (h *HUD) Update(s Stats) {
	h.energy, h.energyVel = h.spring.Update(h.energy, h.energyVel, s.Energy)
	h.last = s
}

// Energy returns the smoothed energy
func (h *HUD) Energy() float64 {
	return h.energy
}

// Line renders the status text
func (h *HUD) Line() string {
	s := h.last
	ptr := "-"
	if s.Pointer {
		ptr = "on"
	}
	if s.Dragging {
		ptr += " drag"
	}
	return fmt.Sprintf(" %5.1f fps | %d particles | energy %.2e | rot %+.2f %+.2f | pointer %s ",
		s.FPS, s.Particles, max(h.energy, 0), s.RotX, s.RotY, ptr)
}
