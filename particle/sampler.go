package particle

import (
	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
)

// Classifier is the inside test the sampler accepts points against
type Classifier interface {
	Distance(x, y float64) float64
}

// SamplerConfig bounds one sampling run
type SamplerConfig struct {
	Count       int      // Target particle count
	Bounds      sdf.Box2 // Rectangle x/y are drawn from
	Thickness   float32  // Full z extent, centred on 0
	MaxAttempts int      // Hard cap on draws
}

// Stats reports a sampling run
type Stats struct {
	Attempts  int
	Accepted  int
	Exhausted bool // Budget ran out before Count was reached
}

// Ratio returns accepted/attempts
func (s Stats) Ratio() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Attempts)
}

// Sample rejection-samples up to cfg.Count points inside the classifier
// Running out of attempts is not an error, the returned set is just smaller
func Sample(field Classifier, cfg SamplerConfig, rng *Rand) (*Set, Stats) {
	want := max(cfg.Count, 0)
	// Never more slots than attempts can fill
	n := min(want, max(cfg.MaxAttempts, 0))
	set := NewSet(n)

	minX, maxX := float32(cfg.Bounds.Min.X), float32(cfg.Bounds.Max.X)
	minY, maxY := float32(cfg.Bounds.Min.Y), float32(cfg.Bounds.Max.Y)
	halfZ := cfg.Thickness / 2

	var st Stats
	for st.Accepted < n && st.Attempts < cfg.MaxAttempts {
		st.Attempts++

		x := rng.Range(minX, maxX)
		y := rng.Range(minY, maxY)
		z := rng.Range(-halfZ, halfZ)

		// Classify the float32 values that get stored, not their float64 origin
		if field.Distance(float64(x), float64(y)) > 0 {
			continue
		}

		i := st.Accepted
		j := 3 * i
		set.Position[j], set.Position[j+1], set.Position[j+2] = x, y, z
		set.Reference[j], set.Reference[j+1], set.Reference[j+2] = x, y, z
		set.Color[j], set.Color[j+1], set.Color[j+2] = 1, 1, 1

		phase := rng.Float32() * 2 * math32.Pi
		if phase >= 2*math32.Pi {
			phase = 0
		}
		set.Phase[i] = phase
		st.Accepted++
	}

	st.Exhausted = st.Accepted < want
	set.truncate(st.Accepted)
	return set, st
}
