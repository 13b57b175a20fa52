package particle

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

// pcgStream selects the PCG sequence, any odd constant works
const pcgStream = 0xda3e39cb94b95bdb

// Rand is a seedable PCG32 source, not safe for concurrent use
type Rand struct {
	r *pcg.PCG32
}

// NewRand returns a generator for seed, seed 0 draws one from the wall clock
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := &Rand{r: pcg.NewPCG32()}
	r.r.Seed(seed, pcgStream)
	return r
}

// Float32 returns a uniform value in [0, 1)
func (r *Rand) Float32() float32 {
	// 24 bits fill the float32 mantissa exactly
	return float32(r.r.Random()>>8) / (1 << 24)
}

// Range returns a uniform value in [lo, hi)
func (r *Rand) Range(lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}
