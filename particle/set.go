// Package particle holds the particle arena and the rejection sampler that fills it.
package particle

// Set is a structure-of-arrays particle arena
// Vector buffers are interleaved xyz, index i lives at [3i, 3i+3)
// Reference is written once by the sampler and treated as read-only afterwards
type Set struct {
	Position  []float32
	Reference []float32
	Velocity  []float32
	Color     []float32
	Phase     []float32
	count     int
}

// NewSet allocates an arena for n particles
func NewSet(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{
		Position:  make([]float32, 3*n),
		Reference: make([]float32, 3*n),
		Velocity:  make([]float32, 3*n),
		Color:     make([]float32, 3*n),
		Phase:     make([]float32, n),
		count:     n,
	}
}

// Len returns the fixed particle count
func (s *Set) Len() int {
	return s.count
}

// At returns the current position of particle i
func (s *Set) At(i int) (x, y, z float32) {
	j := 3 * i
	return s.Position[j], s.Position[j+1], s.Position[j+2]
}

// RefAt returns the rest position of particle i
func (s *Set) RefAt(i int) (x, y, z float32) {
	j := 3 * i
	return s.Reference[j], s.Reference[j+1], s.Reference[j+2]
}

// VelAt returns the velocity of particle i
func (s *Set) VelAt(i int) (x, y, z float32) {
	j := 3 * i
	return s.Velocity[j], s.Velocity[j+1], s.Velocity[j+2]
}

// ColorAt returns the color of particle i
func (s *Set) ColorAt(i int) (r, g, b float32) {
	j := 3 * i
	return s.Color[j], s.Color[j+1], s.Color[j+2]
}

// truncate shrinks the arena to n particles
func (s *Set) truncate(n int) {
	if n >= s.count {
		return
	}
	// Copy so the oversized backing arrays can be collected
	s.Position = shrink(s.Position, 3*n)
	s.Reference = shrink(s.Reference, 3*n)
	s.Velocity = shrink(s.Velocity, 3*n)
	s.Color = shrink(s.Color, 3*n)
	s.Phase = shrink(s.Phase, n)
	s.count = n
}

func shrink(buf []float32, n int) []float32 {
	out := make([]float32, n)
	copy(out, buf)
	return out
}
