package render

// Canvas is an additive intensity buffer at backing (dot) resolution
type Canvas struct {
	dots   []float32 // Optimization: Persistent buffer reused across frames and resizes
	width  int
	height int
}

// NewCanvas creates a canvas with the specified dot dimensions
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize adjusts dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.dots) < size {
		c.dots = make([]float32, size)
	} else {
		c.dots = c.dots[:size]
	}
	c.width = width
	c.height = height
	c.Clear()
}

// Clear zeroes all dots using exponential copy
func (c *Canvas) Clear() {
	if len(c.dots) == 0 {
		return
	}
	c.dots[0] = 0
	for filled := 1; filled < len(c.dots); filled *= 2 {
		copy(c.dots[filled:], c.dots[:filled])
	}
}

// Release drops the backing buffer
func (c *Canvas) Release() {
	c.dots = nil
	c.width, c.height = 0, 0
}

// Width returns the dot width
func (c *Canvas) Width() int { return c.width }

// Height returns the dot height
func (c *Canvas) Height() int { return c.height }

// Add accumulates v at (x, y), out of bounds writes are dropped
func (c *Canvas) Add(x, y int, v float32) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.dots[y*c.width+x] += v
}

// At returns the intensity at (x, y), zero out of bounds
func (c *Canvas) At(x, y int) float32 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.dots[y*c.width+x]
}
