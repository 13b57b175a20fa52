package render

// Surface is anything with a size in cells, tcell.Screen satisfies it
type Surface interface {
	Size() (width, height int)
}

// FixedSurface is a headless surface of constant size
type FixedSurface struct {
	Width, Height int
}

// Size returns the fixed dimensions
func (s FixedSurface) Size() (int, int) {
	return s.Width, s.Height
}
