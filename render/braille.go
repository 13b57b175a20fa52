package render

// Braille cells pack a 2×4 dot grid into one terminal cell
const (
	DotsX = 2
	DotsY = 4

	brailleBase rune = 0x2800
)

// brailleBits maps dot (x, y) within a cell to its Unicode braille bit
var brailleBits = [DotsY][DotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCell composes the cell at (cx, cy), returning the rune and its peak intensity
// Dots below threshold stay unlit, ok is false when the cell is empty
func brailleCell(c *Canvas, cx, cy int, threshold float32) (r rune, peak float32, ok bool) {
	x0, y0 := cx*DotsX, cy*DotsY
	var bits rune
	for dy := 0; dy < DotsY; dy++ {
		for dx := 0; dx < DotsX; dx++ {
			v := c.At(x0+dx, y0+dy)
			if v < threshold {
				continue
			}
			bits |= brailleBits[dy][dx]
			peak = max(peak, v)
		}
	}
	if bits == 0 {
		return ' ', 0, false
	}
	return brailleBase + bits, peak, true
}
