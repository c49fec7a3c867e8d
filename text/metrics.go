package text

// Metrics holds font metrics at a specific size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// Height is the recommended distance between consecutive baselines.
	Height float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// MiddleOffset returns the distance from a "middle" line down to the
// baseline: half the em box height, shifted so the box straddles the line.
func (m Metrics) MiddleOffset() float64 {
	return (m.Ascent - m.Descent) / 2
}
