package extforge

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// LinearGradient is a linear color transition between two points.
// Beyond either end the edge colors are padded.
//
// Example:
//
//	g := extforge.NewLinearGradient(0.5, 0.5, 47.5, 47.5).
//	    AddColorStop(0, extforge.Hex("#4F46E5")).
//	    AddColorStop(1, extforge.Hex("#9333EA"))
//	pm.Fill(g)
type LinearGradient struct {
	Start         Point         // Start point of the gradient
	End           Point         // End point of the gradient
	Stops         []ColorStop   // Color stops, ordered by offset
	Interpolation Interpolation // Color space for blending between stops
}

// NewLinearGradient creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start: Point{X: x0, Y: y0},
		End:   Point{X: x1, Y: y1},
	}
}

// AddColorStop adds a color stop at the specified offset, keeping Stops
// ordered. A stop at an existing offset goes after the ones already there.
// Returns the gradient for method chaining.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) *LinearGradient {
	g.Stops = sortStops(append(g.Stops, ColorStop{Offset: offset, Color: c}))
	return g
}

// SetInterpolation sets the blending color space.
// Returns the gradient for method chaining.
func (g *LinearGradient) SetInterpolation(mode Interpolation) *LinearGradient {
	g.Interpolation = mode
	return g
}

// ColorAt returns the color at the given point.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	lengthSq := dx*dx + dy*dy

	if lengthSq == 0 {
		if len(g.Stops) == 0 {
			return Transparent
		}
		return g.Stops[0].Color
	}

	// t = dot(P - Start, End - Start) / |End - Start|^2
	px := x - g.Start.X
	py := y - g.Start.Y
	t := (px*dx + py*dy) / lengthSq

	return colorAtOffset(g.Stops, t, g.Interpolation)
}
