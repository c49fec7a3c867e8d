package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a FontSource at a specific pixel size.
// Face is a small value and safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource {
	return f.source
}

// Size returns the size of this face in pixels per em.
func (f *Face) Size() float64 {
	return f.size
}

func (f *Face) ppem() fixed.Int26_6 {
	return floatToFixed(f.size)
}

// Metrics returns the font metrics at this face's size.
func (f *Face) Metrics() (Metrics, error) {
	if f.size < 1 {
		return Metrics{}, ErrInvalidSize
	}
	var buf sfnt.Buffer
	m, err := f.source.sfnt.Metrics(&buf, f.ppem(), font.HintingNone)
	if err != nil {
		return Metrics{}, &FontError{Reason: "failed to read metrics", Err: err}
	}
	return Metrics{
		Ascent:    fixedToFloat(m.Ascent),
		Descent:   fixedToFloat(m.Descent),
		Height:    fixedToFloat(m.Height),
		CapHeight: fixedToFloat(m.CapHeight),
	}, nil
}

// Advance returns the shaped advance width of s in pixels.
func (f *Face) Advance(s string) float64 {
	return f.Shape(s).Advance()
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
