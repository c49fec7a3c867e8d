package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// ShapedGlyph is a glyph positioned by the shaper.
// X and Y are relative to the start of the run, in pixels.
type ShapedGlyph struct {
	GID      uint16
	Cluster  int // index of the first rune the glyph was shaped from
	X, Y     float64
	XAdvance float64
}

// Run is the shaped form of a single line of text, in visual order.
type Run struct {
	Glyphs    []ShapedGlyph
	Direction Direction
}

// Advance returns the total horizontal advance of the run.
func (r Run) Advance() float64 {
	total := 0.0
	for _, g := range r.Glyphs {
		total += g.XAdvance
	}
	return total
}

// shaperPool pools HarfbuzzShaper instances. A HarfbuzzShaper holds a
// mutable buffer and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Shape converts s into positioned glyphs with HarfBuzz shaping, applying
// kerning and ligatures. The direction is detected from s.
func (f *Face) Shape(s string) Run {
	dir := DetectDirection(s)
	run := Run{Direction: dir}
	if s == "" || f.size <= 0 {
		return run
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		// font.Face is not safe for concurrent use; it is cheap to wrap the
		// shared *font.Font per call.
		Face:     font.NewFace(f.source.shaper),
		Size:     floatToFixed(f.size),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	run.Glyphs = convertGlyphs(output.Glyphs)
	return run
}

func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	x := 0.0
	for i, g := range glyphs {
		adv := fixedToFloat(g.Advance)
		result[i] = ShapedGlyph{
			GID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
			Cluster:  g.TextIndex(),
			X:        x + fixedToFloat(g.XOffset),
			Y:        -fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}
