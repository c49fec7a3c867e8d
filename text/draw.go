package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Draw fills the glyphs of run onto dst with col. (x, y) is the baseline
// origin of the first glyph in visual order.
func Draw(dst draw.Image, run Run, face *Face, x, y float64, col color.Color) error {
	if len(run.Glyphs) == 0 || face == nil {
		return nil
	}
	if face.size < 1 {
		return ErrInvalidSize
	}

	b := dst.Bounds()
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	ras.DrawOp = draw.Over

	// Outline coordinates are +y down, matching image space.
	ox := float32(x) - float32(b.Min.X)
	oy := float32(y) - float32(b.Min.Y)

	var buf sfnt.Buffer
	painted := false
	for _, g := range run.Glyphs {
		segs, err := face.source.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(g.GID), face.ppem(), nil)
		if err != nil {
			return &FontError{Reason: "failed to load glyph", Err: err}
		}
		gx, gy := ox+float32(g.X), oy+float32(g.Y)
		open := false
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					ras.ClosePath()
				}
				ras.MoveTo(gx+fx(seg.Args[0].X), gy+fx(seg.Args[0].Y))
				open = true
			case sfnt.SegmentOpLineTo:
				ras.LineTo(gx+fx(seg.Args[0].X), gy+fx(seg.Args[0].Y))
			case sfnt.SegmentOpQuadTo:
				ras.QuadTo(
					gx+fx(seg.Args[0].X), gy+fx(seg.Args[0].Y),
					gx+fx(seg.Args[1].X), gy+fx(seg.Args[1].Y),
				)
			case sfnt.SegmentOpCubeTo:
				ras.CubeTo(
					gx+fx(seg.Args[0].X), gy+fx(seg.Args[0].Y),
					gx+fx(seg.Args[1].X), gy+fx(seg.Args[1].Y),
					gx+fx(seg.Args[2].X), gy+fx(seg.Args[2].Y),
				)
			}
		}
		if open {
			ras.ClosePath()
			painted = true
		}
	}

	if painted {
		ras.Draw(dst, b, image.NewUniform(col), image.Point{})
	}
	return nil
}

// DrawCentered draws run so that its advance box is centered horizontally
// on cx and its em box is centered vertically on cy, like a canvas with
// textAlign "center" and textBaseline "middle".
func DrawCentered(dst draw.Image, run Run, face *Face, cx, cy float64, col color.Color) error {
	m, err := face.Metrics()
	if err != nil {
		return err
	}
	x := cx - run.Advance()/2
	y := cy + m.MiddleOffset()
	return Draw(dst, run, face, x, y, col)
}

// Measure returns the advance width and line height of s.
func Measure(s string, face *Face) (width, height float64) {
	if s == "" || face == nil {
		return 0, 0
	}
	m, err := face.Metrics()
	if err != nil {
		return 0, 0
	}
	return face.Advance(s), m.Height
}

func fx(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
