// Package text draws single-line icon labels.
//
// The pipeline mirrors a browser canvas fillText call:
//
//   - FontSource: a parsed TrueType/OpenType font, shared and read-only
//   - Face: a FontSource at a pixel size
//   - Shape: HarfBuzz shaping through go-text/typesetting, producing glyph
//     ids and advances in visual order
//   - Draw: glyph outlines from golang.org/x/image/font/sfnt filled with
//     golang.org/x/image/vector
//
// # Example usage
//
//	src, err := text.DefaultSource() // embedded Go Bold
//	if err != nil {
//	    return err
//	}
//	face := src.Face(24)
//	run := face.Shape("EX")
//	text.DrawCentered(img, run, face, 24, 24, color.White)
package text
