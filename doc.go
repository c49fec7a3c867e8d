// Package extforge renders the icon assets of a generated browser extension.
//
// # Overview
//
// A generated extension bundle describes its images in a small textual
// language instead of shipping binary data:
//
//	PNG icon, 48x48, style gradient, background #4F46E5 #9333EA, foreground #FFFFFF, text "EX" centered.
//
// Package iconspec parses and edits such descriptions. This package
// rasterizes the parsed form to PNG, deterministically: the same
// description always yields the same bytes.
//
// # Quick Start
//
//	import "github.com/gogpu/extforge"
//
//	png, err := extforge.New().RenderDescription(`PNG icon, 16x16, background #3C78DC, text "E"`)
//	if errors.Is(err, extforge.ErrRenderUnavailable) {
//	    // skip this asset, keep going
//	}
//
// # Rendering model
//
// The raster matches what a browser canvas would draw:
//   - one background color is a flat fill, several are a linear gradient
//     from the top-left to the bottom-right corner with evenly spaced stops
//   - gradients blend in sRGB unless WithLinearBlending is given
//   - the label is centered, bold, floor(width/2) pixels tall, in the
//     foreground color; it is shaped with HarfBuzz and never wrapped
//   - colors are hex tokens or SVG color keywords; anything else is black
//
// # Related packages
//
//   - iconspec: description parsing, formatting and structural edits
//   - text: label shaping and drawing
//   - preview: HTML preview composition for generated files
//   - bundle, export: the generated file set and its packaging
//   - server: a local sandboxed preview server with live reload
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Colors
// are sampled at pixel centres.
package extforge

// Version is the current version of the module.
const Version = "0.1.0"
