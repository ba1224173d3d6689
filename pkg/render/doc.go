// Package render provides format conversion shared by the slide sinks.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, _ := sink.RenderSVG(s, 0)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// The native sinks in [sink] do not need rsvg-convert except for PDF.
// When the tool is missing the conversion functions return an error with
// code UNSUPPORTED so callers can skip the format instead of failing.
//
// [sink]: github.com/matzehuels/blobsmith/pkg/render/sink
package render
