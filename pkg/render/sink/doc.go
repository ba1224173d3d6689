// Package sink renders scene slides into output formats.
//
// # Overview
//
// A "sink" turns one slide of a [scene.Scene] into bytes. This package
// provides:
//
//   - SVG: standalone vector slides ([RenderSVG])
//   - PNG: native raster output via fogleman/gg ([RenderPNG])
//   - PDF: print output (requires rsvg-convert) ([RenderPDF])
//   - JSON: generated geometry for external tools ([RenderJSON])
//   - Sheet: a thumbnail grid of every slide ([RenderSheet])
//
// # SVG Output
//
// [RenderSVG] writes a background rect, a <defs> block for any gradients,
// and one <path> per layer in drawing order. Rotation stays a transform
// attribute, so the path data matches what [blob.Path.D] returns:
//
//	svg, err := sink.RenderSVG(s, 0, sink.WithTitle("Intro"))
//
// [BlobElement] and [GradientElement] render single blobs for callers that
// assemble their own documents, and [Document] wraps them in an <svg> root.
//
// # PNG and Sheet Output
//
// [RenderPNG] draws the same shapes with cubic Bezier fills. Linear gradients
// are approximated in device space from the blob's unrotated bounding box.
//
//	png, err := sink.RenderPNG(s, 0, sink.WithScale(2))
//
// [RenderSheet] rasterizes each slide, downsamples it with
// disintegration/imaging and pastes it into a grid:
//
//	sheet, err := sink.RenderSheet(s, sink.WithColumns(4))
//
// [scene.Scene]: github.com/matzehuels/blobsmith/pkg/scene.Scene
// [blob.Path.D]: github.com/matzehuels/blobsmith/pkg/blob.Path.D
package sink
