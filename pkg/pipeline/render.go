package pipeline

import (
	"fmt"

	"github.com/matzehuels/blobsmith/pkg/render/sink"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// RenderSlide renders slide i of s in one format. FormatSheet is not a
// per-slide format; use RenderSheet.
func RenderSlide(s *scene.Scene, i int, format string, opts Options) ([]byte, error) {
	title := s.SlideName(i)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, i, sink.WithTitle(title))
	case FormatPNG:
		return sink.RenderPNG(s, i, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(s, i, sink.WithPDFSVGOptions(sink.WithTitle(title)))
	case FormatJSON:
		return sink.RenderJSON(s, i)
	}
	return nil, fmt.Errorf("unsupported slide format: %s", format)
}

// RenderSheet renders the contact sheet for s.
func RenderSheet(s *scene.Scene) ([]byte, error) {
	return sink.RenderSheet(s)
}
