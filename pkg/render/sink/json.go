package sink

import (
	"encoding/json"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// GradientStyle labels gradient layers in the JSON export.
const GradientStyle = "gradient"

type jsonOutput struct {
	Slide      int        `json:"slide"`
	Name       string     `json:"name"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background scene.Fill `json:"background"`
	Blobs      []BlobInfo `json:"blobs"`
}

// BlobInfo is the JSON description of one generated blob.
type BlobInfo struct {
	Style     string        `json:"style"`
	Seed      int64         `json:"seed"`
	Points    int           `json:"points"`
	D         string        `json:"d"`
	Transform string        `json:"transform,omitempty"`
	Center    [2]float64    `json:"center"`
	Rotation  float64       `json:"rotation,omitempty"`
	Vertices  [][2]float64  `json:"vertices"`
	Bounds    [4]float64    `json:"bounds"`
	Fill      string        `json:"fill,omitempty"`
	Opacity   float64       `json:"opacity"`
	Gradient  *GradientInfo `json:"gradient,omitempty"`
}

// GradientInfo describes a gradient fill.
type GradientInfo struct {
	ID          string  `json:"id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	FromOpacity float64 `json:"from_opacity"`
	ToOpacity   float64 `json:"to_opacity"`
}

// RenderJSON exports the generated geometry of slide i: for each layer the
// resolved style, seed, path data, vertices and transform.
func RenderJSON(s *scene.Scene, i int) ([]byte, error) {
	slide, err := s.Slide(i)
	if err != nil {
		return nil, err
	}
	shapes, err := slide.Shapes()
	if err != nil {
		return nil, err
	}

	out := jsonOutput{
		Slide:      i,
		Name:       s.SlideName(i),
		Width:      s.Width,
		Height:     s.Height,
		Background: slide.Background,
		Blobs:      make([]BlobInfo, len(shapes)),
	}
	for j, sh := range shapes {
		l := slide.Blobs[j]
		out.Blobs[j] = Describe(blob.Style(l.Style), l.Seed, sh)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Describe summarizes a generated shape. The style is reported after
// fallback resolution, or as "gradient" for gradient shapes.
func Describe(style blob.Style, seed int64, sh scene.Shape) BlobInfo {
	p := sh.Path
	b := p.Bounds()
	js := BlobInfo{
		Style:     string(blob.ResolveStyle(style)),
		Seed:      seed,
		Points:    len(p.Segments),
		D:         p.D(),
		Transform: p.Transform(),
		Center:    [2]float64{p.Center.X, p.Center.Y},
		Rotation:  p.Rotation,
		Vertices:  pairs(p.Vertices()),
		Bounds:    [4]float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y},
		Fill:      sh.Color,
		Opacity:   sh.Opacity,
	}
	if g := sh.Gradient; g != nil {
		from, to := g.StopOpacities()
		js.Style = GradientStyle
		js.Opacity = g.Opacity
		js.Gradient = &GradientInfo{ID: g.ID, From: g.From, To: g.To, FromOpacity: from, ToOpacity: to}
	}
	return js
}

func pairs(pts []blob.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
