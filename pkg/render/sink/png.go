package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/errors"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// MaxPixels bounds either side of a rendered raster.
const MaxPixels = 16384

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background bool
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithTransparent leaves the background transparent.
func WithTransparent() PNGOption {
	return func(r *pngRenderer) { r.background = false }
}

// RenderPNG rasterizes slide i natively, without rsvg-convert.
func RenderPNG(s *scene.Scene, i int, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, background: true}
	for _, opt := range opts {
		opt(&r)
	}

	dc, err := rasterize(s, i, r.scale, r.background)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize draws slide i at the given scale and returns the image.
func Rasterize(s *scene.Scene, i int, scale float64) (image.Image, error) {
	dc, err := rasterize(s, i, scale, true)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func rasterize(s *scene.Scene, i int, scale float64, background bool) (*gg.Context, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", scale)
	}
	w, h := int(math.Ceil(s.Width*scale)), int(math.Ceil(s.Height*scale))
	if w > MaxPixels || h > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster %dx%d exceeds %d pixels per side", w, h, MaxPixels)
	}

	slide, err := s.Slide(i)
	if err != nil {
		return nil, err
	}
	shapes, err := slide.Shapes()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)

	if background {
		if err := fillBackground(dc, slide.Background, s.Width, s.Height); err != nil {
			return nil, err
		}
	}
	for _, sh := range shapes {
		if err := drawShape(dc, sh); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func fillBackground(dc *gg.Context, bg scene.Fill, width, height float64) error {
	dc.DrawRectangle(0, 0, width, height)
	if bg.Gradient != nil {
		from, err := scene.ParseColor(bg.Gradient.From, 1)
		if err != nil {
			return err
		}
		to, err := scene.ParseColor(bg.Gradient.To, 1)
		if err != nil {
			return err
		}
		x0, y0 := dc.TransformPoint(0, 0)
		x1, y1 := dc.TransformPoint(width, height)
		dc.SetFillStyle(linearGradient(x0, y0, x1, y1, from, to))
	} else {
		c, err := scene.ParseColor(bg.Color, 1)
		if err != nil {
			return err
		}
		dc.SetColor(c)
	}
	dc.Fill()
	return nil
}

// drawShape fills one blob. gg patterns are sampled in device space, so the
// gradient endpoints are the corners of the unrotated bounding box pushed
// through the current transform.
func drawShape(dc *gg.Context, sh scene.Shape) error {
	p := sh.Path

	dc.Push()
	defer dc.Pop()
	if p.Rotation != 0 {
		dc.RotateAbout(gg.Radians(p.Rotation), p.Center.X, p.Center.Y)
	}

	dc.NewSubPath()
	dc.MoveTo(p.Start.X, p.Start.Y)
	for _, seg := range p.Segments {
		dc.CubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.End.X, seg.End.Y)
	}
	dc.ClosePath()

	if sh.Gradient != nil {
		start, end := sh.Gradient.StopOpacities()
		from, err := scene.ParseColor(sh.Gradient.From, start)
		if err != nil {
			return err
		}
		to, err := scene.ParseColor(sh.Gradient.To, end)
		if err != nil {
			return err
		}
		box := unrotatedBounds(p)
		x0, y0 := dc.TransformPoint(box.Min.X, box.Min.Y)
		x1, y1 := dc.TransformPoint(box.Max.X, box.Max.Y)
		dc.SetFillStyle(linearGradient(x0, y0, x1, y1, from, to))
	} else {
		c, err := scene.ParseColor(sh.Color, sh.Opacity)
		if err != nil {
			return err
		}
		dc.SetColor(c)
	}
	dc.Fill()
	return nil
}

func linearGradient(x0, y0, x1, y1 float64, from, to color.Color) gg.Gradient {
	g := gg.NewLinearGradient(x0, y0, x1, y1)
	g.AddColorStop(0, from)
	g.AddColorStop(1, to)
	return g
}

func unrotatedBounds(p blob.Path) blob.Rect {
	p.Rotation = 0
	return p.Bounds()
}
