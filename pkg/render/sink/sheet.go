package sink

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/blobsmith/pkg/errors"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// SheetOption configures contact sheet rendering.
type SheetOption func(*sheetRenderer)

type sheetRenderer struct {
	columns    int
	thumbWidth int
	gap        int
	background color.Color
}

// WithColumns sets the number of thumbnails per row (default 3).
func WithColumns(n int) SheetOption { return func(r *sheetRenderer) { r.columns = n } }

// WithThumbWidth sets the thumbnail width in pixels (default 480).
func WithThumbWidth(px int) SheetOption { return func(r *sheetRenderer) { r.thumbWidth = px } }

// WithGap sets the spacing between and around thumbnails (default 16).
func WithGap(px int) SheetOption { return func(r *sheetRenderer) { r.gap = px } }

// RenderSheet renders every slide of the scene as a thumbnail grid PNG.
func RenderSheet(s *scene.Scene, opts ...SheetOption) ([]byte, error) {
	r := sheetRenderer{
		columns:    3,
		thumbWidth: 480,
		gap:        16,
		background: color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.columns < 1 || r.thumbWidth < 1 || r.gap < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid sheet geometry: columns=%d thumb=%d gap=%d", r.columns, r.thumbWidth, r.gap)
	}

	n := len(s.Slides)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no slides")
	}
	cols := min(r.columns, n)
	rows := (n + cols - 1) / cols
	thumbHeight := max(1, int(float64(r.thumbWidth)*s.Height/s.Width+0.5))

	// Rasterize at twice the thumbnail size and downsample for smoother edges.
	scale := 2 * float64(r.thumbWidth) / s.Width

	W := cols*r.thumbWidth + (cols+1)*r.gap
	H := rows*thumbHeight + (rows+1)*r.gap
	canvas := imaging.New(W, H, r.background)

	for i := range n {
		img, err := Rasterize(s, i, scale)
		if err != nil {
			return nil, err
		}
		thumb := imaging.Resize(img, r.thumbWidth, thumbHeight, imaging.Lanczos)
		x := r.gap + (i%cols)*(r.thumbWidth+r.gap)
		y := r.gap + (i/cols)*(thumbHeight+r.gap)
		canvas = imaging.Paste(canvas, thumb, image.Pt(x, y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode sheet")
	}
	return buf.Bytes(), nil
}
