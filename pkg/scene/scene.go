package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/errors"
)

const (
	// DefaultWidth and DefaultHeight give a 16:9 canvas.
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0

	// DefaultOpacity applies to layers that do not set one.
	DefaultOpacity = 0.3

	// DefaultBackground is used for slides without a background.
	DefaultBackground = "#FFFFFF"
)

// Scene is a deck of slides sharing one canvas size.
type Scene struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	Slides []Slide `toml:"slides" json:"slides"`
}

// Slide is one page: a background and blob layers drawn in order.
type Slide struct {
	Name       string  `toml:"name" json:"name,omitempty"`
	Background Fill    `toml:"background" json:"background"`
	Blobs      []Layer `toml:"blobs" json:"blobs,omitempty"`
}

// Fill is a solid color or a two-color 135° gradient.
type Fill struct {
	Color    string        `toml:"color" json:"color,omitempty"`
	Gradient *GradientFill `toml:"gradient" json:"gradient,omitempty"`
}

// GradientFill runs from the top-left corner to the bottom-right.
type GradientFill struct {
	From string `toml:"from" json:"from"`
	To   string `toml:"to" json:"to"`
}

// Layer places one blob on a slide.
type Layer struct {
	CX       float64        `toml:"cx" json:"cx"`
	CY       float64        `toml:"cy" json:"cy"`
	RX       float64        `toml:"rx" json:"rx"`
	RY       float64        `toml:"ry" json:"ry"`
	Rotation float64        `toml:"rotation" json:"rotation,omitempty"`
	Seed     int64          `toml:"seed" json:"seed"`
	Style    string         `toml:"style" json:"style,omitempty"`
	Points   int            `toml:"points" json:"points,omitempty"`
	Color    string         `toml:"color" json:"color,omitempty"`
	Opacity  *float64       `toml:"opacity" json:"opacity,omitempty"`
	Gradient *LayerGradient `toml:"gradient" json:"gradient,omitempty"`
}

// LayerGradient switches a layer to the gradient blob variant.
type LayerGradient struct {
	From string `toml:"from" json:"from"`
	To   string `toml:"to" json:"to"`
	ID   string `toml:"id" json:"id,omitempty"`
}

// Shape is a generated layer ready for a sink.
type Shape struct {
	Path     blob.Path
	Color    string         // solid fill, empty for gradient shapes
	Opacity  float64        // solid fill opacity
	Gradient *blob.Gradient // non-nil for gradient shapes
}

// EffectiveOpacity returns the layer opacity or DefaultOpacity.
func (l Layer) EffectiveOpacity() float64 {
	if l.Opacity == nil {
		return DefaultOpacity
	}
	return *l.Opacity
}

// Shape generates the layer's outline.
func (l Layer) Shape() (Shape, error) {
	center := blob.Point{X: l.CX, Y: l.CY}
	opacity := l.EffectiveOpacity()

	if l.Gradient != nil {
		gb, err := blob.GenerateGradient(blob.GradientSpec{
			Center:   center,
			RX:       l.RX,
			RY:       l.RY,
			Rotation: l.Rotation,
			Seed:     l.Seed,
			From:     l.Gradient.From,
			To:       l.Gradient.To,
			Opacity:  opacity,
			ID:       l.Gradient.ID,
		})
		if err != nil {
			return Shape{}, err
		}
		return Shape{Path: gb.Path, Gradient: &gb.Gradient}, nil
	}

	p, err := blob.Generate(blob.Spec{
		Center:   center,
		RX:       l.RX,
		RY:       l.RY,
		Style:    blob.Style(l.Style),
		Rotation: l.Rotation,
		Seed:     l.Seed,
		Points:   l.Points,
	})
	if err != nil {
		return Shape{}, err
	}
	return Shape{Path: p, Color: l.Color, Opacity: opacity}, nil
}

// Shapes generates every layer of the slide in drawing order.
func (s Slide) Shapes() ([]Shape, error) {
	shapes := make([]Shape, 0, len(s.Blobs))
	for i, l := range s.Blobs {
		sh, err := l.Shape()
		if err != nil {
			return nil, fmt.Errorf("blob %d: %w", i, err)
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

// Slide returns the slide at index i.
func (s *Scene) Slide(i int) (Slide, error) {
	if i < 0 || i >= len(s.Slides) {
		return Slide{}, errors.New(errors.ErrCodeSlideNotFound, "slide %d out of range (scene has %d)", i, len(s.Slides))
	}
	return s.Slides[i], nil
}

// SlideName returns a file-friendly label for slide i.
func (s *Scene) SlideName(i int) string {
	if i >= 0 && i < len(s.Slides) && s.Slides[i].Name != "" {
		return s.Slides[i].Name
	}
	return fmt.Sprintf("slide%d", i+1)
}

// ApplyDefaults fills in the canvas size, backgrounds and layer opacities.
func (s *Scene) ApplyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	for i := range s.Slides {
		bg := &s.Slides[i].Background
		if bg.Color == "" && bg.Gradient == nil {
			bg.Color = DefaultBackground
		}
		for j := range s.Slides[i].Blobs {
			l := &s.Slides[i].Blobs[j]
			if l.Opacity == nil {
				o := DefaultOpacity
				l.Opacity = &o
			}
		}
	}
}

// Validate checks the scene and generates every layer once. Colors are
// rewritten in place to the form NormalizeColor returns.
func (s *Scene) Validate() error {
	if len(s.Slides) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no slides")
	}
	if !finite(s.Width) || !finite(s.Height) || s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "canvas size must be positive, got %gx%g", s.Width, s.Height)
	}

	for i := range s.Slides {
		if err := validateSlide(&s.Slides[i]); err != nil {
			return fmt.Errorf("slide %d (%s): %w", i, s.SlideName(i), err)
		}
	}
	return nil
}

func validateSlide(sl *Slide) error {
	if err := errors.ValidateSlideName(sl.Name); err != nil {
		return err
	}
	if err := validateFill(&sl.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}

	for j := range sl.Blobs {
		if err := validateLayer(&sl.Blobs[j]); err != nil {
			return fmt.Errorf("blob %d: %w", j, err)
		}
	}
	_, err := sl.Shapes()
	return err
}

func validateFill(f *Fill) error {
	if f.Gradient != nil {
		return normalizeColors(&f.Gradient.From, &f.Gradient.To)
	}
	return normalizeColors(&f.Color)
}

func validateLayer(l *Layer) error {
	if o := l.EffectiveOpacity(); !finite(o) || o < 0 || o > 1 {
		return errors.New(errors.ErrCodeInvalidScene, "opacity must be within [0, 1], got %g", o)
	}
	if g := l.Gradient; g != nil {
		if err := errors.ValidateGradientID(g.ID); err != nil {
			return err
		}
		return normalizeColors(&g.From, &g.To)
	}
	if l.Color == "" {
		return errors.New(errors.ErrCodeInvalidScene, "color is required for solid layers")
	}
	return normalizeColors(&l.Color)
}

func normalizeColors(colors ...*string) error {
	for _, c := range colors {
		n, err := NormalizeColor(*c)
		if err != nil {
			return err
		}
		*c = n
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
