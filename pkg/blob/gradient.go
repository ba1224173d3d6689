package blob

import (
	"math"
	"strconv"
)

const (
	gradientPoints  = 7
	gradientVar1    = 0.25
	gradientVar2    = 0.15
	gradientSmooth  = 0.25
	gradientEndFade = 0.6 // end stop opacity relative to the start stop
)

// GradientSpec describes a gradient-filled blob.
type GradientSpec struct {
	Center   Point
	RX, RY   float64
	Rotation float64
	Seed     int64
	From, To string  // stop colors
	Opacity  float64 // start stop opacity
	ID       string  // gradient id, defaults to "grad_<seed>"
}

// Gradient is a two-stop linear gradient running from the top-left to the
// bottom-right of the shape's bounding box.
type Gradient struct {
	ID       string
	From, To string
	Opacity  float64
}

// StopOpacities returns the opacity of the start and end stops.
func (g Gradient) StopOpacities() (float64, float64) {
	return g.Opacity, g.Opacity * gradientEndFade
}

// GradientBlob pairs a path with its fill.
type GradientBlob struct {
	Path     Path
	Gradient Gradient
}

// GenerateGradient builds a seven-vertex blob with a gradient fill. Its shape
// uses two harmonics and no random jitter, so it depends on the seed only
// through the phase offsets.
func GenerateGradient(spec GradientSpec) (GradientBlob, error) {
	if err := validateRadii(spec.RX, spec.RY); err != nil {
		return GradientBlob{}, err
	}
	if err := validateCenter(spec.Center); err != nil {
		return GradientBlob{}, err
	}
	if err := validateRotation(spec.Rotation); err != nil {
		return GradientBlob{}, err
	}

	seed := float64(spec.Seed)
	verts := vertexRing(spec.Center, spec.RX, spec.RY, gradientPoints, func(a float64) float64 {
		return gradientVar1*math.Sin(3*a+seed) + gradientVar2*math.Cos(2*a+seed*0.8)
	})
	start, segs := closedBezier(verts, gradientSmooth)

	id := spec.ID
	if id == "" {
		id = "grad_" + strconv.FormatInt(spec.Seed, 10)
	}

	return GradientBlob{
		Path: Path{
			Start:    start,
			Segments: segs,
			Center:   spec.Center,
			Rotation: spec.Rotation,
		},
		Gradient: Gradient{
			ID:      id,
			From:    spec.From,
			To:      spec.To,
			Opacity: spec.Opacity,
		},
	}, nil
}
