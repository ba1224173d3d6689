package blob

import (
	"math"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

// Spec describes one blob. The zero Style resolves to DefaultStyle; a zero
// Points uses the style's vertex count.
type Spec struct {
	Center   Point
	RX, RY   float64
	Style    Style
	Rotation float64 // degrees, applied about Center
	Seed     int64
	Points   int // optional vertex count override
}

// Generate builds the closed bezier outline for spec.
//
// Non-positive or non-finite radii, a non-finite center or rotation, and
// point overrides outside [MinPoints, MaxPoints] are rejected with an
// INVALID_GEOMETRY error. Unknown styles are not an error.
func Generate(spec Spec) (Path, error) {
	if err := validateRadii(spec.RX, spec.RY); err != nil {
		return Path{}, err
	}
	if err := validateCenter(spec.Center); err != nil {
		return Path{}, err
	}
	if err := validateRotation(spec.Rotation); err != nil {
		return Path{}, err
	}

	preset := PresetFor(spec.Style)
	n := preset.Points
	if spec.Points != 0 {
		if spec.Points < MinPoints || spec.Points > MaxPoints {
			return Path{}, errors.New(errors.ErrCodeInvalidGeometry,
				"point count must be within [%d, %d], got %d", MinPoints, MaxPoints, spec.Points)
		}
		n = spec.Points
	}

	rng := newRNG(spec.Seed)
	seed := float64(spec.Seed)
	verts := vertexRing(spec.Center, spec.RX, spec.RY, n, func(a float64) float64 {
		return preset.Var1*math.Sin(3*a+seed*0.7) +
			preset.Var2*math.Cos(2*a+seed*1.3) +
			harmonic5Amp*math.Sin(5*a+seed*2.1) +
			jitter(rng)
	})

	start, segs := closedBezier(verts, preset.Smooth)
	return Path{
		Start:    start,
		Segments: segs,
		Center:   spec.Center,
		Rotation: spec.Rotation,
	}, nil
}
