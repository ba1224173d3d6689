package blob

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

const (
	// MinPoints is the smallest vertex count that yields a non-degenerate outline.
	MinPoints = 3

	// MaxPoints bounds the vertex count override.
	MaxPoints = 256
)

// variationFunc returns the radial variation at a vertex angle. It is called
// once per vertex, in ring order.
type variationFunc func(angle float64) float64

// vertexRing samples n evenly spaced vertices around center.
func vertexRing(center Point, rx, ry float64, n int, vary variationFunc) []Point {
	verts := make([]Point, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		v := vary(angle)
		r := Point{X: rx * (baseScale + v), Y: ry * (baseScale + v*yDamping)}
		verts[i] = Point{
			X: center.X + r.X*math.Cos(angle),
			Y: center.Y + r.Y*math.Sin(angle),
		}
	}
	return verts
}

// closedBezier joins the ring with one cubic per edge. Control points for edge
// i depend only on vertices i-1, i, i+1 and i+2.
func closedBezier(verts []Point, smooth float64) (Point, []Segment) {
	n := len(verts)
	segs := make([]Segment, n)
	for i := range n {
		prev := verts[(i-1+n)%n]
		curr := verts[i]
		next := verts[(i+1)%n]
		nextNext := verts[(i+2)%n]

		segs[i] = Segment{
			C1:  curr.Add(next.Sub(prev).Scale(smooth)),
			C2:  next.Sub(nextNext.Sub(curr).Scale(smooth)),
			End: next,
		}
	}
	return verts[0], segs
}

func newRNG(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}

// jitter draws uniformly from [-jitterAmp, jitterAmp).
func jitter(rng *rand.Rand) float64 {
	return (rng.Float64()*2 - 1) * jitterAmp
}

func validateRadii(rx, ry float64) error {
	for _, r := range []struct {
		name string
		v    float64
	}{{"rx", rx}, {"ry", ry}} {
		if math.IsNaN(r.v) || math.IsInf(r.v, 0) {
			return errors.New(errors.ErrCodeInvalidGeometry, "%s must be finite, got %g", r.name, r.v)
		}
		if r.v <= 0 {
			return errors.New(errors.ErrCodeInvalidGeometry, "%s must be positive, got %g", r.name, r.v)
		}
	}
	return nil
}

func validateRotation(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return errors.New(errors.ErrCodeInvalidGeometry, "rotation must be finite, got %g", deg)
	}
	return nil
}

func validateCenter(c Point) error {
	if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
		return errors.New(errors.ErrCodeInvalidGeometry, "center must be finite, got (%g, %g)", c.X, c.Y)
	}
	return nil
}
