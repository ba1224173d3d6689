package blob

import (
	"math"
	"strings"
	"testing"
)

func TestPathD(t *testing.T) {
	p := Path{
		Start: Point{0, 0},
		Segments: []Segment{
			{C1: Point{1, 2}, C2: Point{3, 4.26}, End: Point{10, -0.46}},
			{C1: Point{7, 8}, C2: Point{-1.5, 2}, End: Point{0, 0}},
		},
	}

	want := "M 0.0 0.0 C 1.0 2.0, 3.0 4.3, 10.0 -0.5 C 7.0 8.0, -1.5 2.0, 0.0 0.0 Z"
	if got := p.D(); got != want {
		t.Errorf("D() =\n%s\nwant\n%s", got, want)
	}
}

func TestPathD_Shape(t *testing.T) {
	p, err := Generate(Spec{Center: Point{100, 100}, RX: 50, RY: 50, Style: Amoeba, Seed: 8})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	d := p.D()

	if !strings.HasPrefix(d, "M ") {
		t.Errorf("D() should start with M, got: %s", d)
	}
	if !strings.HasSuffix(d, " Z") {
		t.Errorf("D() should end with Z, got: %s", d)
	}
	if got := strings.Count(d, " C "); got != 8 {
		t.Errorf("D() has %d cubic commands, want 8", got)
	}
}

func TestPathBake(t *testing.T) {
	p := Path{
		Start:    Point{11, 10},
		Segments: []Segment{{C1: Point{10, 11}, C2: Point{9, 10}, End: Point{11, 10}}},
		Center:   Point{10, 10},
		Rotation: 90,
	}

	b := p.Bake()
	if b.Rotation != 0 {
		t.Errorf("Bake().Rotation = %v, want 0", b.Rotation)
	}
	if b.Start.Dist(Point{10, 11}) > 1e-9 {
		t.Errorf("Bake().Start = %v, want (10, 11)", b.Start)
	}
	if b.Segments[0].C1.Dist(Point{9, 10}) > 1e-9 {
		t.Errorf("Bake().C1 = %v, want (9, 10)", b.Segments[0].C1)
	}
	if p.Start != (Point{11, 10}) {
		t.Error("Bake() should not modify the receiver")
	}
}

func TestPathBake_PreservesDistances(t *testing.T) {
	p, _ := Generate(Spec{Center: Point{300, 200}, RX: 90, RY: 60, Style: Wave, Rotation: -37, Seed: 4})
	b := p.Bake()

	for i, v := range p.Vertices() {
		got := b.Vertices()[i].Dist(p.Center)
		want := v.Dist(p.Center)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("vertex %d distance = %v, want %v", i, got, want)
		}
	}

	unrotated, _ := Generate(Spec{Center: Point{300, 200}, RX: 90, RY: 60, Style: Wave, Seed: 4})
	if unrotated.Bake().D() != unrotated.D() {
		t.Error("Bake() of an unrotated path should not change it")
	}
}

func TestPathFlatten(t *testing.T) {
	p, _ := Generate(Spec{RX: 100, RY: 100, Style: Organic, Seed: 42})

	pts := p.Flatten(8)
	if got, want := len(pts), 1+6*8; got != want {
		t.Fatalf("len(Flatten(8)) = %d, want %d", got, want)
	}
	if pts[0] != p.Start {
		t.Errorf("Flatten()[0] = %v, want start %v", pts[0], p.Start)
	}
	if pts[len(pts)-1].Dist(p.Start) > 1e-9 {
		t.Errorf("Flatten() should end at start, got %v", pts[len(pts)-1])
	}
	if pts[8].Dist(p.Segments[0].End) > 1e-9 {
		t.Errorf("Flatten()[8] = %v, want first vertex end %v", pts[8], p.Segments[0].End)
	}

	if got := len(p.Flatten(0)); got != 7 {
		t.Errorf("len(Flatten(0)) = %d, want 7 (steps clamped to 1)", got)
	}
}

func TestPathBoundsAndContains(t *testing.T) {
	p, _ := Generate(Spec{Center: Point{500, 400}, RX: 100, RY: 80, Style: Organic, Rotation: 20, Seed: 42})

	r := p.Bounds()
	if !(r.Min.X < 500 && r.Max.X > 500 && r.Min.Y < 400 && r.Max.Y > 400) {
		t.Errorf("Bounds() = %+v should contain the center", r)
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		t.Errorf("Bounds() has non-positive size %v x %v", r.Width(), r.Height())
	}
	if r.Width() > 2*100*1.6 || r.Height() > 2*100*1.6 {
		t.Errorf("Bounds() = %+v larger than the variation envelope allows", r)
	}

	if !p.Contains(Point{500, 400}) {
		t.Error("Contains(center) = false, want true")
	}
	if p.Contains(Point{900, 900}) {
		t.Error("Contains(far point) = true, want false")
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpMoveTo, "M"},
		{OpCubicTo, "C"},
		{OpClose, "Z"},
		{Op(9), "?"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
