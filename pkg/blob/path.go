package blob

import (
	"math"
	"strconv"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point             { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point             { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point         { return Point{p.X * s, p.Y * s} }
func (p Point) Dist(q Point) float64          { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p Point) lerp(q Point, t float64) Point { return p.Add(q.Sub(p).Scale(t)) }

// Segment is one cubic Bezier edge. It starts where the previous segment (or
// the path start) ended.
type Segment struct {
	C1, C2, End Point
}

// Op is a drawing command kind.
type Op uint8

const (
	OpMoveTo Op = iota
	OpCubicTo
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "M"
	case OpCubicTo:
		return "C"
	case OpClose:
		return "Z"
	}
	return "?"
}

// Command is a single drawing command. MoveTo carries one point, CubicTo
// three (two controls and the end point), Close none.
type Command struct {
	Op     Op
	Points []Point
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Path is a closed outline made of cubic segments. Rotation (degrees) is a
// whole-shape transform about Center that has not been applied to the
// coordinates.
type Path struct {
	Start    Point
	Segments []Segment
	Center   Point
	Rotation float64
}

// Vertices returns the on-curve points in ring order. The closing point is
// not repeated.
func (p Path) Vertices() []Point {
	if len(p.Segments) == 0 {
		return nil
	}
	verts := make([]Point, 0, len(p.Segments))
	verts = append(verts, p.Start)
	for _, s := range p.Segments[:len(p.Segments)-1] {
		verts = append(verts, s.End)
	}
	return verts
}

// Commands returns the path as move/cubic/close commands.
func (p Path) Commands() []Command {
	cmds := make([]Command, 0, len(p.Segments)+2)
	cmds = append(cmds, Command{Op: OpMoveTo, Points: []Point{p.Start}})
	for _, s := range p.Segments {
		cmds = append(cmds, Command{Op: OpCubicTo, Points: []Point{s.C1, s.C2, s.End}})
	}
	return append(cmds, Command{Op: OpClose})
}

// D returns the SVG path data, with coordinates at one decimal place:
//
//	M x y C c1x c1y, c2x c2y, x y ... Z
func (p Path) D() string {
	buf := make([]byte, 0, 16+len(p.Segments)*48)
	buf = append(buf, "M "...)
	buf = appendPoint(buf, p.Start)
	for _, s := range p.Segments {
		buf = append(buf, " C "...)
		buf = appendPoint(buf, s.C1)
		buf = append(buf, ", "...)
		buf = appendPoint(buf, s.C2)
		buf = append(buf, ", "...)
		buf = appendPoint(buf, s.End)
	}
	buf = append(buf, " Z"...)
	return string(buf)
}

// Transform returns the SVG transform attribute value for the rotation, or
// the empty string when there is none.
func (p Path) Transform() string {
	if p.Rotation == 0 {
		return ""
	}
	return "rotate(" + fmtNum(p.Rotation) + " " + fmtNum(p.Center.X) + " " + fmtNum(p.Center.Y) + ")"
}

// Bake applies the rotation to every coordinate and returns an unrotated path
// with the same rendered geometry.
func (p Path) Bake() Path {
	if p.Rotation == 0 {
		return p
	}
	rad := p.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	rot := func(q Point) Point {
		d := q.Sub(p.Center)
		return Point{
			X: p.Center.X + d.X*cos - d.Y*sin,
			Y: p.Center.Y + d.X*sin + d.Y*cos,
		}
	}

	out := Path{Start: rot(p.Start), Center: p.Center, Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		out.Segments[i] = Segment{C1: rot(s.C1), C2: rot(s.C2), End: rot(s.End)}
	}
	return out
}

// Flatten approximates the outline with a polyline of steps points per
// segment. The first point is Start; the last equals Start. Rotation is not
// applied; call Bake first if needed.
func (p Path) Flatten(steps int) []Point {
	steps = max(1, steps)
	pts := make([]Point, 0, 1+len(p.Segments)*steps)
	pts = append(pts, p.Start)
	from := p.Start
	for _, s := range p.Segments {
		for k := 1; k <= steps; k++ {
			pts = append(pts, cubicAt(from, s.C1, s.C2, s.End, float64(k)/float64(steps)))
		}
		from = s.End
	}
	return pts
}

// Bounds returns the bounding box of the rendered (rotated) outline,
// approximated by flattening.
func (p Path) Bounds() Rect {
	pts := p.Bake().Flatten(16)
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, q := range pts[1:] {
		r.Min.X = min(r.Min.X, q.X)
		r.Min.Y = min(r.Min.Y, q.Y)
		r.Max.X = max(r.Max.X, q.X)
		r.Max.Y = max(r.Max.Y, q.Y)
	}
	return r
}

// Contains reports whether q lies inside the rendered outline (even-odd rule
// over a flattened approximation).
func (p Path) Contains(q Point) bool {
	pts := p.Bake().Flatten(12)
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > q.Y) != (b.Y > q.Y) && q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// cubicAt evaluates a cubic Bezier with de Casteljau's algorithm.
func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	a, b, c := p0.lerp(p1, t), p1.lerp(p2, t), p2.lerp(p3, t)
	d, e := a.lerp(b, t), b.lerp(c, t)
	return d.lerp(e, t)
}

func appendPoint(buf []byte, p Point) []byte {
	buf = strconv.AppendFloat(buf, p.X, 'f', 1, 64)
	buf = append(buf, ' ')
	return strconv.AppendFloat(buf, p.Y, 'f', 1, 64)
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
