/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: membership.go
Description: Membership functions for the Akaylee fuzzy inference engine. Provides the
Function interface and point-list fuzzy sets (polygons and triangles) evaluated by linear
interpolation between the supplied vertices, with a configurable extension policy on each side.
*/

package membership

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMembership is returned when a fuzzy set cannot be built from its parameters
var ErrInvalidMembership = errors.New("invalid membership function")

// Function evaluates the degree of membership of a crisp value.
// Implementations must be total for every finite x and stay within [0,1].
type Function interface {
	Evaluate(x float64) float64
	// Support returns the smallest and largest x the function is defined over
	Support() (min, max float64)
}

// Point is one vertex of a point-list fuzzy set
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Extension controls the membership value outside the declared vertices
type Extension int

const (
	// ExtendClamp holds the y value of the nearest vertex
	ExtendClamp Extension = iota
	// ExtendDecay drops to zero
	ExtendDecay
)

// String returns the configuration name of the extension policy
func (e Extension) String() string {
	switch e {
	case ExtendClamp:
		return "clamp"
	case ExtendDecay:
		return "decay"
	default:
		return fmt.Sprintf("extension(%d)", int(e))
	}
}

// ParseExtension parses "clamp" or "decay". The empty string selects clamp.
func ParseExtension(name string) (Extension, error) {
	switch name {
	case "", "clamp":
		return ExtendClamp, nil
	case "decay":
		return ExtendDecay, nil
	default:
		return ExtendClamp, fmt.Errorf("%w: unknown extension %q", ErrInvalidMembership, name)
	}
}

// Polygon is a fuzzy set described by a list of vertices.
//
// Vertices are scanned in declared order, not sorted: x before the first vertex takes
// the left extension, otherwise the first vertex i with x <= p[i].X selects the
// segment (p[i-1], p[i]) and the value is linearly interpolated. x beyond the last
// vertex takes the right extension. The scan always lands on a segment whose x span
// is strictly positive, so interpolation never divides by zero.
//
// At a vertical edge the earlier vertex wins: for (0,0),(0,1),(1,0) Evaluate(0) is 0,
// and for (0,0),(1,1),(1,0.5),(2,0) Evaluate(1) is 1.
type Polygon struct {
	points []Point
	left   Extension
	right  Extension
	min    float64
	max    float64
}

// Option configures a Polygon
type Option func(*Polygon)

// WithLeft sets the extension used before the first vertex
func WithLeft(e Extension) Option {
	return func(p *Polygon) { p.left = e }
}

// WithRight sets the extension used after the last vertex
func WithRight(e Extension) Option {
	return func(p *Polygon) { p.right = e }
}

// NewPolygon builds a point-list fuzzy set. Every coordinate must be finite and every
// y must lie in [0,1].
func NewPolygon(points []Point, opts ...Option) (*Polygon, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidMembership, len(points))
	}

	p := &Polygon{
		points: make([]Point, len(points)),
		min:    math.Inf(1),
		max:    math.Inf(-1),
	}
	copy(p.points, points)

	for i, pt := range p.points {
		if math.IsNaN(pt.X) || math.IsInf(pt.X, 0) || math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
			return nil, fmt.Errorf("%w: point %d is not finite", ErrInvalidMembership, i)
		}
		if pt.Y < 0 || pt.Y > 1 {
			return nil, fmt.Errorf("%w: point %d has y=%g outside [0,1]", ErrInvalidMembership, i, pt.Y)
		}
		p.min = math.Min(p.min, pt.X)
		p.max = math.Max(p.max, pt.X)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewTriangular builds a three-vertex fuzzy set. The vertices carry their own y values,
// so the peak does not have to be in the middle and the shape does not need to be normalized.
func NewTriangular(a, b, c Point, opts ...Option) (*Polygon, error) {
	return NewPolygon([]Point{a, b, c}, opts...)
}

// MustTriangular is NewTriangular for statically known parameters. It panics on error.
func MustTriangular(a, b, c Point, opts ...Option) *Polygon {
	p, err := NewTriangular(a, b, c, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Evaluate returns the membership degree of x
func (p *Polygon) Evaluate(x float64) float64 {
	first := p.points[0]
	if x < first.X {
		return extend(p.left, first.Y)
	}
	if x == first.X {
		return first.Y
	}

	for i := 1; i < len(p.points); i++ {
		cur := p.points[i]
		if x <= cur.X {
			prev := p.points[i-1]
			y := prev.Y + (cur.Y-prev.Y)*(x-prev.X)/(cur.X-prev.X)
			return clamp01(y)
		}
	}

	return extend(p.right, p.points[len(p.points)-1].Y)
}

// Support returns the smallest and largest vertex x
func (p *Polygon) Support() (float64, float64) {
	return p.min, p.max
}

// Points returns a copy of the vertices in declared order
func (p *Polygon) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// Extensions returns the left and right extension policies
func (p *Polygon) Extensions() (Extension, Extension) {
	return p.left, p.right
}

// Sample evaluates fn over a caller-chosen grid
func Sample(fn Function, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = fn.Evaluate(x)
	}
	return ys
}

// Linspace returns n evenly spaced values from lo to hi inclusive. n < 2 yields [lo].
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	xs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs
}

func extend(e Extension, edge float64) float64 {
	if e == ExtendDecay {
		return 0
	}
	return edge
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
