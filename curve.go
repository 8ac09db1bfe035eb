package sketch

import (
	"fmt"
	"math"
)

// SketchCurve is the capability set shared by all planar curve primitives.
//
// Curves are parametrized over t ∈ [0, 1], from Start to End.
type SketchCurve interface {
	Start() Point
	End() Point
	// Eval evaluates the curve at parameter t.
	Eval(t float64) Point
	// Tangent returns the derivative of the curve with respect to t. It is
	// not normalized.
	Tangent(t float64) Vec2
	Length() float64
	BoundingBox() Rect
	// IsClosed reports whether the curve ends where it starts, within tol.
	IsClosed(tol float64) bool
	// IsDegenerate reports whether the curve is shorter than tol.
	IsDegenerate(tol float64) bool
}

var _ SketchCurve = Line{}
var _ SketchCurve = Arc{}
var _ SketchCurve = Circle{}
var _ SketchCurve = BSpline{}
var _ SketchCurve = Curve{}

type CurveKind int

const (
	LineCurve CurveKind = iota + 1
	ArcCurve
	CircleCurve
	BSplineCurve
)

func (k CurveKind) String() string {
	switch k {
	case LineCurve:
		return "line"
	case ArcCurve:
		return "arc"
	case CircleCurve:
		return "circle"
	case BSplineCurve:
		return "bspline"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(k))
	}
}

// Curve is one curve of a [Loop]. It acts as a tagged union of [Line], [Arc],
// [Circle] and [BSpline], selected by Kind.
type Curve struct {
	// We don't use an interface for Curve because the set of kinds is closed
	// and callers need the concrete shape back to build edges and entities.

	Kind   CurveKind
	line   Line
	arc    Arc
	circle Circle
	spline BSpline
}

// Line returns the line represented by this curve. This is only valid when
// Kind == LineCurve.
func (c Curve) Line() Line { return c.line }

// Arc returns the arc represented by this curve. This is only valid when Kind
// == ArcCurve.
func (c Curve) Arc() Arc { return c.arc }

// Circle returns the circle represented by this curve. This is only valid
// when Kind == CircleCurve.
func (c Curve) Circle() Circle { return c.circle }

// BSpline returns the spline represented by this curve. This is only valid
// when Kind == BSplineCurve.
func (c Curve) BSpline() BSpline { return c.spline }

func (c Curve) shape() SketchCurve {
	switch c.Kind {
	case LineCurve:
		return c.line
	case ArcCurve:
		return c.arc
	case CircleCurve:
		return c.circle
	case BSplineCurve:
		return c.spline
	default:
		panic(fmt.Sprintf("unhandled case %v", c.Kind))
	}
}

func (c Curve) String() string {
	return fmt.Sprintf("%s %s→%s", c.Kind, c.Start(), c.End())
}

func (c Curve) Start() Point              { return c.shape().Start() }
func (c Curve) End() Point                { return c.shape().End() }
func (c Curve) Eval(t float64) Point      { return c.shape().Eval(t) }
func (c Curve) Tangent(t float64) Vec2    { return c.shape().Tangent(t) }
func (c Curve) Length() float64           { return c.shape().Length() }
func (c Curve) BoundingBox() Rect         { return c.shape().BoundingBox() }
func (c Curve) IsClosed(tol float64) bool { return c.shape().IsClosed(tol) }

func (c Curve) IsDegenerate(tol float64) bool { return c.shape().IsDegenerate(tol) }

// Reversed returns the same curve traversed in the opposite direction.
func (c Curve) Reversed() Curve {
	switch c.Kind {
	case LineCurve:
		return c.line.Reversed().Curve()
	case ArcCurve:
		return c.arc.Reversed().Curve()
	case CircleCurve:
		return c.circle.Reversed().Curve()
	case BSplineCurve:
		return c.spline.Reversed().Curve()
	default:
		panic(fmt.Sprintf("unhandled case %v", c.Kind))
	}
}

func (c Curve) Translate(v Vec2) Curve {
	switch c.Kind {
	case LineCurve:
		return c.line.Translate(v).Curve()
	case ArcCurve:
		return c.arc.Translate(v).Curve()
	case CircleCurve:
		return c.circle.Translate(v).Curve()
	case BSplineCurve:
		return c.spline.Translate(v).Curve()
	default:
		panic(fmt.Sprintf("unhandled case %v", c.Kind))
	}
}

// withStart moves the start of a line to pt. Other kinds have no free start
// point and are returned unchanged, with false.
func (c Curve) withStart(pt Point) (Curve, bool) {
	if c.Kind != LineCurve {
		return c, false
	}
	c.line.P0 = pt
	return c, true
}

func isClosed(c SketchCurve, tol float64) bool {
	return c.Start().Distance(c.End()) < tol
}

func isDegenerate(c SketchCurve, tol float64) bool {
	return c.Length() < tol
}

// normalizeAngle maps a into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		// a was a tiny negative number.
		a = 0
	}
	return a
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) unwrap() T {
	if !opt.isSet {
		panic("option isn't set")
	}
	return opt.value
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs16 = [...][2]float64{
	{0.1894506104550685, -0.0950125098376374},
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, -0.2816035507792589},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, -0.4580167776572274},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, -0.6178762444026438},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, -0.7554044083550030},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, -0.8656312023878318},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, -0.9445750230732326},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, -0.9894009349916499},
	{0.0271524594117541, 0.9894009349916499},
}
