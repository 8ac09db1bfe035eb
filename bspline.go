package sketch

import (
	"iter"
	"math"
	"slices"
)

// BSpline is a polynomial (non-rational) B-spline curve. The spline's knot
// domain is mapped onto t ∈ [0, 1].
type BSpline struct {
	degree int
	knots  []float64
	points []Point
}

// NewBSpline returns a spline with a clamped uniform knot vector, which
// starts at the first control point and ends at the last.
func NewBSpline(points []Point, degree int) (BSpline, error) {
	if degree < 1 {
		return BSpline{}, ErrInvalidDegree
	}
	if len(points) < degree+1 {
		return BSpline{}, &ControlPointsError{Min: degree + 1, Degree: degree, Got: len(points)}
	}
	if s := (BSpline{points: points}); s.IsInf() || s.IsNaN() {
		return BSpline{}, ErrNonFinite
	}
	return BSpline{
		degree: degree,
		knots:  uniformKnots(len(points), degree),
		points: slices.Clone(points),
	}, nil
}

// NewBSplineWithKnots returns a spline with an explicit knot vector, which
// must have len(points)+degree+1 non-decreasing entries.
func NewBSplineWithKnots(points []Point, degree int, knots []float64) (BSpline, error) {
	if degree < 1 {
		return BSpline{}, ErrInvalidDegree
	}
	if len(points) < degree+1 {
		return BSpline{}, &ControlPointsError{Min: degree + 1, Degree: degree, Got: len(points)}
	}
	if s := (BSpline{points: points}); s.IsInf() || s.IsNaN() {
		return BSpline{}, ErrNonFinite
	}
	if err := validKnots(knots, len(points), degree); err != nil {
		return BSpline{}, err
	}
	return BSpline{
		degree: degree,
		knots:  slices.Clone(knots),
		points: slices.Clone(points),
	}, nil
}

// InterpolateBSpline returns a spline that passes through the first and last
// of points and follows the others.
//
// This is an approximation, not true interpolation: the points are used as
// control points, and the spline only passes through the interior points when
// they are collinear with their neighbours. The degree is lowered to
// len(points)-1 if there are too few points for it.
func InterpolateBSpline(points []Point, degree int) (BSpline, error) {
	if len(points) < 2 {
		return BSpline{}, &ControlPointsError{Min: 2, Degree: degree, Got: len(points)}
	}
	return NewBSpline(points, min(degree, len(points)-1))
}

// NewBSplineFromCubic returns the degree 3 spline tracing the same curve as c.
func NewBSplineFromCubic(c CubicBez) BSpline {
	return BSpline{
		degree: 3,
		knots:  uniformKnots(4, 3),
		points: []Point{c.P0, c.P1, c.P2, c.P3},
	}
}

func (s BSpline) Curve() Curve { return Curve{Kind: BSplineCurve, spline: s} }

func (s BSpline) Degree() int { return s.degree }

// ControlPoints returns a copy of the control points.
func (s BSpline) ControlPoints() []Point { return slices.Clone(s.points) }

// Knots returns a copy of the knot vector.
func (s BSpline) Knots() []float64 { return slices.Clone(s.knots) }

func (s BSpline) param(t float64) float64 {
	u0, u1 := knotDomain(s.knots, s.degree)
	return u0 + t*(u1-u0)
}

func (s BSpline) Start() Point { return s.Eval(0) }
func (s BSpline) End() Point   { return s.Eval(1) }

func (s BSpline) Eval(t float64) Point {
	return evalSpline(s.knots, s.degree, s.points, s.param(t))
}

func evalSpline(knots []float64, degree int, points []Point, u float64) Point {
	span := findSpan(knots, degree, u)
	n := basisFuncs(knots, degree, span, u)
	var v Vec2
	for j, b := range n {
		v = v.Add(Vec2(points[span-degree+j]).Mul(b))
	}
	return Point(v)
}

// derivative returns the degree, knots and control points of the spline's
// derivative with respect to its knot parameter.
func (s BSpline) derivative() (int, []float64, []Point) {
	p := s.degree
	q := make([]Point, len(s.points)-1)
	for i := range q {
		d := s.knots[i+p+1] - s.knots[i+1]
		if d == 0 {
			continue
		}
		q[i] = Point(s.points[i+1].Sub(s.points[i]).Mul(float64(p) / d))
	}
	return p - 1, s.knots[1 : len(s.knots)-1], q
}

func (s BSpline) Tangent(t float64) Vec2 {
	u0, u1 := knotDomain(s.knots, s.degree)
	dp, dk, dq := s.derivative()
	return Vec2(evalSpline(dk, dp, dq, s.param(t))).Mul(u1 - u0)
}

// Length returns the arc length, integrated with Gauss-Legendre quadrature over
// each knot span.
func (s BSpline) Length() float64 {
	dp, dk, dq := s.derivative()
	u0, u1 := knotDomain(s.knots, s.degree)
	var sum float64
	for i := s.degree; i < len(s.knots)-s.degree-1; i++ {
		a, b := max(s.knots[i], u0), min(s.knots[i+1], u1)
		if b <= a {
			continue
		}
		half := 0.5 * (b - a)
		mid := 0.5 * (a + b)
		for _, coeff := range gaussLegendreCoeffs16 {
			wi, xi := coeff[0], coeff[1]
			sum += wi * half * Vec2(evalSpline(dk, dp, dq, mid+half*xi)).Hypot()
		}
	}
	return sum
}

// Reversed returns the spline traced backwards, with the knot vector mirrored.
func (s BSpline) Reversed() BSpline {
	a, b := s.knots[0], s.knots[len(s.knots)-1]
	knots := make([]float64, len(s.knots))
	for i, k := range s.knots {
		knots[len(knots)-1-i] = a + b - k
	}
	points := slices.Clone(s.points)
	slices.Reverse(points)
	return BSpline{
		degree: s.degree,
		knots:  knots,
		points: points,
	}
}

// BoundingBox returns the bounding box of the control polygon, which encloses
// the curve but may be larger than its tight bounds.
func (s BSpline) BoundingBox() Rect {
	return boundingBoxOf(s.points)
}

func (s BSpline) IsClosed(tol float64) bool     { return isClosed(s, tol) }
func (s BSpline) IsDegenerate(tol float64) bool { return isDegenerate(s, tol) }

func (s BSpline) IsInf() bool {
	for _, pt := range s.points {
		if pt.IsInf() {
			return true
		}
	}
	return false
}

func (s BSpline) IsNaN() bool {
	for _, pt := range s.points {
		if pt.IsNaN() {
			return true
		}
	}
	return false
}

func (s BSpline) Translate(v Vec2) BSpline {
	points := make([]Point, len(s.points))
	for i, pt := range s.points {
		points[i] = pt.Translate(v)
	}
	s.points = points
	return s
}

// PathElements returns the spline as an open path: a single cubic for a
// Bézier, lines sampled to within tolerance otherwise.
func (s BSpline) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo(s.Start())) {
			return
		}
		curveElements(s.Curve(), tolerance, yield)
	}
}

// sampleCount returns how many line segments approximate the spline to within
// roughly tolerance.
func (s BSpline) sampleCount(tolerance float64) int {
	n := math.Ceil(math.Sqrt(s.Length() / pathTolerance(tolerance)))
	return int(max(8, min(n, 1024)))
}
