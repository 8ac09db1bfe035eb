package sketch

import (
	"iter"
	"math"
)

// Circle is a full circle. Since a circle has no natural endpoints, its
// parametrization starts and ends at the seam angle and runs in the direction
// given by ccw.
type Circle struct {
	center Point
	radius float64
	seam   float64
	ccw    bool
}

// NewCircle returns a counter-clockwise circle with its seam at angle 0.
func NewCircle(center Point, radius float64) (Circle, error) {
	return NewCircleWithSeam(center, radius, 0, true)
}

func NewCircleWithSeam(center Point, radius, seam float64, ccw bool) (Circle, error) {
	if !(radius > DegenerateTolerance) {
		return Circle{}, &RadiusError{Circle: true, Radius: radius}
	}
	c := Circle{
		center: center,
		radius: radius,
		seam:   normalizeAngle(seam),
		ccw:    ccw,
	}
	if c.IsInf() || c.IsNaN() {
		return Circle{}, ErrNonFinite
	}
	return c, nil
}

// NewCircleThroughPoints returns the circle through three points. The center
// is found the same way as for [NewArcThroughPoints].
func NewCircleThroughPoints(p1, p2, p3 Point) (Circle, error) {
	center, ok := circumcenter(p1, p2, p3)
	if !ok {
		return Circle{}, ErrCollinearPoints
	}
	return NewCircle(center, p1.Distance(center))
}

// NewCircleFromCenterPoint returns the circle around center passing through
// pt, with its seam at pt.
func NewCircleFromCenterPoint(center, pt Point) (Circle, error) {
	return NewCircleWithSeam(center, pt.Distance(center), pt.Sub(center).Angle(), true)
}

// NewCircleFromDiameter returns the circle whose diameter is the segment p1 p2.
func NewCircleFromDiameter(p1, p2 Point) (Circle, error) {
	return NewCircle(p1.Midpoint(p2), p1.Distance(p2)/2)
}

func (c Circle) Curve() Curve { return Curve{Kind: CircleCurve, circle: c} }

func (c Circle) Center() Point   { return c.center }
func (c Circle) Radius() float64 { return c.radius }

// Seam returns the angle at which the parametrization starts and ends.
func (c Circle) Seam() float64 { return c.seam }
func (c Circle) IsCCW() bool    { return c.ccw }

func (c Circle) Diameter() float64      { return 2 * c.radius }
func (c Circle) Circumference() float64 { return 2 * math.Pi * c.radius }

func (c Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

// Contains reports whether pt lies strictly inside the circle.
func (c Circle) Contains(pt Point) bool {
	return pt.Sub(c.center).Hypot2() < c.radius*c.radius
}

// PointAtAngle returns the point of the circle at the given angle.
func (c Circle) PointAtAngle(angle float64) Point {
	return c.center.Polar(c.radius, angle)
}

// Arc returns the full-turn arc equivalent to c.
func (c Circle) Arc() Arc {
	return Arc{
		center:     c.center,
		radius:     c.radius,
		startAngle: c.seam,
		sweepAngle: c.sweep(),
	}
}

func (c Circle) sweep() float64 {
	if c.ccw {
		return 2 * math.Pi
	}
	return -2 * math.Pi
}

func (c Circle) Start() Point { return c.PointAtAngle(c.seam) }
func (c Circle) End() Point   { return c.Start() }

func (c Circle) Eval(t float64) Point {
	return c.PointAtAngle(c.seam + t*c.sweep())
}

func (c Circle) Tangent(t float64) Vec2 {
	return VecFromAngle(c.seam + t*c.sweep()).Perp().Mul(c.radius * c.sweep())
}

func (c Circle) Length() float64 { return c.Circumference() }

// Reversed returns the circle traversed in the opposite direction, with the
// same seam.
func (c Circle) Reversed() Circle {
	c.ccw = !c.ccw
	return c
}

func (c Circle) BoundingBox() Rect {
	r := c.radius
	x := c.center.X
	y := c.center.Y
	return Rect{
		X0: x - r,
		Y0: y - r,
		X1: x + r,
		Y1: y + r,
	}
}

// IsClosed always returns true.
func (c Circle) IsClosed(tol float64) bool { return true }

func (c Circle) IsDegenerate(tol float64) bool { return isDegenerate(c, tol) }

func (c Circle) IsInf() bool {
	return c.center.IsInf() || math.IsInf(c.radius, 0)
}

func (c Circle) IsNaN() bool {
	return c.center.IsNaN() || math.IsNaN(c.radius) || math.IsNaN(c.seam)
}

func (c Circle) Translate(v Vec2) Circle {
	c.center = c.center.Translate(v)
	return c
}

// PathElements returns the circle as a closed path of cubic Béziers, starting
// at the seam.
func (c Circle) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo(c.Start())) {
			return
		}
		if !circleCubics(c, tolerance, yield) {
			return
		}
		yield(ClosePath())
	}
}

func circleCubics(c Circle, tolerance float64, yield func(PathElement) bool) bool {
	scaledError := c.radius / pathTolerance(tolerance)
	var n int
	var armLength float64
	if scaledError < 1.0/1.9608e-4 {
		// Solution from http://spencermortensen.com/articles/bezier-circle/
		n = 4
		armLength = 0.551915024494
	} else {
		// This is empirically determined to fall within error tolerance.
		n = int(math.Ceil(math.Pow(1.1163*scaledError, 1.0/6.0)))
		armLength = (4.0 / 3.0) * math.Tan(math.Pi/2/(float64(n)))
	}
	dir := 1.0
	if !c.ccw {
		dir = -1
	}
	arm := armLength * c.radius * dir

	deltaTh := dir * 2.0 * math.Pi / float64(n)
	p0 := c.Start()
	for ix := 1; ix <= n; ix++ {
		th1 := c.seam + deltaTh*float64(ix)
		th0 := th1 - deltaTh
		p3 := c.PointAtAngle(th1)
		if ix == n {
			p3 = c.Start()
		}
		p1 := p0.Translate(VecFromAngle(th0).Perp().Mul(arm))
		p2 := p3.Translate(VecFromAngle(th1).Perp().Mul(-arm))
		if !yield(CubicTo(p1, p2, p3)) {
			return false
		}
		p0 = p3
	}
	return true
}
