package sketch

import (
	"iter"
	"math"
)

// Arc is a circular arc. A positive sweep angle runs counter-clockwise.
//
// The zero value is not a valid arc; use [NewArc],
// [NewArcFromStartEndCenter] or [NewArcThroughPoints].
type Arc struct {
	center     Point
	radius     float64
	startAngle float64
	sweepAngle float64
}

// NewArc returns the arc around center starting at startAngle and sweeping
// by sweepAngle radians. The start angle is normalized to [0, 2π) and the
// sweep is clamped to [-2π, 2π].
func NewArc(center Point, radius, startAngle, sweepAngle float64) (Arc, error) {
	if !(radius > DegenerateTolerance) {
		return Arc{}, &RadiusError{Radius: radius}
	}
	if !(math.Abs(sweepAngle) >= AngleTolerance) {
		return Arc{}, ErrZeroSweep
	}
	a := Arc{
		center:     center,
		radius:     radius,
		startAngle: normalizeAngle(startAngle),
		sweepAngle: max(-2*math.Pi, min(sweepAngle, 2*math.Pi)),
	}
	if a.IsInf() || a.IsNaN() {
		return Arc{}, ErrNonFinite
	}
	return a, nil
}

// NewArcFromStartEndCenter returns the arc around center from start to end,
// running counter-clockwise if ccw is true and clockwise otherwise. Coincident
// start and end points produce a full turn.
//
// Start and end must be equidistant from center, relative to the larger of
// the two distances; the arc's radius is their mean.
func NewArcFromStartEndCenter(start, end, center Point, ccw bool) (Arc, error) {
	r1 := start.Distance(center)
	r2 := end.Distance(center)
	if math.Abs(r1-r2) > PointTolerance*max(r1, r2, 1) {
		return Arc{}, &RadiusMismatchError{R1: r1, R2: r2}
	}
	a0 := start.Sub(center).Angle()
	a1 := end.Sub(center).Angle()
	sweep := a1 - a0
	if ccw {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	}
	return NewArc(center, (r1+r2)/2, a0, sweep)
}

// NewArcThroughPoints returns the arc that starts at start, passes through mid
// and ends at end. It fails with [ErrCollinearPoints] if the points don't
// determine a circle.
func NewArcThroughPoints(start, mid, end Point) (Arc, error) {
	center, ok := circumcenter(start, mid, end)
	if !ok {
		return Arc{}, ErrCollinearPoints
	}
	a0 := normalizeAngle(start.Sub(center).Angle())
	am := normalizeAngle(mid.Sub(center).Angle())
	a1 := normalizeAngle(end.Sub(center).Angle())

	// Counter-clockwise angular distances from the start.
	toMid := normalizeAngle(am - a0)
	toEnd := normalizeAngle(a1 - a0)
	sweep := toEnd
	if toMid > toEnd {
		sweep = toEnd - 2*math.Pi
	}
	return NewArc(center, start.Distance(center), a0, sweep)
}

func (a Arc) Curve() Curve { return Curve{Kind: ArcCurve, arc: a} }

func (a Arc) Center() Point { return a.center }

func (a Arc) Radius() float64 { return a.radius }

// StartAngle returns the start angle in [0, 2π).
func (a Arc) StartAngle() float64 { return a.startAngle }

// SweepAngle returns the signed sweep angle.
func (a Arc) SweepAngle() float64 { return a.sweepAngle }

// EndAngle returns StartAngle + SweepAngle, which is not normalized.
func (a Arc) EndAngle() float64 { return a.startAngle + a.sweepAngle }

// IsCCW reports whether the arc runs counter-clockwise.
func (a Arc) IsCCW() bool { return a.sweepAngle > 0 }

func (a Arc) angleAt(t float64) float64 {
	return a.startAngle + t*a.sweepAngle
}

func (a Arc) Start() Point { return a.center.Polar(a.radius, a.startAngle) }
func (a Arc) End() Point   { return a.center.Polar(a.radius, a.EndAngle()) }

func (a Arc) Eval(t float64) Point {
	return a.center.Polar(a.radius, a.angleAt(t))
}

func (a Arc) Tangent(t float64) Vec2 {
	return VecFromAngle(a.angleAt(t)).Perp().Mul(a.radius * a.sweepAngle)
}

func (a Arc) Length() float64 {
	return a.radius * math.Abs(a.sweepAngle)
}

// Reversed returns the arc traced from its end to its start.
func (a Arc) Reversed() Arc {
	return Arc{
		center:     a.center,
		radius:     a.radius,
		startAngle: normalizeAngle(a.EndAngle()),
		sweepAngle: -a.sweepAngle,
	}
}

// BoundingBox returns the exact bounds of the arc: its endpoints plus every
// axis extreme of the circle the arc passes.
func (a Arc) BoundingBox() Rect {
	bbox := NewRectFromPoints(a.Start(), a.End())
	lo, hi := a.startAngle, a.EndAngle()
	if lo > hi {
		lo, hi = hi, lo
	}
	for k := math.Ceil(lo / (math.Pi / 2)); k*(math.Pi/2) <= hi; k++ {
		var v Vec2
		switch int(k) & 3 {
		case 0:
			v = Vec(a.radius, 0)
		case 1:
			v = Vec(0, a.radius)
		case 2:
			v = Vec(-a.radius, 0)
		case 3:
			v = Vec(0, -a.radius)
		}
		bbox = bbox.UnionPoint(a.center.Translate(v))
	}
	return bbox
}

func (a Arc) IsClosed(tol float64) bool     { return isClosed(a, tol) }
func (a Arc) IsDegenerate(tol float64) bool { return isDegenerate(a, tol) }

func (a Arc) IsInf() bool {
	return a.center.IsInf() || math.IsInf(a.radius, 0)
}

func (a Arc) IsNaN() bool {
	return a.center.IsNaN() || math.IsNaN(a.radius) || math.IsNaN(a.startAngle) || math.IsNaN(a.sweepAngle)
}

func (a Arc) Translate(v Vec2) Arc {
	a.center = a.center.Translate(v)
	return a
}

// PathElements returns the arc as a move followed by cubic Béziers that
// approximate it within tolerance.
func (a Arc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo(a.Start())) {
			return
		}
		arcCubics(a.center, a.radius, a.startAngle, a.sweepAngle, tolerance, yield)
	}
}

// arcCubics yields the cubic Béziers approximating a circular arc, without a
// leading move. It reports whether yield asked to continue.
func arcCubics(center Point, radius, startAngle, sweepAngle, tolerance float64, yield func(PathElement) bool) bool {
	scaledError := radius / pathTolerance(tolerance)
	// Number of subdivisions per full circle based on error tolerance.
	nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
	n := math.Ceil(nError * math.Abs(sweepAngle) * (1.0 / (2.0 * math.Pi)))
	angleStep := sweepAngle / n
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), sweepAngle) * radius
	angle0 := startAngle
	p0 := center.Polar(radius, angle0)

	for range int(n) {
		angle1 := angle0 + angleStep
		p1 := p0.Translate(VecFromAngle(angle0).Perp().Mul(armLen))
		p3 := center.Polar(radius, angle1)
		p2 := p3.Translate(VecFromAngle(angle1).Perp().Mul(-armLen))

		angle0 = angle1
		p0 = p3

		if !yield(CubicTo(p1, p2, p3)) {
			return false
		}
	}
	return true
}
