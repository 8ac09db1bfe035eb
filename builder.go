package sketch

import (
	"math"
	"slices"
)

// Builder accumulates drawing commands into a [Loop].
//
// A Builder is a value: every method returns the updated builder and leaves
// the receiver untouched, so a partially drawn profile can be branched. The
// first error is sticky. Once a command fails, later commands are ignored
// and Close, CloseWithArc, Open and Err report that error.
//
//	loop, err := sketch.Builder{}.
//		MoveTo(sketch.Pt(0, 0)).
//		Horizontal(10).
//		ArcThrough(sketch.Pt(12, 2), sketch.Pt(10, 4)).
//		Horizontal(-10).
//		Close()
type Builder struct {
	curves  []Curve
	current option[Point]
	start   option[Point]
	err     error
}

// Err returns the first error encountered by the builder.
func (b Builder) Err() error { return b.err }

// Len returns the number of curves drawn so far.
func (b Builder) Len() int { return len(b.curves) }

// Position returns the current pen position, if MoveTo has been called.
func (b Builder) Position() (Point, bool) { return b.current.value, b.current.isSet }

// StartPosition returns the position of the first MoveTo, if any.
func (b Builder) StartPosition() (Point, bool) { return b.start.value, b.start.isSet }

// MoveTo moves the pen to pt without drawing. The first MoveTo also sets the
// point the loop closes back to.
func (b Builder) MoveTo(pt Point) Builder {
	if b.err != nil {
		return b
	}
	b.current.set(pt)
	if !b.start.isSet {
		b.start.set(pt)
	}
	return b
}

func (b Builder) fail(err error) Builder {
	b.err = err
	return b
}

// push appends c and moves the pen to its end.
func (b Builder) push(c Curve) Builder {
	// Clip so that builders branched from the same value never share the
	// backing array.
	b.curves = append(slices.Clip(b.curves), c)
	b.current.set(c.End())
	return b
}

// pen returns the current position, or records ErrNoStartingPoint.
func (b Builder) pen() (Point, Builder, bool) {
	if b.err != nil {
		return Point{}, b, false
	}
	if !b.current.isSet {
		return Point{}, b.fail(ErrNoStartingPoint), false
	}
	return b.current.value, b, true
}

// LineTo draws a straight line to end.
func (b Builder) LineTo(end Point) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	l, err := NewLine(start, end)
	if err != nil {
		return b.fail(err)
	}
	return b.push(l.Curve())
}

// Horizontal draws a line dx along the x axis.
func (b Builder) Horizontal(dx float64) Builder {
	return b.LineBy(Vec(dx, 0))
}

// Vertical draws a line dy along the y axis.
func (b Builder) Vertical(dy float64) Builder {
	return b.LineBy(Vec(0, dy))
}

// LineBy draws a line by the offset v.
func (b Builder) LineBy(v Vec2) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	return b.LineTo(start.Translate(v))
}

// ArcTo draws an arc around center to end. See [NewArcFromStartEndCenter].
func (b Builder) ArcTo(end, center Point, ccw bool) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	a, err := NewArcFromStartEndCenter(start, end, center, ccw)
	if err != nil {
		return b.fail(err)
	}
	return b.push(a.Curve())
}

// ArcThrough draws an arc through mid to end. See [NewArcThroughPoints].
func (b Builder) ArcThrough(mid, end Point) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	a, err := NewArcThroughPoints(start, mid, end)
	if err != nil {
		return b.fail(err)
	}
	return b.push(a.Curve())
}

// ArcByAngle draws an arc of the given radius that continues tangentially
// from the previous curve, turning left if ccw is true and right otherwise.
// The sweep's magnitude is used; its sign comes from ccw. If nothing has been
// drawn yet, the arc starts heading along +x.
func (b Builder) ArcByAngle(radius, sweep float64, ccw bool) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	dir := Vec(1, 0)
	if n := len(b.curves); n > 0 {
		if t := b.curves[n-1].Tangent(1); t.Hypot() > DegenerateTolerance {
			dir = t.Normalize()
		}
	}
	normal := dir.Perp()
	sweep = math.Abs(sweep)
	if !ccw {
		normal = normal.Negate()
		sweep = -sweep
	}
	center := start.Translate(normal.Mul(radius))
	a, err := NewArc(center, radius, start.Sub(center).Angle(), sweep)
	if err != nil {
		return b.fail(err)
	}
	return b.push(a.Curve())
}

// QuadTo draws a quadratic Bézier, stored as a cubic B-spline.
func (b Builder) QuadTo(ctrl, end Point) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	return b.push(NewBSplineFromCubic(QuadBez{start, ctrl, end}.Raise()).Curve())
}

// CubicTo draws a cubic Bézier, stored as a cubic B-spline.
func (b Builder) CubicTo(ctrl1, ctrl2, end Point) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	return b.push(NewBSplineFromCubic(CubicBez{start, ctrl1, ctrl2, end}).Curve())
}

// SplineThrough draws a cubic spline from the current position through
// points. See [InterpolateBSpline] for how closely it follows them.
func (b Builder) SplineThrough(points ...Point) Builder {
	start, b, ok := b.pen()
	if !ok {
		return b
	}
	pts := make([]Point, 0, len(points)+1)
	pts = append(pts, start)
	pts = append(pts, points...)
	s, err := InterpolateBSpline(pts, 3)
	if err != nil {
		return b.fail(err)
	}
	return b.push(s.Curve())
}

// Close draws a line back to the start, unless the pen is already there, and
// returns the validated loop.
func (b Builder) Close() (Loop, error) {
	if b.err != nil {
		return Loop{}, b.err
	}
	if len(b.curves) == 0 {
		return Loop{}, ErrCannotCloseEmpty
	}
	start, end := b.start.unwrap(), b.current.unwrap()
	if start.Distance(end) > PointTolerance {
		b = b.push(Line{end, start}.Curve())
	}
	return NewLoop(b.curves...)
}

// CloseWithArc closes the loop with an arc around center back to the start.
func (b Builder) CloseWithArc(center Point, ccw bool) (Loop, error) {
	if b.err != nil {
		return Loop{}, b.err
	}
	if len(b.curves) == 0 {
		return Loop{}, ErrCannotCloseEmpty
	}
	a, err := NewArcFromStartEndCenter(b.current.unwrap(), b.start.unwrap(), center, ccw)
	if err != nil {
		return Loop{}, err
	}
	return NewLoop(b.push(a.Curve()).curves...)
}

// Open returns the curves drawn so far without closing them.
func (b Builder) Open() ([]Curve, error) {
	if b.err != nil {
		return nil, b.err
	}
	return slices.Clone(b.curves), nil
}
