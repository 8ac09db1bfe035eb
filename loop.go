package sketch

import (
	"iter"
	"slices"
)

// Loop is a closed boundary: an ordered cycle of curves in which each curve
// ends where the next one starts. A loop of a single curve consists of a
// closed curve, typically a [Circle].
//
// Loops are immutable once built, except for [Loop.HealGaps] and
// [Loop.Reverse].
type Loop struct {
	curves []Curve
}

// NewLoop returns a loop of the given curves, validated with [HealTolerance].
func NewLoop(curves ...Curve) (Loop, error) {
	return NewLoopWithTolerance(HealTolerance, curves...)
}

// NewLoopWithTolerance is like [NewLoop], but validates with tol.
func NewLoopWithTolerance(tol float64, curves ...Curve) (Loop, error) {
	l := Loop{curves: slices.Clone(curves)}
	if err := l.Validate(tol); err != nil {
		return Loop{}, err
	}
	return l, nil
}

// LoopFromClosedCurve returns the loop consisting of the single curve c. It
// fails with an [*OpenLoopError] if c isn't closed within [PointTolerance].
func LoopFromClosedCurve(c Curve) (Loop, error) {
	if !c.IsClosed(PointTolerance) {
		return Loop{}, &OpenLoopError{Index: 0, Gap: c.Start().Distance(c.End())}
	}
	return Loop{curves: []Curve{c}}, nil
}

// Len returns the number of curves in the loop.
func (l Loop) Len() int { return len(l.curves) }

// Curve returns the i-th curve.
func (l Loop) Curve(i int) Curve { return l.curves[i] }

// Curves returns a copy of the loop's curves.
func (l Loop) Curves() []Curve { return slices.Clone(l.curves) }

// All returns an iterator over the loop's curves and their indices.
func (l Loop) All() iter.Seq2[int, Curve] {
	return slices.All(l.curves)
}

// gap returns the distance between the end of curve i and the start of the
// curve following it.
func (l Loop) gap(i int) float64 {
	next := l.curves[(i+1)%len(l.curves)]
	return l.curves[i].End().Distance(next.Start())
}

// Validate checks that every junction of the loop closes within tol. It
// returns [ErrEmptyLoop] for a loop without curves and an [*OpenLoopError]
// for the first junction that doesn't close.
func (l Loop) Validate(tol float64) error {
	if len(l.curves) == 0 {
		return ErrEmptyLoop
	}
	for i := range l.curves {
		if gap := l.gap(i); gap > tol {
			return &OpenLoopError{Index: i, Gap: gap}
		}
	}
	return nil
}

// HealGaps closes small gaps by moving the start of the curve after each gap
// onto the end of the curve before it. Gaps no larger than [PointTolerance]
// are left alone, as are gaps larger than tol. Only lines have a start point
// that can move; gaps before other curves stay open. HealGaps returns the
// number of junctions it closed.
func (l *Loop) HealGaps(tol float64) int {
	n := len(l.curves)
	if n < 2 {
		return 0
	}
	healed := 0
	l.curves = slices.Clone(l.curves)
	for i := range n {
		gap := l.gap(i)
		if gap <= PointTolerance || gap > tol {
			continue
		}
		j := (i + 1) % n
		if c, ok := l.curves[j].withStart(l.curves[i].End()); ok {
			l.curves[j] = c
			healed++
		}
	}
	return healed
}

// samplesPerCurve is the number of segments each curve is divided into when
// a loop's area is estimated.
const samplesPerCurve = 10

// SignedArea estimates the enclosed area by applying the shoelace formula to
// points sampled along each curve. The area is positive for counter-clockwise
// loops.
func (l Loop) SignedArea() float64 {
	var sum float64
	for _, c := range l.curves {
		p0 := c.Eval(0)
		for i := 1; i <= samplesPerCurve; i++ {
			p1 := c.Eval(float64(i) / samplesPerCurve)
			sum += (p1.X - p0.X) * (p1.Y + p0.Y)
			p0 = p1
		}
	}
	return -0.5 * sum
}

// IsCCW reports whether the loop runs counter-clockwise.
func (l Loop) IsCCW() bool {
	return l.SignedArea() > 0
}

// BoundingBox returns the union of the curves' bounding boxes. It returns
// false for an empty loop.
func (l Loop) BoundingBox() (Rect, bool) {
	if len(l.curves) == 0 {
		return Rect{}, false
	}
	bbox := l.curves[0].BoundingBox()
	for _, c := range l.curves[1:] {
		bbox = bbox.Union(c.BoundingBox())
	}
	return bbox, true
}

// Reverse reverses the loop in place: the order of the curves as well as each
// curve's direction.
func (l *Loop) Reverse() {
	curves := make([]Curve, len(l.curves))
	for i, c := range l.curves {
		curves[len(curves)-1-i] = c.Reversed()
	}
	l.curves = curves
}

// Reversed returns a reversed copy of the loop.
func (l Loop) Reversed() Loop {
	l.Reverse()
	return l
}

// TotalLength returns the sum of the curves' lengths.
func (l Loop) TotalLength() float64 {
	var sum float64
	for _, c := range l.curves {
		sum += c.Length()
	}
	return sum
}

// Translate returns a copy of the loop moved by v.
func (l Loop) Translate(v Vec2) Loop {
	curves := make([]Curve, len(l.curves))
	for i, c := range l.curves {
		curves[i] = c.Translate(v)
	}
	return Loop{curves: curves}
}
