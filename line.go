package sketch

// Line represents a line segment from P0 to P1.
type Line struct {
	P0 Point
	P1 Point
}

// NewLine returns the segment from p0 to p1. It fails with
// [ErrDegenerateCurve] if the points coincide.
func NewLine(p0, p1 Point) (Line, error) {
	l := Line{p0, p1}
	if l.IsInf() || l.IsNaN() {
		return Line{}, ErrNonFinite
	}
	if l.Length() < DegenerateTolerance {
		return Line{}, ErrDegenerateCurve
	}
	return l, nil
}

func (l Line) Curve() Curve { return Curve{Kind: LineCurve, line: l} }

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Tangent(t float64) Vec2 {
	return l.P1.Sub(l.P0)
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Direction returns the unit vector pointing from P0 to P1.
func (l Line) Direction() Vec2 {
	return l.P1.Sub(l.P0).Normalize()
}

// Midpoint returns the point halfway along the line.
func (l Line) Midpoint() Point {
	return l.P0.Midpoint(l.P1)
}

func (l Line) Reversed() Line {
	return Line{l.P1, l.P0}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) IsClosed(tol float64) bool     { return isClosed(l, tol) }
func (l Line) IsDegenerate(tol float64) bool { return isDegenerate(l, tol) }

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}

// SignedArea returns the signed area of the triangle between the line and the
// origin. See [CubicBez.SignedArea].
func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}
