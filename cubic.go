package sketch

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

// Eval evaluates the Bézier at t using the Bernstein form.
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	v := Vec2(c.P0).Mul(mt * mt * mt).
		Add(Vec2(c.P1).Mul(mt * mt * 3.0).
			Add(Vec2(c.P2).Mul(mt * 3.0).
				Add(Vec2(c.P3).Mul(t)).
				Mul(t)).
			Mul(t))
	return Point(v)
}

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0, P1, P2 Point
}

// Raise returns the cubic Bézier that traces the same curve as q.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

// SignedArea returns the signed area under the curve, in the sense that
// summing it over a closed path gives the path's area: positive when the path
// runs counter-clockwise in a y-up space.
func (c CubicBez) SignedArea() float64 {
	v := c.P0.X*(6.0*c.P1.Y+3.0*c.P2.Y+c.P3.Y) +
		3.0*(c.P1.X*(-2.0*c.P0.Y+c.P2.Y+c.P3.Y)-c.P2.X*(c.P0.Y+c.P1.Y-2.0*c.P3.Y)) -
		c.P3.X*(c.P0.Y+3.0*c.P1.Y+6.0*c.P2.Y)
	return v * (1.0 / 20.0)
}
