package sketch

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve3 is a curve in space, parametrized over t ∈ [0, 1]. It is the
// geometry carried by an [Edge].
type Curve3 interface {
	Eval(t float64) r3.Vec
	Start() r3.Vec
	End() r3.Vec
}

var _ Curve3 = Segment3{}
var _ Curve3 = (*SplineCurve3)(nil)
var _ Curve3 = (*RationalCurve)(nil)

// Segment3 is a straight segment in space.
type Segment3 struct {
	P0, P1 r3.Vec
}

func (s Segment3) Start() r3.Vec { return s.P0 }
func (s Segment3) End() r3.Vec   { return s.P1 }

func (s Segment3) Eval(t float64) r3.Vec {
	return r3.Add(s.P0, r3.Scale(t, r3.Sub(s.P1, s.P0)))
}

// SplineCurve3 is a polynomial B-spline in space.
type SplineCurve3 struct {
	Degree int
	Knots  []float64
	Points []r3.Vec
}

func (c *SplineCurve3) Start() r3.Vec { return c.Eval(0) }
func (c *SplineCurve3) End() r3.Vec   { return c.Eval(1) }

func (c *SplineCurve3) Eval(t float64) r3.Vec {
	u0, u1 := knotDomain(c.Knots, c.Degree)
	u := u0 + t*(u1-u0)
	span := findSpan(c.Knots, c.Degree, u)
	var v r3.Vec
	for j, b := range basisFuncs(c.Knots, c.Degree, span, u) {
		v = r3.Add(v, r3.Scale(b, c.Points[span-c.Degree+j]))
	}
	return v
}

// RationalCurve is a rational B-spline (NURBS) curve in space. Points holds
// the Cartesian control points; Weights holds one weight per point.
type RationalCurve struct {
	Degree  int
	Knots   []float64
	Points  []r3.Vec
	Weights []float64
}

func (c *RationalCurve) Start() r3.Vec { return c.Eval(0) }
func (c *RationalCurve) End() r3.Vec   { return c.Eval(1) }

// Eval evaluates the curve by summing in homogeneous coordinates and
// projecting the result.
func (c *RationalCurve) Eval(t float64) r3.Vec {
	u0, u1 := knotDomain(c.Knots, c.Degree)
	u := u0 + t*(u1-u0)
	span := findSpan(c.Knots, c.Degree, u)
	var v r3.Vec
	var w float64
	for j, b := range basisFuncs(c.Knots, c.Degree, span, u) {
		i := span - c.Degree + j
		bw := b * c.Weights[i]
		v = r3.Add(v, r3.Scale(bw, c.Points[i]))
		w += bw
	}
	return r3.Scale(1/w, v)
}

// HomogeneousPoints returns the control points as (w·x, w·y, w·z, w).
func (c *RationalCurve) HomogeneousPoints() [][4]float64 {
	out := make([][4]float64, len(c.Points))
	for i, p := range c.Points {
		w := c.Weights[i]
		out[i] = [4]float64{p.X * w, p.Y * w, p.Z * w, w}
	}
	return out
}

// ArcToRational returns the rational quadratic B-spline that exactly traces
// the circular arc around center, starting at start and sweeping by sweep
// radians about normal (counter-clockwise when looking against normal).
//
// The arc is split into segments of at most a quarter turn. Each segment
// contributes its end points with weight 1 and a middle control point on the
// bisecting angle, at distance radius/w with weight w = cos(segment/2).
// Segments are joined by double knots, and the knot vector is clamped.
func ArcToRational(center, normal, start r3.Vec, sweep float64) (*RationalCurve, error) {
	rv := r3.Sub(start, center)
	radius := r3.Norm(rv)
	if radius < DegenerateTolerance {
		return nil, &RadiusError{Radius: radius}
	}
	if !(math.Abs(sweep) >= AngleTolerance) {
		return nil, ErrZeroSweep
	}
	sweep = max(-2*math.Pi, min(sweep, 2*math.Pi))
	xAxis := r3.Unit(rv)
	yDir := r3.Cross(normal, xAxis)
	if r3.Norm(yDir) < DegenerateTolerance {
		return nil, ErrDegenerateCurve
	}
	yAxis := r3.Unit(yDir)

	at := func(r, angle float64) r3.Vec {
		sin, cos := math.Sincos(angle)
		return r3.Add(center, r3.Add(r3.Scale(r*cos, xAxis), r3.Scale(r*sin, yAxis)))
	}

	n := max(int(math.Ceil(math.Abs(sweep)/(math.Pi/2))), 1)
	seg := sweep / float64(n)
	w := math.Cos(math.Abs(seg) / 2)

	c := &RationalCurve{
		Degree:  2,
		Knots:   make([]float64, 0, 2*n+4),
		Points:  make([]r3.Vec, 0, 2*n+1),
		Weights: make([]float64, 0, 2*n+1),
	}
	c.Knots = append(c.Knots, 0, 0, 0)
	for i := range n {
		a0 := float64(i) * seg
		if i == 0 {
			c.Points = append(c.Points, start)
		} else {
			c.Points = append(c.Points, at(radius, a0))
		}
		c.Points = append(c.Points, at(radius/w, a0+seg/2))
		c.Weights = append(c.Weights, 1, w)
		if i > 0 {
			k := float64(i) / float64(n)
			c.Knots = append(c.Knots, k, k)
		}
	}
	c.Points = append(c.Points, at(radius, sweep))
	c.Weights = append(c.Weights, 1)
	c.Knots = append(c.Knots, 1, 1, 1)
	return c, nil
}
