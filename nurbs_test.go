package sketch

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

var zAxis = r3.Vec{Z: 1}

func checkOnCircle(t *testing.T, c Curve3, center r3.Vec, radius float64) {
	t.Helper()
	for i := range 101 {
		pt := c.Eval(float64(i) / 100)
		if d := r3.Norm(r3.Sub(pt, center)); !near(d, radius, 1e-12) {
			t.Errorf("t=%g: distance from center is %g, want %g", float64(i)/100, d, radius)
		}
	}
}

func TestArcToRationalQuarter(t *testing.T) {
	c, err := ArcToRational(r3.Vec{}, zAxis, r3.Vec{X: 1}, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Points) != 3 {
		t.Fatalf("got %d control points, want 3", len(c.Points))
	}
	diff(t, []float64{0, 0, 0, 1, 1, 1}, c.Knots)
	diff(t, []float64{1, math.Sqrt2 / 2, 1}, c.Weights, approx(1e-15))
	diff(t, r3.Vec{X: 1, Y: 1}, c.Points[1], approx(1e-15))

	diff(t, r3.Vec{X: 1}, c.Start())
	diff(t, r3.Vec{Y: 1}, c.End(), approx(1e-15))
	diff(t, r3.Vec{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, c.Eval(0.5), approx(1e-15))
	checkOnCircle(t, c, r3.Vec{}, 1)
}

func TestArcToRationalFullTurn(t *testing.T) {
	center := r3.Vec{X: 1, Y: 2, Z: 3}
	c, err := ArcToRational(center, zAxis, r3.Vec{X: 3, Y: 2, Z: 3}, 2*math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Points) != 9 || len(c.Weights) != 9 {
		t.Fatalf("got %d points and %d weights, want 9", len(c.Points), len(c.Weights))
	}
	diff(t, []float64{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}, c.Knots)
	checkOnCircle(t, c, center, 2)
	diff(t, c.Start(), c.End(), approx(1e-12))

	// Sweeps beyond a full turn are clamped.
	d, err := ArcToRational(center, zAxis, r3.Vec{X: 3, Y: 2, Z: 3}, 3*math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, c, d)
}

func TestArcToRationalClockwise(t *testing.T) {
	c, err := ArcToRational(r3.Vec{}, zAxis, r3.Vec{X: 1}, -3*math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Points) != 7 {
		t.Errorf("got %d control points, want 7", len(c.Points))
	}
	diff(t, r3.Vec{Y: 1}, c.End(), approx(1e-12))
	// Clockwise, the arc passes through -y first.
	diff(t, r3.Vec{Y: -1}, c.Eval(1.0/3), approx(1e-12))
	checkOnCircle(t, c, r3.Vec{}, 1)
}

func TestArcToRationalTilted(t *testing.T) {
	// An arc in the plane x = 0, turning from +y towards +z.
	c, err := ArcToRational(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 5}, math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, r3.Vec{Z: 5}, c.Eval(0.5), approx(1e-12))
	diff(t, r3.Vec{Y: -5}, c.End(), approx(1e-12))
	checkOnCircle(t, c, r3.Vec{}, 5)
}

func TestArcToRationalErrors(t *testing.T) {
	_, err := ArcToRational(r3.Vec{X: 1}, zAxis, r3.Vec{X: 1}, math.Pi)
	var rerr *RadiusError
	if !errors.As(err, &rerr) {
		t.Errorf("got error %v, want radius error", err)
	}
	if _, err := ArcToRational(r3.Vec{}, zAxis, r3.Vec{X: 1}, 0); !errors.Is(err, ErrZeroSweep) {
		t.Errorf("got error %v, want %v", err, ErrZeroSweep)
	}
	if _, err := ArcToRational(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 1}, 1); !errors.Is(err, ErrDegenerateCurve) {
		t.Errorf("got error %v, want %v", err, ErrDegenerateCurve)
	}
}

func TestHomogeneousPoints(t *testing.T) {
	c, err := ArcToRational(r3.Vec{}, zAxis, r3.Vec{X: 2}, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	w := math.Sqrt2 / 2
	want := [][4]float64{
		{2, 0, 0, 1},
		{2 * w, 2 * w, 0, w},
		{0, 2, 0, 1},
	}
	diff(t, want, c.HomogeneousPoints(), approx(1e-15))
}

func TestSplineCurve3(t *testing.T) {
	s, err := NewBSpline([]Point{{0, 0}, {1, 2}, {3, 2}, {4, 0}, {6, 1}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	p := PlaneXYAt(2)
	pts := make([]r3.Vec, 0, 5)
	for _, pt := range s.ControlPoints() {
		pts = append(pts, p.Lift(pt))
	}
	c := &SplineCurve3{Degree: 3, Knots: s.Knots(), Points: pts}
	for i := range 11 {
		tt := float64(i) / 10
		diff(t, p.Lift(s.Eval(tt)), c.Eval(tt), approx(1e-12))
	}

	seg := Segment3{r3.Vec{}, r3.Vec{X: 2, Y: 4, Z: 6}}
	diff(t, r3.Vec{X: 1, Y: 2, Z: 3}, seg.Eval(0.5))
}
