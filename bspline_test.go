package sketch

import (
	"errors"
	"testing"
)

func TestNewBSplineErrors(t *testing.T) {
	_, err := NewBSpline([]Point{{0, 0}, {1, 1}, {2, 0}}, 3)
	var cerr *ControlPointsError
	if !errors.As(err, &cerr) {
		t.Fatalf("got error %v, want control points error", err)
	}
	diff(t, &ControlPointsError{Min: 4, Degree: 3, Got: 3}, cerr)

	if _, err := NewBSpline([]Point{{0, 0}, {1, 1}}, 0); !errors.Is(err, ErrInvalidDegree) {
		t.Errorf("got error %v, want %v", err, ErrInvalidDegree)
	}
	if _, err := InterpolateBSpline([]Point{{0, 0}}, 3); !errors.As(err, &cerr) || cerr.Min != 2 {
		t.Errorf("got error %v, want control points error", err)
	}
}

func TestBSplineWithKnots(t *testing.T) {
	pts := []Point{{0, 0}, {1, 2}, {2, 0}}
	if _, err := NewBSplineWithKnots(pts, 2, []float64{0, 0, 0, 1, 1}); !errors.Is(err, ErrInvalidKnots) {
		t.Errorf("got error %v, want %v", err, ErrInvalidKnots)
	}
	if _, err := NewBSplineWithKnots(pts, 2, []float64{0, 0, 1, 0, 1, 1}); !errors.Is(err, ErrInvalidKnots) {
		t.Errorf("got error %v, want %v", err, ErrInvalidKnots)
	}
	if _, err := NewBSplineWithKnots(pts, 2, []float64{1, 1, 1, 1, 1, 1}); !errors.Is(err, ErrUnboundedSpline) {
		t.Errorf("got error %v, want %v", err, ErrUnboundedSpline)
	}

	// A knot vector on [2, 4] behaves like the uniform one on [0, 1].
	s, err := NewBSplineWithKnots(pts, 2, []float64{2, 2, 2, 4, 4, 4})
	if err != nil {
		t.Fatal(err)
	}
	u, err := NewBSpline(pts, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []float64{0, 0.25, 0.5, 1} {
		diff(t, u.Eval(tt), s.Eval(tt), approx(1e-12))
		diff(t, u.Tangent(tt), s.Tangent(tt), approx(1e-12))
	}
}

func TestUniformKnots(t *testing.T) {
	diff(t, []float64{0, 0, 0, 0, 1, 1, 1, 1}, uniformKnots(4, 3))
	diff(t, []float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1}, uniformKnots(5, 3))
	diff(t, []float64{0, 0, 1.0 / 3, 2.0 / 3, 1, 1}, uniformKnots(4, 1))
}

func TestBSplineEndpoints(t *testing.T) {
	pts := []Point{{0, 0}, {1, 3}, {4, 4}, {6, 1}, {7, 0}, {9, 2}}
	for degree := 1; degree <= 5; degree++ {
		s, err := NewBSpline(pts, degree)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, pts[0], s.Start(), approx(1e-12))
		diff(t, pts[len(pts)-1], s.End(), approx(1e-12))
	}
}

func TestBSplineDegreeOneIsPolyline(t *testing.T) {
	s, err := NewBSpline([]Point{{0, 0}, {3, 0}, {3, 4}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(3, 0), s.Eval(0.5), approx(1e-12))
	diff(t, Pt(1.5, 0), s.Eval(0.25), approx(1e-12))
	diff(t, 7.0, s.Length(), approx(1e-9))
}

func TestBSplineFromCubic(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 3), Pt(4, 3), Pt(5, 0)}
	s := NewBSplineFromCubic(c)
	for i := range 11 {
		tt := float64(i) / 10
		diff(t, c.Eval(tt), s.Eval(tt), approx(1e-12))
	}
}

func TestBSplineLength(t *testing.T) {
	s, err := NewBSpline([]Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 4.0, s.Length(), approx(1e-12))

	// A quarter circle's length, compared against a finely sampled polyline.
	q := NewBSplineFromCubic(CubicBez{Pt(1, 0), Pt(1, 0.55), Pt(0.55, 1), Pt(0, 1)})
	var poly float64
	prev := q.Eval(0)
	for i := 1; i <= 10000; i++ {
		pt := q.Eval(float64(i) / 10000)
		poly += prev.Distance(pt)
		prev = pt
	}
	diff(t, poly, q.Length(), approx(1e-7))
}

func TestBSplineAccessorsCopy(t *testing.T) {
	s, err := NewBSpline([]Point{{0, 0}, {1, 1}, {2, 0}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	pts := s.ControlPoints()
	pts[0] = Pt(100, 100)
	knots := s.Knots()
	knots[0] = -1
	diff(t, Pt(0, 0), s.ControlPoints()[0])
	diff(t, 0.0, s.Knots()[0])
	diff(t, 2, s.Degree())
}

func TestInterpolateBSplineLowersDegree(t *testing.T) {
	s, err := InterpolateBSpline([]Point{{0, 0}, {1, 1}, {2, 0}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if s.Degree() != 2 {
		t.Errorf("got degree %d, want 2", s.Degree())
	}
	s, err = InterpolateBSpline([]Point{{0, 0}, {1, 1}}, 3)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(0.5, 0.5), s.Eval(0.5), approx(1e-12))
}
