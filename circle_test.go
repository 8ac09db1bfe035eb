package sketch

import (
	"errors"
	"math"
	"testing"
)

func TestCircleExact(t *testing.T) {
	for _, r := range []float64{0.001, 1, 7.5, 1e6} {
		c, err := NewCircle(Pt(3, -2), r)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := c.Length(), 2*math.Pi*r; !near(got, want, 1e-10*max(1, r)) {
			t.Errorf("got length %v, want %v", got, want)
		}
		if d := c.Start().Distance(c.End()); d > 1e-10 {
			t.Errorf("start and end are %v apart", d)
		}
		if !c.IsClosed(0) {
			t.Error("circle isn't closed")
		}
	}
}

func TestCircleErrors(t *testing.T) {
	for _, r := range []float64{0, -1} {
		_, err := NewCircle(Pt(0, 0), r)
		var rerr *RadiusError
		if !errors.As(err, &rerr) || !rerr.Circle {
			t.Errorf("radius %v: got error %v, want circle radius error", r, err)
		}
	}
	if _, err := NewCircleThroughPoints(Pt(0, 0), Pt(1, 0), Pt(2, 0)); !errors.Is(err, ErrCollinearPoints) {
		t.Errorf("got error %v, want %v", err, ErrCollinearPoints)
	}
	if _, err := NewCircleFromDiameter(Pt(1, 1), Pt(1, 1)); err == nil {
		t.Error("expected error for zero diameter")
	}
}

func TestCircleConstructors(t *testing.T) {
	c, err := NewCircleThroughPoints(Pt(4, 3), Pt(-1, 8), Pt(-6, 3))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(-1, 3), c.Center(), approx(1e-12))
	diff(t, 5.0, c.Radius(), approx(1e-12))

	c, err = NewCircleFromCenterPoint(Pt(1, 1), Pt(1, 3))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(1, 3), c.Start(), approx(1e-15))
	diff(t, math.Pi/2, c.Seam(), approx(1e-15))

	c, err = NewCircleFromDiameter(Pt(-2, 0), Pt(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(0, 0), c.Center())
	diff(t, 4.0, c.Diameter())
	diff(t, 4*math.Pi, c.Area(), approx(1e-12))
	if !c.Contains(Pt(1, 1)) || c.Contains(Pt(2, 1)) {
		t.Error("wrong containment")
	}
}

func TestCircleReversed(t *testing.T) {
	c, err := NewCircleWithSeam(Pt(0, 0), 2, math.Pi/2, true)
	if err != nil {
		t.Fatal(err)
	}
	r := c.Reversed()
	if r.IsCCW() || r.Seam() != c.Seam() {
		t.Errorf("got ccw=%v seam=%v, want ccw=false seam=%v", r.IsCCW(), r.Seam(), c.Seam())
	}
	diff(t, c.Start(), r.Start())
	diff(t, Pt(-2, 0), c.Eval(0.25), approx(1e-12))
	diff(t, Pt(2, 0), r.Eval(0.25), approx(1e-12))
}

func TestCircleArc(t *testing.T) {
	c, err := NewCircleWithSeam(Pt(1, 0), 1, math.Pi, false)
	if err != nil {
		t.Fatal(err)
	}
	a := c.Arc()
	diff(t, -2*math.Pi, a.SweepAngle())
	diff(t, c.Start(), a.Start(), approx(1e-15))
	diff(t, c.Eval(0.3), a.Eval(0.3), approx(1e-15))
	diff(t, Rect{0, -1, 2, 1}, c.BoundingBox())
	diff(t, c.BoundingBox(), a.BoundingBox(), approx(1e-15))
}
