package sketch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a point shared by the edges of a wire. Edges that meet refer to
// the same *Vertex; connectivity is by identity, not by coordinates.
type Vertex struct {
	// ID is the vertex's index within its wire.
	ID    int
	Point r3.Vec
}

func (v *Vertex) String() string {
	return fmt.Sprintf("v%d(%g, %g, %g)", v.ID, v.Point.X, v.Point.Y, v.Point.Z)
}

// Edge is a curve in space running between two distinct vertices.
type Edge struct {
	// Kind is the kind of sketch curve the edge was built from. Both halves
	// of a split circle have Kind CircleCurve.
	Kind  CurveKind
	Start *Vertex
	End   *Vertex
	Curve Curve3
}

// EndpointError reports an edge curve that doesn't begin or end at its
// vertex.
type EndpointError struct {
	Vertex   *Vertex
	Distance float64
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("sketch: edge curve misses vertex %d by %g", e.Vertex.ID, e.Distance)
}

// NewEdge returns the edge from start to end along c. It fails with
// [ErrClosedEdge] if start and end are the same vertex, and with an
// [*EndpointError] if c doesn't run from one to the other.
func NewEdge(kind CurveKind, start, end *Vertex, c Curve3) (*Edge, error) {
	if start == end {
		return nil, ErrClosedEdge
	}
	for _, m := range []struct {
		v  *Vertex
		pt r3.Vec
	}{{start, c.Start()}, {end, c.End()}} {
		d := r3.Norm(r3.Sub(m.v.Point, m.pt))
		if !(d <= edgeTolerance(m.v.Point)) {
			return nil, &EndpointError{Vertex: m.v, Distance: d}
		}
	}
	return &Edge{Kind: kind, Start: start, End: end, Curve: c}, nil
}

// edgeTolerance is how far an edge curve may miss its vertex. It admits the
// junction gaps a loop accepts, plus rounding relative to the magnitude of
// the coordinates.
func edgeTolerance(pt r3.Vec) float64 {
	return 2 * HealTolerance * max(1, r3.Norm(pt))
}

// Wire is a closed chain of edges, each ending at the vertex the next one
// starts from.
type Wire struct {
	Edges []*Edge
}

func (w *Wire) Len() int { return len(w.Edges) }

// Vertices returns the wire's vertices, in order.
func (w *Wire) Vertices() []*Vertex {
	out := make([]*Vertex, len(w.Edges))
	for i, e := range w.Edges {
		out[i] = e.Start
	}
	return out
}

// IsClosed reports whether every edge ends at the vertex the following edge
// starts at, the last edge wrapping around to the first.
func (w *Wire) IsClosed() bool {
	if len(w.Edges) == 0 {
		return false
	}
	for i, e := range w.Edges {
		if e.End != w.Edges[(i+1)%len(w.Edges)].Start {
			return false
		}
	}
	return true
}

// Wire lifts the loop onto p and returns it as a closed wire.
//
// Each curve starts at a vertex placed at its lifted start point, and ends at
// the vertex of the following curve. A loop consisting of one full circle is
// split into two half circles meeting at opposite vertices. Circles are
// rejected anywhere else with [ErrCircleInLoop]. Lines become segments, arcs
// become rational curves (see [ArcToRational]) and B-splines keep their
// lifted control points and degree on a fresh uniform knot vector.
//
// Failures to build an edge are returned as an [*EdgeError] naming the curve.
func (l Loop) Wire(p Plane) (*Wire, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	n := len(l.curves)
	if n == 0 {
		return nil, ErrEmptyLoop
	}
	if n == 1 {
		if c, ok := fullTurn(l.curves[0]); ok {
			return circleWire(c, p)
		}
	}

	verts := make([]*Vertex, n)
	for i, c := range l.curves {
		verts[i] = &Vertex{ID: i, Point: p.Lift(c.Start())}
	}
	w := &Wire{Edges: make([]*Edge, 0, n)}
	for i, c := range l.curves {
		start, end := verts[i], verts[(i+1)%n]
		geom, err := liftCurve(c, start, end, p)
		if err != nil {
			return nil, &EdgeError{Index: i, Err: err}
		}
		e, err := NewEdge(c.Kind, start, end, geom)
		if err != nil {
			return nil, &EdgeError{Index: i, Err: err}
		}
		w.Edges = append(w.Edges, e)
	}
	return w, nil
}

// fullTurn returns the circle traced by c, if c is a circle or an arc
// sweeping a full turn.
func fullTurn(c Curve) (Circle, bool) {
	switch c.Kind {
	case CircleCurve:
		return c.circle, true
	case ArcCurve:
		a := c.arc
		if math.Abs(math.Abs(a.sweepAngle)-2*math.Pi) < AngleTolerance {
			return Circle{center: a.center, radius: a.radius, seam: a.startAngle, ccw: a.sweepAngle > 0}, true
		}
	}
	return Circle{}, false
}

func liftCurve(c Curve, start, end *Vertex, p Plane) (Curve3, error) {
	switch c.Kind {
	case LineCurve:
		return Segment3{start.Point, end.Point}, nil
	case ArcCurve:
		a := c.arc
		return ArcToRational(p.Lift(a.center), p.Normal(), start.Point, a.sweepAngle)
	case CircleCurve:
		return nil, ErrCircleInLoop
	case BSplineCurve:
		s := c.spline
		pts := make([]r3.Vec, len(s.points))
		for i, pt := range s.points {
			pts[i] = p.Lift(pt)
		}
		return &SplineCurve3{
			Degree: s.degree,
			Knots:  uniformKnots(len(pts), s.degree),
			Points: pts,
		}, nil
	default:
		panic(fmt.Sprintf("unhandled case %v", c.Kind))
	}
}

// circleWire splits a circle into two half circles, since an edge may not
// start and end at the same vertex.
func circleWire(c Circle, p Plane) (*Wire, error) {
	center := p.Lift(c.center)
	normal := p.Normal()
	v0 := &Vertex{ID: 0, Point: p.Lift(c.Start())}
	v1 := &Vertex{ID: 1, Point: r3.Sub(center, r3.Sub(v0.Point, center))}
	sweep := math.Pi
	if !c.ccw {
		sweep = -math.Pi
	}
	w := &Wire{}
	for i, vs := range [2][2]*Vertex{{v0, v1}, {v1, v0}} {
		geom, err := ArcToRational(center, normal, vs[0].Point, sweep)
		if err != nil {
			return nil, &EdgeError{Index: i, Err: err}
		}
		e, err := NewEdge(CircleCurve, vs[0], vs[1], geom)
		if err != nil {
			return nil, &EdgeError{Index: i, Err: err}
		}
		w.Edges = append(w.Edges, e)
	}
	return w, nil
}
