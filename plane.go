package sketch

import "gonum.org/v1/gonum/spatial/r3"

// Plane places the sketch plane in space. A 2D point (x, y) lifts to
// Origin + x·XDir + y·YDir.
//
// The directions are normalized but not orthogonalized. Lifting and
// projecting are only inverse to each other, and only undistorted, when the
// directions are perpendicular.
type Plane struct {
	origin r3.Vec
	xDir   r3.Vec
	yDir   r3.Vec
}

// NewPlane returns the plane through origin spanned by xDir and yDir. It fails
// with [ErrDegeneratePlane] if the directions are collinear or zero-length.
func NewPlane(origin, xDir, yDir r3.Vec) (Plane, error) {
	if r3.Norm(r3.Cross(xDir, yDir)) < DegenerateTolerance {
		return Plane{}, ErrDegeneratePlane
	}
	return Plane{
		origin: origin,
		xDir:   r3.Unit(xDir),
		yDir:   r3.Unit(yDir),
	}, nil
}

// PlaneXY returns the plane z = 0 with the usual orientation.
func PlaneXY() Plane {
	return Plane{xDir: r3.Vec{X: 1}, yDir: r3.Vec{Y: 1}}
}

// PlaneXZ returns the plane y = 0, with sketch y mapped to z.
func PlaneXZ() Plane {
	return Plane{xDir: r3.Vec{X: 1}, yDir: r3.Vec{Z: 1}}
}

// PlaneYZ returns the plane x = 0, with sketch x mapped to y and sketch y
// mapped to z.
func PlaneYZ() Plane {
	return Plane{xDir: r3.Vec{Y: 1}, yDir: r3.Vec{Z: 1}}
}

// PlaneXYAt returns the plane parallel to PlaneXY at height z.
func PlaneXYAt(z float64) Plane {
	p := PlaneXY()
	p.origin.Z = z
	return p
}

// PlaneFromPoints returns the plane through p0, p1 and p2, with its origin at
// p0, its x direction towards p1, and its y direction perpendicular to that,
// on the side of p2.
func PlaneFromPoints(p0, p1, p2 r3.Vec) (Plane, error) {
	x := r3.Sub(p1, p0)
	n := r3.Cross(x, r3.Sub(p2, p0))
	if r3.Norm(x) < DegenerateTolerance || r3.Norm(n) < DegenerateTolerance {
		return Plane{}, ErrDegeneratePlane
	}
	return NewPlane(p0, x, r3.Cross(r3.Unit(n), r3.Unit(x)))
}

func (p Plane) Origin() r3.Vec { return p.origin }
func (p Plane) XDir() r3.Vec   { return p.xDir }
func (p Plane) YDir() r3.Vec   { return p.yDir }

// Normal returns the unit normal XDir × YDir.
func (p Plane) Normal() r3.Vec {
	return r3.Unit(r3.Cross(p.xDir, p.yDir))
}

// Lift maps a sketch point into space.
func (p Plane) Lift(pt Point) r3.Vec {
	return r3.Add(p.origin, r3.Add(r3.Scale(pt.X, p.xDir), r3.Scale(pt.Y, p.yDir)))
}

// Project maps a point in space back onto the sketch plane. It is the inverse
// of Lift for planes with perpendicular directions.
func (p Plane) Project(v r3.Vec) Point {
	d := r3.Sub(v, p.origin)
	return Pt(r3.Dot(d, p.xDir), r3.Dot(d, p.yDir))
}

// Points returns three non-collinear points spanning the plane: the origin
// and the origin offset by each direction.
func (p Plane) Points() (r3.Vec, r3.Vec, r3.Vec) {
	return p.origin, r3.Add(p.origin, p.xDir), r3.Add(p.origin, p.yDir)
}

// check reports whether p is usable, which the zero Plane isn't.
func (p Plane) check() error {
	if r3.Norm(r3.Cross(p.xDir, p.yDir)) < DegenerateTolerance {
		return ErrDegeneratePlane
	}
	return nil
}
