package sketch

import (
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sketch is a planar profile: an outer boundary and any number of holes.
//
// Nothing checks that the holes lie inside the outer boundary or that they
// don't overlap; that is left to the caller and to the kernel building the
// face. See the polygon package for such checks.
type Sketch struct {
	Outer Loop
	Holes []Loop
}

func NewSketch(outer Loop, holes ...Loop) Sketch {
	return Sketch{Outer: outer, Holes: slices.Clone(holes)}
}

// AddHole appends a hole to the sketch.
func (s *Sketch) AddHole(hole Loop) {
	s.Holes = append(s.Holes, hole)
}

// Loops returns the outer boundary followed by the holes.
func (s Sketch) Loops() []Loop {
	return append([]Loop{s.Outer}, s.Holes...)
}

// Validate validates every loop with tol. Loops are checked concurrently;
// if several fail, the error of the first failing loop in [Sketch.Loops]
// order is returned, so the result doesn't depend on scheduling.
func (s Sketch) Validate(tol float64) error {
	loops := s.Loops()
	errs := make([]error, len(loops))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range loops {
		g.Go(func() error {
			errs[i] = l.Validate(tol)
			return nil
		})
	}
	g.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Wires lifts every loop onto p. The loops are converted concurrently and
// the first error in loop order is returned.
func (s Sketch) Wires(p Plane) (outer *Wire, holes []*Wire, err error) {
	loops := s.Loops()
	wires := make([]*Wire, len(loops))
	errs := make([]error, len(loops))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range loops {
		g.Go(func() error {
			wires[i], errs[i] = l.Wire(p)
			return nil
		})
	}
	g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return wires[0], wires[1:], nil
}

// BoundingBox returns the bounding box of the outer boundary.
func (s Sketch) BoundingBox() (Rect, bool) {
	return s.Outer.BoundingBox()
}

// Kernel is the solid modelling kernel that turns wires into faces and
// faces into solids. F is the kernel's face type and S its solid type.
type Kernel[F, S any] interface {
	// Face builds the planar face bounded by outer.
	Face(outer *Wire, plane Plane) (F, error)
	// AddBoundary cuts the hole bounded by hole out of face.
	AddBoundary(face F, hole *Wire) (F, error)
	// Extrude sweeps face along direction.
	Extrude(face F, direction r3.Vec) (S, error)
	// Revolve sweeps face by angle radians around the axis through origin
	// along direction.
	Revolve(face F, origin, direction r3.Vec, angle float64) (S, error)
}

// BuildFace lifts the sketch onto p and has k build the face it bounds.
// Errors from the kernel are wrapped in a [*KernelError].
func BuildFace[F, S any](k Kernel[F, S], s Sketch, p Plane) (F, error) {
	var zero F
	outer, holes, err := s.Wires(p)
	if err != nil {
		return zero, err
	}
	face, err := k.Face(outer, p)
	if err != nil {
		return zero, &KernelError{Op: "face", Err: err}
	}
	for _, h := range holes {
		face, err = k.AddBoundary(face, h)
		if err != nil {
			return zero, &KernelError{Op: "boundary", Err: err}
		}
	}
	return face, nil
}

// Extrude builds the sketch's face on p and sweeps it along direction.
func Extrude[F, S any](k Kernel[F, S], s Sketch, p Plane, direction r3.Vec) (S, error) {
	var zero S
	face, err := BuildFace(k, s, p)
	if err != nil {
		return zero, err
	}
	solid, err := k.Extrude(face, direction)
	if err != nil {
		return zero, &KernelError{Op: "extrude", Err: err}
	}
	return solid, nil
}

// Revolve builds the sketch's face on p and sweeps it by angle radians
// around the axis through origin along direction.
func Revolve[F, S any](k Kernel[F, S], s Sketch, p Plane, origin, direction r3.Vec, angle float64) (S, error) {
	var zero S
	face, err := BuildFace(k, s, p)
	if err != nil {
		return zero, err
	}
	solid, err := k.Revolve(face, origin, direction, angle)
	if err != nil {
		return zero, &KernelError{Op: "revolve", Err: err}
	}
	return solid, nil
}
