package sketch

import (
	"errors"
	"fmt"
)

var (
	ErrDegeneratePlane  = errors.New("sketch: degenerate plane: x and y directions are collinear or zero-length")
	ErrEmptyLoop        = errors.New("sketch: loop has no curves")
	ErrDegenerateCurve  = errors.New("sketch: degenerate curve: zero or near-zero length")
	ErrZeroSweep        = errors.New("sketch: invalid arc: sweep angle is zero")
	ErrCollinearPoints  = errors.New("sketch: cannot construct arc through three collinear points")
	ErrUnboundedSpline  = errors.New("sketch: unbounded spline parameter")
	ErrInvalidDegree    = errors.New("sketch: spline degree must be at least 1")
	ErrInvalidKnots     = errors.New("sketch: knot vector has the wrong length or is decreasing")
	ErrNoStartingPoint  = errors.New("sketch: builder has no starting point: call MoveTo first")
	ErrCannotCloseEmpty = errors.New("sketch: cannot close loop: need at least one curve")
	ErrCircleInLoop     = errors.New("sketch: a circle can only be the sole curve of a loop")
	ErrClosedEdge       = errors.New("sketch: edge starts and ends at the same vertex")
	ErrNonFinite        = errors.New("sketch: coordinate or angle is infinite or NaN")
)

// OpenLoopError reports the first junction of a loop whose gap exceeds the
// tolerance. Index is the curve whose end does not meet the next curve's start.
type OpenLoopError struct {
	Index int
	Gap   float64
}

func (e *OpenLoopError) Error() string {
	return fmt.Sprintf("sketch: loop is not closed: gap of %.6g at curve index %d", e.Gap, e.Index)
}

// RadiusError reports a non-positive arc or circle radius.
type RadiusError struct {
	// Circle is true if the radius was given for a circle, false for an arc.
	Circle bool
	Radius float64
}

func (e *RadiusError) Error() string {
	if e.Circle {
		return fmt.Sprintf("sketch: invalid circle radius: must be positive, got %g", e.Radius)
	}
	return fmt.Sprintf("sketch: invalid arc radius: must be positive, got %g", e.Radius)
}

// RadiusMismatchError is returned when the start and end of an arc are not
// equidistant from its center.
type RadiusMismatchError struct {
	R1, R2 float64
}

func (e *RadiusMismatchError) Error() string {
	return fmt.Sprintf("sketch: invalid arc: start and end points are not equidistant from center (r1=%g, r2=%g)", e.R1, e.R2)
}

type ControlPointsError struct {
	Min    int
	Degree int
	Got    int
}

func (e *ControlPointsError) Error() string {
	return fmt.Sprintf("sketch: invalid B-spline: need at least %d control points for degree %d, got %d", e.Min, e.Degree, e.Got)
}

// EdgeError wraps a failure to build the edge for curve Index of a loop.
type EdgeError struct {
	Index int
	Err   error
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("sketch: edge %d: %v", e.Index, e.Err)
}

func (e *EdgeError) Unwrap() error { return e.Err }

// KernelError wraps an error returned by a [Kernel].
type KernelError struct {
	// Op names the kernel operation: "face", "boundary", "extrude" or "revolve".
	Op  string
	Err error
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("sketch: kernel %s: %v", e.Op, e.Err)
}

func (e *KernelError) Unwrap() error { return e.Err }
