// Package sketch turns 2D profiles drawn from lines, arcs, circles and
// B-splines into validated closed boundaries, and lifts those boundaries into
// space as wires of edges and shared vertices, ready for a solid modelling
// kernel to build faces and solids from.
//
// # Curves and loops
//
// The four curve primitives are [Line], [Arc], [Circle] and [BSpline]. They
// all implement [SketchCurve], and [Curve] holds any one of them. A [Loop] is
// a closed cycle of curves: every curve ends where the next one starts, to
// within a tolerance. Loops are usually drawn with a [Builder],
//
//	loop, err := sketch.Builder{}.
//		MoveTo(sketch.Pt(0, 0)).
//		LineTo(sketch.Pt(10, 0)).
//		ArcTo(sketch.Pt(10, 10), sketch.Pt(10, 5), true).
//		LineTo(sketch.Pt(0, 10)).
//		Close()
//
// or come from the shape library ([Rectangle], [RoundedRectangle],
// [RegularPolygon], [Slot] and others).
//
// A [Sketch] combines an outer loop with holes.
//
// # Lifting into space
//
// A [Plane] maps sketch coordinates into space. [Loop.Wire] lifts a loop onto
// a plane and returns a [Wire], whose edges share [Vertex] values by
// identity. Arcs become exact rational B-splines (see [ArcToRational]).
//
// Building faces and solids is the job of a [Kernel]; [BuildFace], [Extrude]
// and [Revolve] drive one.
//
// # Tolerances
//
// The package works with the tolerances [PointTolerance], [AngleTolerance],
// [LengthTolerance], [HealTolerance] and [DegenerateTolerance]. Operations
// that compare distances, such as [Loop.Validate] and [Loop.HealGaps], take
// the tolerance to use as an argument.
//
// # Drawing
//
// Loops and sketches can be converted to Bézier paths ([Loop.PathElements]),
// flattened to lines ([Flatten], [Polylines]) and written as SVG path data
// ([SVG]).
package sketch
