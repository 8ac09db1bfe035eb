package sketch

// Numeric tolerances used throughout the package. Operations whose outcome
// depends on a tolerance take it as a parameter; these are the values the
// package itself passes.
const (
	// PointTolerance is the distance below which two points are considered
	// coincident.
	PointTolerance = 1e-9
	// AngleTolerance is the smallest sweep angle, in radians, an arc may have.
	AngleTolerance = 1e-10
	// LengthTolerance is the smallest length a curve may have before it is
	// considered degenerate by loop validation.
	LengthTolerance = 1e-9
	// HealTolerance is the largest junction gap a loop accepts, and the
	// default upper bound for [Loop.HealGaps].
	HealTolerance = 1e-6
	// DegenerateTolerance guards divisions: radii, lengths, cross products
	// and determinants below it are treated as zero.
	DegenerateTolerance = 1e-12
)
