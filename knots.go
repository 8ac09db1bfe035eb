package sketch

import "math"

// uniformKnots returns the clamped uniform knot vector for n control points
// of the given degree: degree+1 zeros, evenly spaced interior knots, and
// degree+1 ones.
func uniformKnots(n, degree int) []float64 {
	knots := make([]float64, n+degree+1)
	interior := n - degree
	for i := 1; i < interior; i++ {
		knots[degree+i] = float64(i) / float64(interior)
	}
	for i := n; i < len(knots); i++ {
		knots[i] = 1
	}
	return knots
}

// validKnots checks that knots suits n control points of the given degree.
func validKnots(knots []float64, n, degree int) error {
	if len(knots) != n+degree+1 {
		return ErrInvalidKnots
	}
	for i, k := range knots {
		if math.IsInf(k, 0) || math.IsNaN(k) {
			return ErrUnboundedSpline
		}
		if i > 0 && k < knots[i-1] {
			return ErrInvalidKnots
		}
	}
	if !(knots[degree] < knots[n]) {
		return ErrUnboundedSpline
	}
	return nil
}

// knotDomain returns the parameter range over which a spline is defined.
func knotDomain(knots []float64, degree int) (float64, float64) {
	return knots[degree], knots[len(knots)-degree-1]
}

// findSpan returns the index i of the knot span [knots[i], knots[i+1]) that
// contains u, clamping u to the domain. The returned span is never empty.
func findSpan(knots []float64, degree int, u float64) int {
	n := len(knots) - degree - 1
	if u >= knots[n] {
		span := n - 1
		for span > degree && knots[span] == knots[span+1] {
			span--
		}
		return span
	}
	if u <= knots[degree] {
		span := degree
		for span < n-1 && knots[span] == knots[span+1] {
			span++
		}
		return span
	}
	lo, hi := degree, n
	mid := (lo + hi) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
		mid = (lo + hi) / 2
	}
	return mid
}

// basisFuncs returns the degree+1 non-vanishing basis functions at u, for the
// control points span-degree through span.
func basisFuncs(knots []float64, degree, span int, u float64) []float64 {
	u = max(knots[degree], min(u, knots[len(knots)-degree-1]))
	n := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	n[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := range j {
			tmp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}
