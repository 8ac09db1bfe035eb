package sketch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, and structs of floats such as points, with an
// absolute margin.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

func near(a, b, margin float64) bool {
	d := a - b
	return d <= margin && d >= -margin
}

func near3(a, b r3.Vec, margin float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= margin
}
