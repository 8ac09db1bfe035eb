package sketchfile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/sketch"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

const plate = `
plane:
  preset: xz
  origin: [0, 5, 0]
outer:
  shape: {kind: rounded_rectangle, corner: [0, 0], width: 40, height: 20, radius: 3}
holes:
  - shape: {kind: circle, center: [10, 10], radius: 4}
    reverse: true
  - path:
      - move: [25, 5]
      - horizontal: 8
      - arc_by_angle: {radius: 2, angle: 180, ccw: true}
      - horizontal: -8
    close: {center: [25, 7], ccw: true}
    reverse: true
extrude:
  direction: [0, -5, 0]
`

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(strings.TrimSpace(src)))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParse(t *testing.T) {
	doc := parse(t, plate)
	want := &Document{
		Plane: PlaneSpec{Preset: "xz", Origin: &Vec3{0, 5, 0}},
		Outer: Profile{Shape: &Shape{Kind: "rounded_rectangle", Width: 40, Height: 20, Radius: 3}},
		Holes: []Profile{
			{Shape: &Shape{Kind: "circle", Center: Point{10, 10}, Radius: 4}, Reverse: true},
			{
				Path: []Command{
					{Move: &Point{25, 5}},
					{Horizontal: ptr(8.0)},
					{ArcByAngle: &ArcByAngle{Radius: 2, Angle: 180, CCW: true}},
					{Horizontal: ptr(-8.0)},
				},
				Close:   &CloseArc{Center: Point{25, 7}, CCW: true},
				Reverse: true,
			},
		},
		Extrude: &ExtrudeSpec{Direction: Vec3{0, -5, 0}},
	}
	diff(t, want, doc)
}

func ptr[T any](v T) *T { return &v }

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"outer: {shape: {kind: circle, radius: 1, colour: red}}",
		"outer: {shape: {kind: circle, center: [1, 2, 3], radius: 1}}",
		"outer: [1, 2]",
		"frobnicate: true",
	} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestBuild(t *testing.T) {
	s, plane, err := parse(t, plate).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Holes) != 2 {
		t.Fatalf("got %d holes, want 2", len(s.Holes))
	}
	if !s.Outer.IsCCW() || s.Holes[0].IsCCW() || s.Holes[1].IsCCW() {
		t.Error("loops have the wrong orientation")
	}
	diff(t, r3.Vec{Y: 5}, plane.Origin())
	diff(t, r3.Vec{Z: 1}, plane.YDir())

	slot := s.Holes[1]
	if slot.Len() != 4 {
		t.Errorf("slot has %d curves, want 4", slot.Len())
	}
	diff(t, 16+4*math.Pi, slot.TotalLength(), cmpopts.EquateApprox(0, 1e-9))
}

func TestShapes(t *testing.T) {
	tests := []struct {
		shape  string
		curves int
	}{
		{"{kind: rectangle, corner: [0, 0], width: 2, height: 1}", 4},
		{"{kind: rectangle_centered, center: [0, 0], width: 2, height: 1}", 4},
		{"{kind: rounded_rectangle, corner: [0, 0], width: 4, height: 2, radius: 0.5}", 8},
		{"{kind: circle, center: [1, 1], radius: 1}", 1},
		{"{kind: polygon, center: [0, 0], radius: 1, sides: 5}", 5},
		{"{kind: hexagon, center: [0, 0], radius: 1}", 6},
		{"{kind: slot, center: [0, 0], length: 6, width: 2, horizontal: true}", 4},
		{"{kind: l, corner: [0, 0], width: 5, height: 5, thickness: 1}", 6},
		{"{kind: t, center: [0, 0], flange_width: 6, flange_thickness: 1, web_height: 5, web_thickness: 1}", 8},
	}
	for _, tt := range tests {
		doc := parse(t, "outer: {shape: "+tt.shape+"}")
		s, _, err := doc.Build()
		if err != nil {
			t.Errorf("%s: %v", tt.shape, err)
			continue
		}
		if s.Outer.Len() != tt.curves {
			t.Errorf("%s: got %d curves, want %d", tt.shape, s.Outer.Len(), tt.curves)
		}
	}

	_, _, err := parse(t, "outer: {shape: {kind: blob}}").Build()
	if err == nil || !strings.Contains(err.Error(), `unknown shape "blob"`) {
		t.Errorf("got error %v", err)
	}
}

func TestPaths(t *testing.T) {
	doc := parse(t, `
outer:
  path:
    - move: [0, 0]
    - line: [4, 0]
    - quad: {ctrl: [5, 0], end: [5, 1]}
    - vertical: 2
    - arc_through: {mid: [4, 4], end: [3, 3]}
    - cubic: {ctrl1: [2, 3], ctrl2: [2, 4], end: [1, 4]}
    - line_by: [-1, 0]
    - spline: [[-1, 3], [0, 2], [0, 1]]
`)
	s, _, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]sketch.CurveKind, 0, s.Outer.Len())
	for _, c := range s.Outer.All() {
		kinds = append(kinds, c.Kind)
	}
	want := []sketch.CurveKind{
		sketch.LineCurve, sketch.BSplineCurve, sketch.LineCurve, sketch.ArcCurve,
		sketch.BSplineCurve, sketch.LineCurve, sketch.BSplineCurve, sketch.LineCurve,
	}
	diff(t, want, kinds)
}

func TestPathErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"outer: {}", ErrNoProfile},
		{"outer: {shape: {kind: circle, radius: 1}, path: [{move: [0, 0]}]}", ErrNoProfile},
		{"outer: {shape: {kind: circle, radius: 1}, close: {center: [0, 0], ccw: true}}", ErrShapeClose},
		{"outer: {path: [{move: [0, 0], line: [1, 1]}]}", ErrCommand},
		{"outer: {path: [{}]}", ErrCommand},
		{"outer: {path: [{line: [1, 1]}]}", sketch.ErrNoStartingPoint},
		{"outer: {path: [{move: [1, 1]}]}", sketch.ErrCannotCloseEmpty},
		{"outer: {path: [{move: [0, 0]}, {line: [0, 0]}]}", sketch.ErrDegenerateCurve},
	}
	for _, tt := range tests {
		_, _, err := parse(t, tt.src).Build()
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got error %v, want %v", tt.src, err, tt.want)
		}
	}
}

func TestCloseArcMismatch(t *testing.T) {
	_, _, err := parse(t, "outer: {path: [{move: [0, 0]}, {line: [1, 0]}], close: {center: [0, 1], ccw: true}}").Build()
	var rerr *sketch.RadiusMismatchError
	if !errors.As(err, &rerr) {
		t.Errorf("got error %v, want radius mismatch", err)
	}
}

func TestHeal(t *testing.T) {
	const src = `
outer:
  path:
    - move: [0, 0]
    - line: [10, 0]
    - move: [10, 0.001]
    - line: [10, 5]
    - line: [0, 5]
`
	_, _, err := parse(t, src).Build()
	var oerr *sketch.OpenLoopError
	if !errors.As(err, &oerr) {
		t.Fatalf("got error %v, want open loop error", err)
	}
	diff(t, 0, oerr.Index)

	s, _, err := parse(t, src+"tolerance: {heal: 0.01}\n").Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Outer.Validate(sketch.PointTolerance); err != nil {
		t.Errorf("loop wasn't healed: %v", err)
	}
}

func TestPlanes(t *testing.T) {
	tests := []struct {
		spec   PlaneSpec
		normal r3.Vec
	}{
		{PlaneSpec{}, r3.Vec{Z: 1}},
		{PlaneSpec{Preset: "xy"}, r3.Vec{Z: 1}},
		{PlaneSpec{Preset: "xz"}, r3.Vec{Y: -1}},
		{PlaneSpec{Preset: "yz"}, r3.Vec{X: 1}},
		{PlaneSpec{XDir: &Vec3{0, 1, 0}, YDir: &Vec3{-1, 0, 0}}, r3.Vec{Z: 1}},
	}
	for _, tt := range tests {
		p, err := tt.spec.Build()
		if err != nil {
			t.Errorf("%+v: %v", tt.spec, err)
			continue
		}
		diff(t, tt.normal, p.Normal())
	}

	for _, spec := range []PlaneSpec{
		{Preset: "xw"},
		{XDir: &Vec3{1, 0, 0}},
		{XDir: &Vec3{1, 0, 0}, YDir: &Vec3{2, 0, 0}},
	} {
		if _, err := spec.Build(); err == nil {
			t.Errorf("%+v: expected an error", spec)
		}
	}
}

type recordingKernel struct{}

type solid struct {
	op    string
	dir   r3.Vec
	angle float64
	holes int
}

func (k *recordingKernel) Face(outer *sketch.Wire, plane sketch.Plane) (int, error) {
	return 0, nil
}

func (k *recordingKernel) AddBoundary(face int, hole *sketch.Wire) (int, error) {
	return face + 1, nil
}

func (k *recordingKernel) Extrude(face int, direction r3.Vec) (solid, error) {
	return solid{op: "extrude", dir: direction, holes: face}, nil
}

func (k *recordingKernel) Revolve(face int, origin, direction r3.Vec, angle float64) (solid, error) {
	return solid{op: "revolve", dir: direction, angle: angle, holes: face}, nil
}

func TestApply(t *testing.T) {
	got, err := Apply[int, solid](&recordingKernel{}, parse(t, plate))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, solid{op: "extrude", dir: r3.Vec{Y: -5}, holes: 2}, got, cmp.AllowUnexported(solid{}))

	const revolve = `
outer: {shape: {kind: rectangle, corner: [2, 0], width: 1, height: 1}}
revolve: {axis: [0, 1, 0]}
`
	got, err = Apply[int, solid](&recordingKernel{}, parse(t, revolve))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, solid{op: "revolve", dir: r3.Vec{Y: 1}, angle: 2 * math.Pi}, got, cmp.AllowUnexported(solid{}))

	doc := parse(t, revolve+"extrude: {direction: [0, 0, 1]}\n")
	if _, err := Apply[int, solid](&recordingKernel{}, doc); !errors.Is(err, ErrOperations) {
		t.Errorf("got error %v, want %v", err, ErrOperations)
	}
	doc = parse(t, "outer: {shape: {kind: hexagon, center: [0, 0], radius: 1}}")
	if _, err := Apply[int, solid](&recordingKernel{}, doc); !errors.Is(err, ErrNoOperation) {
		t.Errorf("got error %v, want %v", err, ErrNoOperation)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate.yaml")
	if err := os.WriteFile(path, []byte(plate), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 2, len(doc.Holes))

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got error %v, want %v", err, os.ErrNotExist)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("outer: {shape: {knd: circle}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.HasPrefix(err.Error(), "failed to parse "+bad) {
		t.Errorf("got error %v", err)
	}
}
