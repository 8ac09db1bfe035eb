package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const plate = `
outer:
  shape: {kind: rectangle, corner: [0, 0], width: 10, height: 5}
holes:
  - shape: {kind: circle, center: [3, 2.5], radius: 1}
    reverse: true
`

func writeSketch(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plate.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(src)), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()
	err := Execute(args)
	return buf.String(), err
}

func contains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output doesn't contain %q:\n%s", want, out)
		}
	}
}

func TestHelp(t *testing.T) {
	out, err := run(t)
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out, "Commands:", "validate", "geojson", "import")

	out, err = run(t, "help", "dxf")
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out, "sketchwire dxf -o FILE")

	out, err = run(t, "svg", "-h")
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out, "-tolerance T")

	out, err = run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out, Version)
}

func TestErrors(t *testing.T) {
	path := writeSketch(t, plate)
	for _, args := range [][]string{
		{"frobnicate"},
		{"validate"},
		{"validate", path, path},
		{"validate", filepath.Join(t.TempDir(), "missing.yaml")},
		{"png", path},
		{"dxf", path},
		{"svg", "-bogus", path},
		{"svg", "-tolerance", "0", path},
		{"svg", "-tolerance", "-1", path},
		{"validate", "-tolerance", "0", path},
		{"geojson", "-tolerance", "-0.5", path},
		{"dxf", "-o", filepath.Join(t.TempDir(), "out.dxf"), "-tolerance", "0", path},
	} {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%q succeeded", args)
		}
	}
}

func TestValidate(t *testing.T) {
	path := writeSketch(t, plate)
	out, err := run(t, "validate", path)
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out, path+": ok", "outer     4 curves", "hole 0    1 curves", "ccw", "cw")

	bad := writeSketch(t, `
outer:
  shape: {kind: rectangle, corner: [0, 0], width: 10, height: 5}
holes:
  - shape: {kind: circle, center: [30, 2.5], radius: 1}
    reverse: true
`)
	if _, err := run(t, "validate", bad); err == nil {
		t.Error("hole outside the outer boundary was accepted")
	}
}

func TestWire(t *testing.T) {
	out, err := run(t, "wire", writeSketch(t, plate))
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out, "outer: 4 edges", "hole 0: 2 edges", "line    v0(0, 0, 0) -> v1(10, 0, 0)", "circle")
}

func TestSVG(t *testing.T) {
	out, err := run(t, "svg", writeSketch(t, plate))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("not an SVG document:\n%s", out)
	}
	contains(t, out, `fill-rule="evenodd"`, "M0,0 L10,0 L10,5 L0,5 L0,0 Z")
}

func TestPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plate.png")
	if _, err := run(t, "png", "-o", out, writeSketch(t, plate)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, [2]int{256, 136}, [2]int{cfg.Width, cfg.Height})
}

func TestDXF(t *testing.T) {
	for _, polylines := range []bool{false, true} {
		out := filepath.Join(t.TempDir(), "plate.dxf")
		args := []string{"dxf", writeSketch(t, plate), "-o", out}
		if polylines {
			args = append(args, "-polylines")
		}
		if _, err := run(t, args...); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if polylines {
			contains(t, string(data), "LWPOLYLINE", "HOLES")
		} else {
			contains(t, string(data), "LINE", "CIRCLE", "OUTER", "HOLES")
		}
	}
}

func TestGeoJSON(t *testing.T) {
	out, err := run(t, "geojson", writeSketch(t, plate))
	if err != nil {
		t.Fatal(err)
	}
	var fc struct {
		Type     string
		Features []struct {
			Geometry struct {
				Type        string
				Coordinates [][][2]float64
			}
			Properties map[string]any
		}
	}
	if err := json.Unmarshal([]byte(out), &fc); err != nil {
		t.Fatal(err)
	}
	diff(t, "FeatureCollection", fc.Type)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}
	f := fc.Features[0]
	diff(t, "Polygon", f.Geometry.Type)
	diff(t, 2, len(f.Geometry.Coordinates))
	diff(t, map[string]any{"name": "plate", "index": 0.0, "holes": 1.0}, f.Properties,
		cmpopts.IgnoreMapEntries(func(k string, _ any) bool { return k == "area" }))
	if area, _ := f.Properties["area"].(float64); area < 46.8 || area > 47 {
		t.Errorf("got area %g, want about %g", area, 50-3.1416)
	}
}

func TestImport(t *testing.T) {
	out, err := run(t, "import", filepath.Join("..", "..", "..", "dxfio", "testdata", "plate.dxf"))
	if err != nil {
		t.Fatal(err)
	}
	contains(t, out,
		"loop 0: layer OUTER, 4 curves",
		"loop 2: layer HOLES, 3 curves",
		"skipped 2 open or degenerate polylines",
		"sketch: 2 holes, area 48.5",
	)

	out, err = run(t, "import", "-layer", "SKETCH", filepath.Join("..", "..", "..", "dxfio", "testdata", "plate.dxf"))
	if err == nil {
		t.Errorf("importing only open polylines succeeded:\n%s", out)
	}
}

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}
