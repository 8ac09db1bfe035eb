// Package dxfio exchanges sketches with CAD programs through DXF files.
//
// Export writes lines, arcs and circles as the matching DXF entities and
// flattens B-splines into lightweight polylines. Import reads closed
// polylines back as loops of lines.
package dxfio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"honnef.co/go/sketch"
	"honnef.co/go/sketch/polygon"
)

// Layer names used by Export.
const (
	OuterLayer = "OUTER"
	HoleLayer  = "HOLES"
)

// DefaultTolerance is the flattening tolerance used when none is given.
const DefaultTolerance = 0.01

// Options controls Export.
type Options struct {
	// Tolerance is the maximum deviation of flattened curves. Zero means
	// DefaultTolerance.
	Tolerance float64
	// Polylines writes every loop as a single closed polyline instead of
	// one entity per curve.
	Polylines bool
}

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return DefaultTolerance
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Drawing returns a drawing of s, with the outer boundary on [OuterLayer]
// and the holes on [HoleLayer].
func Drawing(s sketch.Sketch, opts Options) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(OuterLayer, color.White, dxf.DefaultLineType, true); err != nil {
		return nil, err
	}
	if err := addLoop(d, s.Outer, opts); err != nil {
		return nil, fmt.Errorf("outer: %w", err)
	}
	if len(s.Holes) == 0 {
		return d, nil
	}
	if _, err := d.AddLayer(HoleLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return nil, err
	}
	for i, h := range s.Holes {
		if err := addLoop(d, h, opts); err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
	}
	return d, nil
}

func addLoop(d *drawing.Drawing, l sketch.Loop, opts Options) error {
	tol := opts.tolerance()
	if opts.Polylines {
		for _, pts := range sketch.Polylines(l.PathElements(tol), tol) {
			addPolyline(d, append(pts, pts[0]))
		}
		return nil
	}
	for _, c := range l.All() {
		var err error
		switch c.Kind {
		case sketch.LineCurve:
			ln := c.Line()
			_, err = d.Line(ln.P0.X, ln.P0.Y, 0, ln.P1.X, ln.P1.Y, 0)
		case sketch.ArcCurve:
			// DXF arcs always run counter-clockwise.
			a := c.Arc()
			start, end := a.StartAngle(), a.EndAngle()
			if !a.IsCCW() {
				start, end = end, start
			}
			_, err = d.Arc(a.Center().X, a.Center().Y, 0, a.Radius(), degrees(start), degrees(end))
		case sketch.CircleCurve:
			ci := c.Circle()
			_, err = d.Circle(ci.Center().X, ci.Center().Y, 0, ci.Radius())
		case sketch.BSplineCurve:
			for _, pts := range sketch.Polylines(c.BSpline().PathElements(tol), tol) {
				if c.IsClosed(sketch.PointTolerance) {
					pts = append(pts, pts[0])
				}
				addPolyline(d, pts)
			}
		default:
			panic(fmt.Sprintf("unhandled case %v", c.Kind))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func addPolyline(d *drawing.Drawing, pts []sketch.Point) {
	lwp := entity.NewLwPolyline(len(pts))
	for j, pt := range pts {
		lwp.Vertices[j] = []float64{pt.X, pt.Y}
	}
	d.AddEntity(lwp)
}

// WriteFile writes s to the DXF file at path.
func WriteFile(path string, s sketch.Sketch, opts Options) error {
	d, err := Drawing(s, opts)
	if err != nil {
		return fmt.Errorf("failed to draw sketch: %w", err)
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ErrTooFewVertices is returned for a polyline that can't bound an area.
var ErrTooFewVertices = errors.New("dxfio: closed polyline needs at least three distinct vertices")

// ImportOptions controls Import.
type ImportOptions struct {
	// Layer, if not empty, restricts the import to polylines on that layer.
	Layer string
}

// Imported is a loop read from a DXF file.
type Imported struct {
	Layer string
	Loop  sketch.Loop
}

// ImportResult holds the loops found in a DXF file.
type ImportResult struct {
	Loops []Imported
	// Skipped counts polylines that were open or degenerate.
	Skipped int
}

// Import reads the closed polylines of a DXF document as loops of lines. A
// polyline counts as closed if it is flagged closed or its last vertex
// repeats its first. Polylines inside blocks are not read.
func Import(r io.Reader, opts ImportOptions) (*ImportResult, error) {
	doc, err := document.DxfDocumentFromStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DXF: %w", err)
	}
	res := &ImportResult{}
	add := func(layer string, pts []sketch.Point, closed bool) {
		if opts.Layer != "" && layer != opts.Layer {
			return
		}
		l, err := polylineLoop(pts, closed)
		if err != nil {
			res.Skipped++
			return
		}
		res.Loops = append(res.Loops, Imported{Layer: layer, Loop: l})
	}
	for _, e := range doc.Entities.Entities {
		switch e := e.(type) {
		case *entities.LWPolyline:
			pts := make([]sketch.Point, len(e.Points))
			for i, v := range e.Points {
				pts[i] = sketch.Pt(v.Point.X, v.Point.Y)
			}
			add(e.LayerName, pts, e.Closed)
		case *entities.Polyline:
			pts := make([]sketch.Point, len(e.Vertices))
			for i, v := range e.Vertices {
				pts[i] = sketch.Pt(v.Location.X, v.Location.Y)
			}
			add(e.LayerName, pts, e.Closed)
		}
	}
	return res, nil
}

// ReadFile imports the DXF file at path.
func ReadFile(path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f, opts)
}

// polylineLoop joins the vertices with lines. Repeated vertices are
// dropped.
func polylineLoop(pts []sketch.Point, closed bool) (sketch.Loop, error) {
	var vs []sketch.Point
	for _, pt := range pts {
		if n := len(vs); n > 0 && vs[n-1].Distance(pt) <= sketch.PointTolerance {
			continue
		}
		vs = append(vs, pt)
	}
	if n := len(vs); n > 1 && vs[0].Distance(vs[n-1]) <= sketch.HealTolerance {
		vs = vs[:n-1]
		closed = true
	}
	if len(vs) < 3 {
		return sketch.Loop{}, ErrTooFewVertices
	}
	if !closed {
		return sketch.Loop{}, &sketch.OpenLoopError{Index: len(vs) - 1, Gap: vs[0].Distance(vs[len(vs)-1])}
	}
	b := sketch.Builder{}.MoveTo(vs[0])
	for _, pt := range vs[1:] {
		b = b.LineTo(pt)
	}
	return b.Close()
}

// Assemble makes a sketch of imported loops: the loop enclosing the largest
// area becomes the counter-clockwise outer boundary, the others clockwise
// holes. Use [polygon.CheckHoles] to verify that the holes lie inside.
func Assemble(loops []sketch.Loop) (sketch.Sketch, error) {
	if len(loops) == 0 {
		return sketch.Sketch{}, sketch.ErrEmptyLoop
	}
	outer := 0
	for i, l := range loops {
		if math.Abs(l.SignedArea()) > math.Abs(loops[outer].SignedArea()) {
			outer = i
		}
	}
	s := sketch.NewSketch(orient(loops[outer], true))
	for i, l := range loops {
		if i != outer {
			s.AddHole(orient(l, false))
		}
	}
	return s, nil
}

func orient(l sketch.Loop, ccw bool) sketch.Loop {
	if l.IsCCW() != ccw {
		return l.Reversed()
	}
	return l
}

// Sketch reads the DXF file at path and assembles its loops into a sketch
// whose holes are checked to lie inside the outer boundary.
func Sketch(path string, opts ImportOptions) (sketch.Sketch, error) {
	res, err := ReadFile(path, opts)
	if err != nil {
		return sketch.Sketch{}, err
	}
	loops := make([]sketch.Loop, len(res.Loops))
	for i, im := range res.Loops {
		loops[i] = im.Loop
	}
	s, err := Assemble(loops)
	if err != nil {
		return sketch.Sketch{}, err
	}
	if err := polygon.CheckHoles(s, DefaultTolerance); err != nil {
		return sketch.Sketch{}, err
	}
	return s, nil
}
