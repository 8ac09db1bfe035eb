// Package sketchfile reads sketches described in YAML.
//
// A document names the plane to sketch on, the outer profile, any holes and
// optionally the solid operation to apply:
//
//	plane:
//	  preset: xz
//	  origin: [0, 5, 0]
//	outer:
//	  shape: {kind: rounded_rectangle, corner: [0, 0], width: 40, height: 20, radius: 3}
//	holes:
//	  - shape: {kind: circle, center: [10, 10], radius: 4}
//	    reverse: true
//	  - path:
//	      - move: [25, 5]
//	      - horizontal: 8
//	      - arc_by_angle: {radius: 2, angle: 180, ccw: true}
//	      - horizontal: -8
//	    close: {center: [25, 7], ccw: true}
//	    reverse: true
//	extrude:
//	  direction: [0, -5, 0]
//
// Angles are given in degrees.
package sketchfile

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"honnef.co/go/sketch"
)

var (
	ErrNoProfile   = errors.New("sketchfile: profile needs exactly one of shape and path")
	ErrNoOperation = errors.New("sketchfile: document has no extrude or revolve operation")
	ErrOperations  = errors.New("sketchfile: document has both extrude and revolve operations")
	ErrCommand     = errors.New("sketchfile: path command needs exactly one instruction")
	ErrShapeClose  = errors.New("sketchfile: close only applies to path profiles")
)

// Point is a 2D point, written as [x, y].
type Point [2]float64

func (p Point) Pt() sketch.Point { return sketch.Pt(p[0], p[1]) }

// Vec3 is a point or direction in space, written as [x, y, z].
type Vec3 [3]float64

func (v Vec3) R3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// Document is a parsed sketch file.
type Document struct {
	Tolerance Tolerance    `yaml:"tolerance,omitempty"`
	Plane     PlaneSpec    `yaml:"plane,omitempty"`
	Outer     Profile      `yaml:"outer"`
	Holes     []Profile    `yaml:"holes,omitempty"`
	Extrude   *ExtrudeSpec `yaml:"extrude,omitempty"`
	Revolve   *RevolveSpec `yaml:"revolve,omitempty"`
}

// Tolerance configures loop validation and gap healing.
type Tolerance struct {
	// Validate is the tolerance loops are validated with. It defaults to
	// sketch.HealTolerance.
	Validate float64 `yaml:"validate,omitempty"`
	// Heal, if positive, closes gaps up to this size before validation.
	Heal float64 `yaml:"heal,omitempty"`
}

func (t Tolerance) validate() float64 {
	if t.Validate > 0 {
		return t.Validate
	}
	return sketch.HealTolerance
}

// PlaneSpec places the sketch in space. Explicit directions take precedence
// over the preset, which defaults to xy. The origin applies to both.
type PlaneSpec struct {
	Preset string `yaml:"preset,omitempty"`
	Origin *Vec3  `yaml:"origin,omitempty"`
	XDir   *Vec3  `yaml:"x_dir,omitempty"`
	YDir   *Vec3  `yaml:"y_dir,omitempty"`
}

// Build returns the described plane.
func (ps PlaneSpec) Build() (sketch.Plane, error) {
	var origin r3.Vec
	if ps.Origin != nil {
		origin = ps.Origin.R3()
	}
	if ps.XDir != nil || ps.YDir != nil {
		if ps.XDir == nil || ps.YDir == nil {
			return sketch.Plane{}, fmt.Errorf("plane needs both x_dir and y_dir")
		}
		return sketch.NewPlane(origin, ps.XDir.R3(), ps.YDir.R3())
	}
	var p sketch.Plane
	switch ps.Preset {
	case "", "xy":
		p = sketch.PlaneXY()
	case "xz":
		p = sketch.PlaneXZ()
	case "yz":
		p = sketch.PlaneYZ()
	default:
		return sketch.Plane{}, fmt.Errorf("unknown plane preset %q", ps.Preset)
	}
	return sketch.NewPlane(origin, p.XDir(), p.YDir())
}

// Profile is a closed boundary given either as a shape or as a path of
// drawing commands.
type Profile struct {
	Shape *Shape    `yaml:"shape,omitempty"`
	Path  []Command `yaml:"path,omitempty"`
	// Close closes the path with an arc instead of a line.
	Close *CloseArc `yaml:"close,omitempty"`
	// Reverse flips the profile's direction, typically for holes.
	Reverse bool `yaml:"reverse,omitempty"`
}

// Shape names one of the sketch package's shape constructors and its
// arguments. Which fields are used depends on Kind.
type Shape struct {
	Kind            string  `yaml:"kind"`
	Corner          Point   `yaml:"corner,omitempty"`
	Center          Point   `yaml:"center,omitempty"`
	Width           float64 `yaml:"width,omitempty"`
	Height          float64 `yaml:"height,omitempty"`
	Radius          float64 `yaml:"radius,omitempty"`
	Sides           int     `yaml:"sides,omitempty"`
	Length          float64 `yaml:"length,omitempty"`
	Horizontal      bool    `yaml:"horizontal,omitempty"`
	Thickness       float64 `yaml:"thickness,omitempty"`
	FlangeWidth     float64 `yaml:"flange_width,omitempty"`
	FlangeThickness float64 `yaml:"flange_thickness,omitempty"`
	WebHeight       float64 `yaml:"web_height,omitempty"`
	WebThickness    float64 `yaml:"web_thickness,omitempty"`
}

// Loop builds the shape.
func (s *Shape) Loop() (sketch.Loop, error) {
	switch s.Kind {
	case "rectangle":
		return sketch.Rectangle(s.Corner.Pt(), s.Width, s.Height)
	case "rectangle_centered":
		return sketch.RectangleCentered(s.Center.Pt(), s.Width, s.Height)
	case "rounded_rectangle":
		return sketch.RoundedRectangle(s.Corner.Pt(), s.Width, s.Height, s.Radius)
	case "circle":
		return sketch.CircleLoop(s.Center.Pt(), s.Radius)
	case "polygon":
		return sketch.RegularPolygon(s.Center.Pt(), s.Radius, s.Sides)
	case "hexagon":
		return sketch.Hexagon(s.Center.Pt(), s.Radius)
	case "slot":
		return sketch.Slot(s.Center.Pt(), s.Length, s.Width, s.Horizontal)
	case "l":
		return sketch.LShape(s.Corner.Pt(), s.Width, s.Height, s.Thickness)
	case "t":
		return sketch.TShape(s.Center.Pt(), s.FlangeWidth, s.FlangeThickness, s.WebHeight, s.WebThickness)
	default:
		return sketch.Loop{}, fmt.Errorf("unknown shape %q", s.Kind)
	}
}

// Command is one drawing instruction. Exactly one field is set.
type Command struct {
	Move       *Point      `yaml:"move,omitempty"`
	Line       *Point      `yaml:"line,omitempty"`
	Horizontal *float64    `yaml:"horizontal,omitempty"`
	Vertical   *float64    `yaml:"vertical,omitempty"`
	LineBy     *Point      `yaml:"line_by,omitempty"`
	ArcTo      *ArcTo      `yaml:"arc_to,omitempty"`
	ArcThrough *ArcThrough `yaml:"arc_through,omitempty"`
	ArcByAngle *ArcByAngle `yaml:"arc_by_angle,omitempty"`
	Quad       *Quad       `yaml:"quad,omitempty"`
	Cubic      *Cubic      `yaml:"cubic,omitempty"`
	Spline     []Point     `yaml:"spline,omitempty"`
}

type ArcTo struct {
	End    Point `yaml:"end"`
	Center Point `yaml:"center"`
	CCW    bool  `yaml:"ccw"`
}

type ArcThrough struct {
	Mid Point `yaml:"mid"`
	End Point `yaml:"end"`
}

type ArcByAngle struct {
	Radius float64 `yaml:"radius"`
	Angle  float64 `yaml:"angle"`
	CCW    bool    `yaml:"ccw"`
}

type Quad struct {
	Ctrl Point `yaml:"ctrl"`
	End  Point `yaml:"end"`
}

type Cubic struct {
	Ctrl1 Point `yaml:"ctrl1"`
	Ctrl2 Point `yaml:"ctrl2"`
	End   Point `yaml:"end"`
}

// CloseArc closes a path with an arc around Center.
type CloseArc struct {
	Center Point `yaml:"center"`
	CCW    bool  `yaml:"ccw"`
}

func (c *Command) count() int {
	n := 0
	for _, set := range []bool{
		c.Move != nil, c.Line != nil, c.Horizontal != nil, c.Vertical != nil,
		c.LineBy != nil, c.ArcTo != nil, c.ArcThrough != nil, c.ArcByAngle != nil,
		c.Quad != nil, c.Cubic != nil, c.Spline != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (c *Command) apply(b sketch.Builder) (sketch.Builder, error) {
	if c.count() != 1 {
		return b, ErrCommand
	}
	switch {
	case c.Move != nil:
		b = b.MoveTo(c.Move.Pt())
	case c.Line != nil:
		b = b.LineTo(c.Line.Pt())
	case c.Horizontal != nil:
		b = b.Horizontal(*c.Horizontal)
	case c.Vertical != nil:
		b = b.Vertical(*c.Vertical)
	case c.LineBy != nil:
		b = b.LineBy(sketch.Vec(c.LineBy[0], c.LineBy[1]))
	case c.ArcTo != nil:
		b = b.ArcTo(c.ArcTo.End.Pt(), c.ArcTo.Center.Pt(), c.ArcTo.CCW)
	case c.ArcThrough != nil:
		b = b.ArcThrough(c.ArcThrough.Mid.Pt(), c.ArcThrough.End.Pt())
	case c.ArcByAngle != nil:
		b = b.ArcByAngle(c.ArcByAngle.Radius, radians(c.ArcByAngle.Angle), c.ArcByAngle.CCW)
	case c.Quad != nil:
		b = b.QuadTo(c.Quad.Ctrl.Pt(), c.Quad.End.Pt())
	case c.Cubic != nil:
		b = b.CubicTo(c.Cubic.Ctrl1.Pt(), c.Cubic.Ctrl2.Pt(), c.Cubic.End.Pt())
	case c.Spline != nil:
		pts := make([]sketch.Point, len(c.Spline))
		for i, pt := range c.Spline {
			pts[i] = pt.Pt()
		}
		b = b.SplineThrough(pts...)
	}
	return b, b.Err()
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Loop builds the profile, closing paths and healing gaps as configured by
// tol.
func (p *Profile) Loop(tol Tolerance) (sketch.Loop, error) {
	if (p.Shape == nil) == (len(p.Path) == 0) {
		return sketch.Loop{}, ErrNoProfile
	}
	if p.Shape != nil && p.Close != nil {
		return sketch.Loop{}, ErrShapeClose
	}
	var l sketch.Loop
	if p.Shape != nil {
		var err error
		l, err = p.Shape.Loop()
		if err != nil {
			return sketch.Loop{}, err
		}
	} else {
		var err error
		l, err = p.pathLoop(tol)
		if err != nil {
			return sketch.Loop{}, err
		}
	}
	if p.Reverse {
		l.Reverse()
	}
	return l, nil
}

func (p *Profile) pathLoop(tol Tolerance) (sketch.Loop, error) {
	var b sketch.Builder
	for i := range p.Path {
		var err error
		b, err = p.Path[i].apply(b)
		if err != nil {
			return sketch.Loop{}, fmt.Errorf("command %d: %w", i, err)
		}
	}
	curves, err := b.Open()
	if err != nil {
		return sketch.Loop{}, err
	}
	if len(curves) == 0 {
		return sketch.Loop{}, sketch.ErrCannotCloseEmpty
	}
	start, _ := b.StartPosition()
	end, _ := b.Position()
	if p.Close != nil {
		a, err := sketch.NewArcFromStartEndCenter(end, start, p.Close.Center.Pt(), p.Close.CCW)
		if err != nil {
			return sketch.Loop{}, fmt.Errorf("close: %w", err)
		}
		curves = append(curves, a.Curve())
	} else if end.Distance(start) > sketch.PointTolerance {
		l, err := sketch.NewLine(end, start)
		if err != nil {
			return sketch.Loop{}, fmt.Errorf("close: %w", err)
		}
		curves = append(curves, l.Curve())
	}

	if tol.Heal <= 0 {
		return sketch.NewLoopWithTolerance(tol.validate(), curves...)
	}
	l, err := sketch.NewLoopWithTolerance(max(tol.Heal, tol.validate()), curves...)
	if err != nil {
		return sketch.Loop{}, err
	}
	l.HealGaps(tol.Heal)
	if err := l.Validate(tol.validate()); err != nil {
		return sketch.Loop{}, err
	}
	return l, nil
}

// ExtrudeSpec describes a linear sweep.
type ExtrudeSpec struct {
	Direction Vec3 `yaml:"direction"`
}

// RevolveSpec describes a sweep around an axis. Angle is in degrees and
// defaults to a full turn.
type RevolveSpec struct {
	Origin Vec3    `yaml:"origin,omitempty"`
	Axis   Vec3    `yaml:"axis"`
	Angle  float64 `yaml:"angle,omitempty"`
}

func (r *RevolveSpec) radians() float64 {
	if r.Angle == 0 {
		return 2 * math.Pi
	}
	return radians(r.Angle)
}

// Build returns the document's sketch and the plane it lies on. Every loop
// is healed, if configured, and validated.
func (d *Document) Build() (sketch.Sketch, sketch.Plane, error) {
	plane, err := d.Plane.Build()
	if err != nil {
		return sketch.Sketch{}, sketch.Plane{}, fmt.Errorf("plane: %w", err)
	}
	outer, err := d.Outer.Loop(d.Tolerance)
	if err != nil {
		return sketch.Sketch{}, sketch.Plane{}, fmt.Errorf("outer: %w", err)
	}
	s := sketch.NewSketch(outer)
	for i := range d.Holes {
		h, err := d.Holes[i].Loop(d.Tolerance)
		if err != nil {
			return sketch.Sketch{}, sketch.Plane{}, fmt.Errorf("hole %d: %w", i, err)
		}
		s.AddHole(h)
	}
	if err := s.Validate(d.Tolerance.validate()); err != nil {
		return sketch.Sketch{}, sketch.Plane{}, err
	}
	return s, plane, nil
}

// Apply builds the document's sketch and applies its operation with k.
func Apply[F, S any](k sketch.Kernel[F, S], d *Document) (S, error) {
	var zero S
	if d.Extrude != nil && d.Revolve != nil {
		return zero, ErrOperations
	}
	s, plane, err := d.Build()
	if err != nil {
		return zero, err
	}
	switch {
	case d.Extrude != nil:
		return sketch.Extrude(k, s, plane, d.Extrude.Direction.R3())
	case d.Revolve != nil:
		return sketch.Revolve(k, s, plane, d.Revolve.Origin.R3(), d.Revolve.Axis.R3(), d.Revolve.radians())
	default:
		return zero, ErrNoOperation
	}
}

// Parse decodes a sketch document. Unknown fields are an error.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the sketch file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
