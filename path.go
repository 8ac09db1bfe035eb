package sketch

import (
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Close off the subpath.
	ClosePathKind
)

// PathElement is one drawing command of a Bézier path.
//
// A valid path has MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case QuadToKind:
		kind = "QuadTo"
	case CubicToKind:
		kind = "CubicTo"
	case ClosePathKind:
		kind = "ClosePath"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// DefaultPathTolerance replaces a tolerance that isn't positive when curves
// are converted to path elements or flattened.
const DefaultPathTolerance = 0.01

func pathTolerance(tolerance float64) float64 {
	if tolerance > 0 {
		return tolerance
	}
	return DefaultPathTolerance
}

// PathElements returns the loop as one closed subpath. Lines are exact, arcs
// and circles are approximated by cubic Béziers to within tolerance, Bézier
// splines are exact and other B-splines are sampled into lines. A tolerance
// that isn't positive is replaced by [DefaultPathTolerance].
func (l Loop) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if len(l.curves) == 0 {
			return
		}
		if !yield(MoveTo(l.curves[0].Start())) {
			return
		}
		for _, c := range l.curves {
			if !curveElements(c, tolerance, yield) {
				return
			}
		}
		yield(ClosePath())
	}
}

func curveElements(c Curve, tolerance float64, yield func(PathElement) bool) bool {
	switch c.Kind {
	case LineCurve:
		return yield(LineTo(c.line.P1))
	case ArcCurve:
		a := c.arc
		return arcCubics(a.center, a.radius, a.startAngle, a.sweepAngle, tolerance, yield)
	case CircleCurve:
		return circleCubics(c.circle, tolerance, yield)
	case BSplineCurve:
		s := c.spline
		if s.degree == 3 && len(s.points) == 4 && slices.Equal(s.knots, uniformKnots(4, 3)) {
			return yield(CubicTo(s.points[1], s.points[2], s.points[3]))
		}
		n := s.sampleCount(tolerance)
		for i := 1; i <= n; i++ {
			if !yield(LineTo(s.Eval(float64(i) / float64(n)))) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("unhandled case %v", c.Kind))
	}
}

// Path collects the loop's path elements into a BezPath.
func (l Loop) Path(tolerance float64) BezPath {
	return slices.Collect(l.PathElements(tolerance))
}

// PathElements returns the outer boundary followed by the holes, one subpath
// per loop.
func (s Sketch) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for _, l := range s.Loops() {
			for el := range l.PathElements(tolerance) {
				if !yield(el) {
					return
				}
			}
		}
	}
}

// BezPath is a sequence of path elements.
type BezPath []PathElement

func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// SignedArea returns the area enclosed by the path, summed over its
// subpaths. Counter-clockwise subpaths count positively. Open subpaths are
// treated as if closed.
func (p BezPath) SignedArea() float64 {
	var area float64
	var start, last Point
	for _, el := range p {
		switch el.Kind {
		case MoveToKind:
			area += Line{last, start}.SignedArea()
			start, last = el.P0, el.P0
		case LineToKind:
			area += Line{last, el.P0}.SignedArea()
			last = el.P0
		case QuadToKind:
			area += QuadBez{last, el.P0, el.P1}.Raise().SignedArea()
			last = el.P1
		case CubicToKind:
			area += CubicBez{last, el.P0, el.P1, el.P2}.SignedArea()
			last = el.P2
		case ClosePathKind:
			area += Line{last, start}.SignedArea()
			last = start
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
	}
	return area + Line{last, start}.SignedArea()
}

// Flatten replaces the curves in a sequence of path elements with lines
// approximating them to within tolerance, or [DefaultPathTolerance] if
// tolerance isn't positive.
func Flatten(seq iter.Seq[PathElement], tolerance float64) iter.Seq[PathElement] {
	tolerance = pathTolerance(tolerance)
	return func(yield func(PathElement) bool) {
		var last Point
		for el := range seq {
			var c CubicBez
			switch el.Kind {
			case MoveToKind, LineToKind:
				last = el.P0
				if !yield(el) {
					return
				}
				continue
			case ClosePathKind:
				if !yield(el) {
					return
				}
				continue
			case QuadToKind:
				c = QuadBez{last, el.P0, el.P1}.Raise()
			case CubicToKind:
				c = CubicBez{last, el.P0, el.P1, el.P2}
			default:
				panic(fmt.Sprintf("unhandled case %v", el.Kind))
			}
			// The second derivative of a cubic is bounded by six times the
			// largest second difference of its control points, and a chord
			// deviates from the curve by at most 1/8 of that times h².
			dd := max(
				c.P0.Sub(c.P1).Add(c.P2.Sub(c.P1)).Hypot(),
				c.P1.Sub(c.P2).Add(c.P3.Sub(c.P2)).Hypot(),
			)
			n := max(int(math.Ceil(math.Sqrt(0.75*dd/tolerance))), 1)
			for i := 1; i < n; i++ {
				if !yield(LineTo(c.Eval(float64(i) / float64(n)))) {
					return
				}
			}
			if !yield(LineTo(c.P3)) {
				return
			}
			last = c.P3
		}
	}
}

// Polylines flattens seq and returns the vertices of each subpath. A closing
// vertex that repeats the subpath's first vertex is dropped.
func Polylines(seq iter.Seq[PathElement], tolerance float64) [][]Point {
	var out [][]Point
	var cur []Point
	flush := func() {
		if n := len(cur); n > 1 && cur[0].Distance(cur[n-1]) <= PointTolerance {
			cur = cur[:n-1]
		}
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for el := range Flatten(seq, tolerance) {
		switch el.Kind {
		case MoveToKind:
			flush()
			cur = append(cur, el.P0)
		case LineToKind:
			cur = append(cur, el.P0)
		case ClosePathKind:
			flush()
		}
	}
	flush()
	return out
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		if opts.MaxPrecision <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', opts.MaxPrecision, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	}
	pt := func(p Point) string {
		return format(p.X) + "," + format(p.Y)
	}
	sep := ""
	for el := range seq {
		if err != nil {
			return err
		}
		switch el.Kind {
		case MoveToKind:
			writef("%sM%s", sep, pt(el.P0))
		case LineToKind:
			writef("%sL%s", sep, pt(el.P0))
		case QuadToKind:
			writef("%sQ%s %s", sep, pt(el.P0), pt(el.P1))
		case CubicToKind:
			writef("%sC%s %s %s", sep, pt(el.P0), pt(el.P1), pt(el.P2))
		case ClosePathKind:
			writef("%sZ", sep)
		default:
			panic("unreachable")
		}
		sep = " "
	}
	return err
}
