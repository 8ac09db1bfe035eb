package sketch

import "math"

// Rectangle returns the counter-clockwise rectangle with lower-left corner
// corner.
func Rectangle(corner Point, width, height float64) (Loop, error) {
	return Builder{}.
		MoveTo(corner).
		Horizontal(width).
		Vertical(height).
		Horizontal(-width).
		Close()
}

func RectangleCentered(center Point, width, height float64) (Loop, error) {
	return Rectangle(Pt(center.X-width/2, center.Y-height/2), width, height)
}

// RoundedRectangle returns a rectangle whose corners are rounded with the
// given radius. The radius is limited to half the shorter side; straight runs
// that shrink to nothing are left out.
func RoundedRectangle(corner Point, width, height, radius float64) (Loop, error) {
	r := min(radius, width/2, height/2)
	if r <= DegenerateTolerance {
		return Rectangle(corner, width, height)
	}
	x0, y0 := corner.X, corner.Y
	x1, y1 := x0+width, y0+height

	b := Builder{}.MoveTo(Pt(x0+r, y0))
	lineTo := func(b Builder, pt Point) Builder {
		if p, _ := b.Position(); p.Distance(pt) <= PointTolerance {
			return b
		}
		return b.LineTo(pt)
	}
	b = lineTo(b, Pt(x1-r, y0))
	b = b.ArcTo(Pt(x1, y0+r), Pt(x1-r, y0+r), true)
	b = lineTo(b, Pt(x1, y1-r))
	b = b.ArcTo(Pt(x1-r, y1), Pt(x1-r, y1-r), true)
	b = lineTo(b, Pt(x0+r, y1))
	b = b.ArcTo(Pt(x0, y1-r), Pt(x0+r, y1-r), true)
	b = lineTo(b, Pt(x0, y0+r))
	return b.CloseWithArc(Pt(x0+r, y0+r), true)
}

// CircleLoop returns the loop consisting of a single circle.
func CircleLoop(center Point, radius float64) (Loop, error) {
	c, err := NewCircle(center, radius)
	if err != nil {
		return Loop{}, err
	}
	return LoopFromClosedCurve(c.Curve())
}

// RegularPolygon returns the counter-clockwise regular polygon with n
// vertices on the circle of the given radius, the first one directly above
// the center. It fails with [ErrDegenerateCurve] if n < 3.
func RegularPolygon(center Point, radius float64, n int) (Loop, error) {
	if n < 3 {
		return Loop{}, ErrDegenerateCurve
	}
	step := 2 * math.Pi / float64(n)
	b := Builder{}.MoveTo(Pt(center.X, center.Y+radius))
	for i := 1; i < n; i++ {
		b = b.LineTo(center.Polar(radius, math.Pi/2+float64(i)*step))
	}
	return b.Close()
}

// Hexagon returns the regular hexagon with circumradius size.
func Hexagon(center Point, size float64) (Loop, error) {
	return RegularPolygon(center, size, 6)
}

// Slot returns a stadium: a rectangle of the given overall length and width
// with semicircular ends. A slot no longer than it is wide is a circle.
func Slot(center Point, length, width float64, horizontal bool) (Loop, error) {
	r := width / 2
	h := length/2 - r
	switch {
	case h < -PointTolerance:
		return Loop{}, ErrDegenerateCurve
	case h <= PointTolerance:
		return CircleLoop(center, r)
	}
	if horizontal {
		return Builder{}.
			MoveTo(Pt(center.X-h, center.Y-r)).
			LineTo(Pt(center.X+h, center.Y-r)).
			ArcTo(Pt(center.X+h, center.Y+r), Pt(center.X+h, center.Y), true).
			LineTo(Pt(center.X-h, center.Y+r)).
			CloseWithArc(Pt(center.X-h, center.Y), true)
	}
	return Builder{}.
		MoveTo(Pt(center.X+r, center.Y-h)).
		LineTo(Pt(center.X+r, center.Y+h)).
		ArcTo(Pt(center.X-r, center.Y+h), Pt(center.X, center.Y+h), true).
		LineTo(Pt(center.X-r, center.Y-h)).
		CloseWithArc(Pt(center.X, center.Y-h), true)
}

// LShape returns an L profile with its outer corner at corner. Both legs are
// thickness wide.
func LShape(corner Point, width, height, thickness float64) (Loop, error) {
	return Builder{}.
		MoveTo(corner).
		Horizontal(width).
		Vertical(thickness).
		Horizontal(-(width - thickness)).
		Vertical(height - thickness).
		Horizontal(-thickness).
		Close()
}

// TShape returns an upside-down T profile: a flange centered on baseCenter,
// with a web rising from its middle to webHeight above the base.
func TShape(baseCenter Point, flangeWidth, flangeThickness, webHeight, webThickness float64) (Loop, error) {
	halfFlange := flangeWidth / 2
	halfWeb := webThickness / 2
	return Builder{}.
		MoveTo(Pt(baseCenter.X-halfFlange, baseCenter.Y)).
		Horizontal(flangeWidth).
		Vertical(flangeThickness).
		Horizontal(-(halfFlange - halfWeb)).
		Vertical(webHeight - flangeThickness).
		Horizontal(-webThickness).
		Vertical(-(webHeight - flangeThickness)).
		Horizontal(-(halfFlange - halfWeb)).
		Close()
}
