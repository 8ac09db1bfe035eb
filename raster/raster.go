// Package raster renders sketch previews.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"honnef.co/go/sketch"
)

var ErrEmptyImage = errors.New("raster: sketch has no extent")

// Options controls Render. Zero fields take their defaults.
type Options struct {
	// Size is the length of the image's longer side in pixels, margins
	// included. It defaults to 256.
	Size int
	// Margin is the empty border around the sketch in pixels. It defaults to
	// 8; use a negative value for none.
	Margin int
	// Tolerance is the flattening tolerance in pixels. It defaults to 0.25.
	Tolerance float64
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = 256
	}
	switch {
	case o.Margin == 0:
		o.Margin = 8
	case o.Margin < 0:
		o.Margin = 0
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 0.25
	}
	return o
}

// Render fills the sketch's face into an alpha mask, y pointing up. The
// sketch is scaled to fit Size, keeping its aspect ratio.
//
// The outer boundary and the holes are filled with opposite windings, so
// holes are cut out whatever their orientation in the sketch.
func Render(s sketch.Sketch, opts Options) (*image.Alpha, error) {
	opts = opts.withDefaults()
	bbox, ok := s.BoundingBox()
	if !ok {
		return nil, sketch.ErrEmptyLoop
	}
	extent := max(bbox.Width(), bbox.Height())
	if !(extent > sketch.DegenerateTolerance) {
		return nil, ErrEmptyImage
	}
	inner := opts.Size - 2*opts.Margin
	if inner <= 0 {
		return nil, fmt.Errorf("raster: size %d leaves no room inside margins of %d", opts.Size, opts.Margin)
	}
	scale := float64(inner) / extent
	w := int(math.Ceil(bbox.Width()*scale)) + 2*opts.Margin
	h := int(math.Ceil(bbox.Height()*scale)) + 2*opts.Margin

	xform := func(pt sketch.Point) (float32, float32) {
		x := float64(opts.Margin) + (pt.X-bbox.X0)*scale
		y := float64(opts.Margin) + (bbox.Y1-pt.Y)*scale
		return float32(x), float32(y)
	}

	z := vector.NewRasterizer(w, h)
	tol := opts.Tolerance / scale
	for i, l := range s.Loops() {
		// Counter-clockwise outer boundary, clockwise holes.
		if l.IsCCW() != (i == 0) {
			l = l.Reversed()
		}
		for _, poly := range sketch.Polylines(l.PathElements(tol), tol) {
			z.MoveTo(xform(poly[0]))
			for _, pt := range poly[1:] {
				z.LineTo(xform(pt))
			}
			z.ClosePath()
		}
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst, nil
}

// WritePNG renders s and encodes the result as a PNG image.
func WritePNG(w io.Writer, s sketch.Sketch, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
