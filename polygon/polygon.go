// Package polygon converts sketches to flattened planar polygons, for the
// checks the sketch package leaves to its callers and for GeoJSON and WKB
// output.
//
// Curves are flattened to within a tolerance, so every result is an
// approximation of the sketch.
package polygon

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"honnef.co/go/sketch"
)

// Ring flattens l into a closed ring, its first point repeated at the end.
// The ring keeps the loop's orientation.
func Ring(l sketch.Loop, tolerance float64) orb.Ring {
	var r orb.Ring
	for _, line := range sketch.Polylines(l.PathElements(tolerance), tolerance) {
		for _, pt := range line {
			r = append(r, orb.Point{pt.X, pt.Y})
		}
	}
	if len(r) > 0 {
		r = append(r, r[0])
	}
	return r
}

// FromSketch flattens s into a polygon. The outer ring is made
// counter-clockwise and the holes clockwise, as GeoJSON expects.
func FromSketch(s sketch.Sketch, tolerance float64) orb.Polygon {
	p := make(orb.Polygon, 0, 1+len(s.Holes))
	p = append(p, orient(Ring(s.Outer, tolerance), orb.CCW))
	for _, h := range s.Holes {
		p = append(p, orient(Ring(h, tolerance), orb.CW))
	}
	return p
}

func orient(r orb.Ring, o orb.Orientation) orb.Ring {
	if r.Orientation() != o {
		r.Reverse()
	}
	return r
}

// Area returns the area of the sketch's face: the outer boundary's area less
// that of the holes.
func Area(s sketch.Sketch, tolerance float64) float64 {
	return planar.Area(FromSketch(s, tolerance))
}

// HoleError reports a hole that is not properly placed in its sketch.
type HoleError struct {
	// Index is the offending hole's index in Sketch.Holes.
	Index int
	// Other is the index of the hole it overlaps, or -1 if it sticks out of
	// the outer boundary.
	Other int
}

func (e *HoleError) Error() string {
	if e.Other < 0 {
		return fmt.Sprintf("polygon: hole %d is not inside the outer boundary", e.Index)
	}
	return fmt.Sprintf("polygon: hole %d overlaps hole %d", e.Index, e.Other)
}

// CheckHoles reports the first hole with a vertex outside the outer
// boundary, or inside another hole. Vertices are those of the flattened
// rings; holes whose edges cross without either containing a vertex of the
// other are not detected.
func CheckHoles(s sketch.Sketch, tolerance float64) error {
	p := FromSketch(s, tolerance)
	outer, holes := p[0], p[1:]
	for i, h := range holes {
		for _, pt := range h {
			if !planar.RingContains(outer, pt) {
				return &HoleError{Index: i, Other: -1}
			}
		}
	}
	for i, h := range holes {
		for j, other := range holes {
			if i == j {
				continue
			}
			for _, pt := range h {
				if planar.RingContains(other, pt) {
					return &HoleError{Index: i, Other: j}
				}
			}
		}
	}
	return nil
}

// Feature returns s as a GeoJSON polygon feature. Its properties hold the
// face area and the number of holes, as well as any extra properties.
func Feature(s sketch.Sketch, tolerance float64, props map[string]any) *geojson.Feature {
	p := FromSketch(s, tolerance)
	f := geojson.NewFeature(p)
	for k, v := range props {
		f.Properties[k] = v
	}
	f.Properties["area"] = planar.Area(p)
	f.Properties["holes"] = len(s.Holes)
	return f
}

// FeatureCollection returns the sketches as a GeoJSON feature collection,
// each feature carrying its index in the "index" property.
func FeatureCollection(sketches []sketch.Sketch, tolerance float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, s := range sketches {
		fc.Append(Feature(s, tolerance, map[string]any{"index": i}))
	}
	return fc
}

// WKB encodes s as a well-known binary polygon.
func WKB(s sketch.Sketch, tolerance float64) ([]byte, error) {
	data, err := wkb.Marshal(FromSketch(s, tolerance))
	if err != nil {
		return nil, fmt.Errorf("failed to encode polygon: %w", err)
	}
	return data, nil
}
