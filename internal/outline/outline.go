// Package outline extracts particle boundaries from a padded binary image and
// removes the synthetic frame that padding introduces.
package outline

import (
	"image"
	"math"
)

// Outline is one closed boundary, traced in order. The last point connects
// back to the first.
type Outline []image.Point

// Set is an ordered collection of independent outlines. Order follows
// extraction and only matters for tie-breaking.
type Set []Outline

// Area returns the enclosed area by the shoelace formula. It is never
// negative and is zero for fewer than three points.
func Area(o Outline) float64 {
	if len(o) < 3 {
		return 0
	}

	var twice int64
	prev := o[len(o)-1]
	for _, p := range o {
		twice += int64(prev.X)*int64(p.Y) - int64(p.X)*int64(prev.Y)
		prev = p
	}

	return math.Abs(float64(twice)) / 2
}

// Bounds returns the smallest rectangle containing every point. Max is
// exclusive, matching image.Rectangle.
func Bounds(o Outline) image.Rectangle {
	if len(o) == 0 {
		return image.Rectangle{}
	}

	r := image.Rectangle{Min: o[0], Max: o[0].Add(image.Pt(1, 1))}
	for _, p := range o[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// Translate returns a copy of o shifted by d.
func Translate(o Outline, d image.Point) Outline {
	out := make(Outline, len(o))
	for i, p := range o {
		out[i] = p.Add(d)
	}
	return out
}

// Areas lists the area of every outline in set order.
func (s Set) Areas() []float64 {
	areas := make([]float64, len(s))
	for i, o := range s {
		areas[i] = Area(o)
	}
	return areas
}

// Points returns a deep copy as plain point slices.
func (s Set) Points() [][]image.Point {
	pts := make([][]image.Point, len(s))
	for i, o := range s {
		pts[i] = append([]image.Point(nil), o...)
	}
	return pts
}
