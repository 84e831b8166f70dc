// Package graphical implements the click-point password: a reference image plus
// four ordered points captured at a known resolution, and the tolerance-based
// comparison used to verify a submission against the stored template.
package graphical

import (
	"fmt"
	"math"
)

// TemplateSize is the number of click points in a graphical password.
const TemplateSize = 4

// Epsilon is the match tolerance in normalized (unit-square) space. A submitted
// point matches its template point when their Euclidean distance after
// normalization is less than or equal to Epsilon. The boundary is inclusive.
const Epsilon = 0.05

// Point is a click coordinate in pixels, relative to the rendered image's
// top-left corner at the resolution it was presented at.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is the rendered pixel size of the image when the points were captured.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether the bounds are unset.
func (b Bounds) IsZero() bool {
	return b.Width == 0 && b.Height == 0
}

// Contains reports whether p lies within the bounds, origin inclusive.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// Template is the stored graphical password: the assigned image, the ordered
// click points, and the resolution they were captured at.
type Template struct {
	ImageID string              `json:"imageId"`
	Points  [TemplateSize]Point `json:"-"`
	Bounds  Bounds              `json:"-"`
}

type normalizedPoint struct {
	x float64
	y float64
}

func normalize(p Point, b Bounds) normalizedPoint {
	return normalizedPoint{
		x: float64(p.X) / float64(b.Width),
		y: float64(p.Y) / float64(b.Height),
	}
}

func within(a, b normalizedPoint, epsilon float64) bool {
	dx := a.x - b.x
	dy := a.y - b.y
	return math.Sqrt(dx*dx+dy*dy) <= epsilon
}

// Matches compares a submitted point sequence against a template. Both sides
// are first normalized to the unit square using their own capture bounds, so a
// password entered on a 600x600 rendering still matches one captured at
// 300x300. Order matters: index i of the submission is compared only against
// index i of the template. All four indices are always evaluated and the
// results combined, so the time taken does not reveal which point missed.
func Matches(template, submitted [TemplateSize]Point, templateBounds, submittedBounds Bounds) bool {
	if templateBounds.Width <= 0 || templateBounds.Height <= 0 ||
		submittedBounds.Width <= 0 || submittedBounds.Height <= 0 {
		return false
	}

	matched := 1
	for i := 0; i < TemplateSize; i++ {
		t := normalize(template[i], templateBounds)
		s := normalize(submitted[i], submittedBounds)
		if within(t, s, Epsilon) {
			matched &= 1
		} else {
			matched &= 0
		}
	}
	return matched == 1
}

// PointsFromSlice converts a slice into the fixed template array, rejecting
// anything that is not exactly four points.
func PointsFromSlice(points []Point) ([TemplateSize]Point, error) {
	var fixed [TemplateSize]Point
	if len(points) != TemplateSize {
		return fixed, fmt.Errorf("expected %d points, got %d", TemplateSize, len(points))
	}
	copy(fixed[:], points)
	return fixed, nil
}
