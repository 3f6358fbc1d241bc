// Package geometry provides the pure numeric primitives for the tagging
// canvas: box overlap, pointer-to-image-space mapping and hit-testing.
// All functions are side-effect free and never fail; invalid input yields
// a zero result so callers always have a safe rendering default.
package geometry

// Box is an axis-aligned rectangle in original-image pixel coordinates.
// A box with non-positive width or height is degenerate and treated as absent.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether the box has positive area.
func (b Box) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Area returns the box area, or 0 for a degenerate box.
func (b Box) Area() float64 {
	if !b.Valid() {
		return 0
	}
	return b.Width * b.Height
}

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains reports whether the point lies inside the box (edges inclusive).
func (b Box) Contains(p Point) bool {
	return b.Valid() &&
		p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Point is a 2D coordinate. The coordinate space depends on context:
// container pixels before MapToImage, image pixels after.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size holds the dimensions of a rectangle such as a rendered container
// or an image's natural pixel size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0
}

// IoU calculates Intersection over Union between two bounding boxes in the
// same coordinate space. Returns 0 if either box is degenerate or the boxes
// do not overlap. Symmetric, and IoU(a, a) == 1 for any valid a.
func IoU(a, b Box) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}

	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)

	if x2 <= x1 || y2 <= y1 {
		return 0 // No intersection
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}

	return intersection / union
}
