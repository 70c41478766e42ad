// Package geometry holds the 2-D distance helpers used by feature extraction.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a 2-D point. Landmark points are normalized to [0,1] relative to
// the image width and height; pixel points are in image pixels.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Shape is the pixel size of the image a landmark set was detected on.
type Shape struct {
	Height int
	Width  int
}

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool {
	return s.Height > 0 && s.Width > 0
}

// ToPixel converts a normalized point into pixel space.
func (s Shape) ToPixel(p Point) Point {
	return Point{
		X: p.X * float64(s.Width),
		Y: p.Y * float64(s.Height),
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}

// PixelDistance converts both normalized points to pixels and returns the
// Euclidean distance between them.
func (s Shape) PixelDistance(a, b Point) float64 {
	return Distance(s.ToPixel(a), s.ToPixel(b))
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
