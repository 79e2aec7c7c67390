// Package gesture provides capture, normalization and matching of freehand
// pointer gestures.
package gesture

import "math"

// Point represents a 2D pixel offset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the vector sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Dampen applies sign-preserving power scaling to each coordinate.
// It softens live drag feedback so the anchor trails the pointer; the
// recorded path is never dampened.
func (p Point) Dampen(exponent float64) Point {
	return Point{
		X: dampen(p.X, exponent),
		Y: dampen(p.Y, exponent),
	}
}

// dampen scales a single coordinate, preserving its sign.
func dampen(v, exponent float64) float64 {
	if v == 0 {
		return 0
	}
	scaled := math.Pow(math.Abs(v), exponent)
	if v < 0 {
		return -scaled
	}
	return scaled
}
