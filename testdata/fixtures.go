// Package testdata provides shared gesture path fixtures for tests.
package testdata

import (
	"math"

	"github.com/TheJusticeMan/flick/internal/gesture"
)

// Line builds a straight path of n evenly spaced points from (x0, y0)
// to (x1, y1).
func Line(x0, y0, x1, y1 float64, n int) gesture.Path {
	path := make(gesture.Path, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		path[i] = gesture.Point{X: x0 + t*(x1-x0), Y: y0 + t*(y1-y0)}
	}
	return path
}

// RightwardLine is a 150px horizontal drag, comfortably above the
// minimum movement threshold.
func RightwardLine() gesture.Path {
	return Line(100, 200, 250, 200, 15)
}

// Tap is a 20px drag, below the minimum movement threshold.
func Tap() gesture.Path {
	return Line(100, 200, 120, 200, 5)
}

// Circle builds a clockwise circular path of n points with the given
// radius, starting at the top of the circle.
func Circle(cx, cy, radius float64, n int) gesture.Path {
	path := make(gesture.Path, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n-1)
		path[i] = gesture.Point{
			X: cx + radius*math.Sin(angle),
			Y: cy - radius*math.Cos(angle),
		}
	}
	return path
}

// Vee builds a down-then-up checkmark shape.
func Vee(x, y, size float64, n int) gesture.Path {
	half := n / 2
	down := Line(x, y, x+size/2, y+size, half)
	up := Line(x+size/2, y+size, x+size, y, n-half)
	return append(down, up...)
}

// EncodedPath serializes a path with the template persistence encoding,
// panicking on failure; fixtures are static so encoding cannot fail.
func EncodedPath(p gesture.Path) string {
	encoded, err := gesture.EncodePath(p)
	if err != nil {
		panic(err)
	}
	return encoded
}
