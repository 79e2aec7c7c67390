package gesture

import (
	"fmt"
	"math"
)

// AngularDifference scores the similarity of two equal-length paths as the
// mean absolute angular difference between corresponding segment
// directions, in radians. Identical shapes score 0, perpendicular shapes
// score near pi/2 and opposite directions near pi. The metric is invariant
// to position and uniform scale once the paths are normalized, but
// sensitive to rotation and stroke direction.
func AngularDifference(a, b Path) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("path lengths differ: %d vs %d", len(a), len(b))
	}
	if len(a) < 2 {
		return 0, fmt.Errorf("paths need at least 2 points, got %d", len(a))
	}

	var sum float64
	for i := 1; i < len(a); i++ {
		va := a[i].Sub(a[i-1])
		vb := b[i].Sub(b[i-1])
		sum += angleBetween(va, vb)
	}

	return sum / float64(len(a)-1), nil
}

// angleBetween returns the absolute angular difference between the
// directions of two vectors, wrapped into [0, pi].
func angleBetween(a, b Point) float64 {
	diff := math.Abs(math.Atan2(a.Y, a.X) - math.Atan2(b.Y, b.X))
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}
