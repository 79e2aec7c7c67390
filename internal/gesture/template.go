package gesture

import (
	"encoding/json"
	"fmt"
	"math"
)

// Template represents a named gesture shape bound to a command identifier.
// The path is stored normalized: origin at the first point, fixed point
// count.
type Template struct {
	ID        string
	Name      string
	CommandID string
	Path      Path
}

// Valid reports whether the template can participate in matching.
// Empty or single-point templates, and templates with zero arc length,
// are never valid matches.
func (t *Template) Valid() bool {
	if t == nil || len(t.Path) < 2 {
		return false
	}
	return t.Path.Length() > 0
}

// EncodePath serializes a path as a JSON array of [x, y] number pairs
// rounded to two decimals. This is the persistence format for template
// paths; it round-trips within 0.01 per coordinate.
func EncodePath(p Path) (string, error) {
	pairs := make([][2]float64, len(p))
	for i, pt := range p {
		pairs[i] = [2]float64{round2(pt.X), round2(pt.Y)}
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode path: %w", err)
	}
	return string(data), nil
}

// DecodePath parses the [x, y] pair encoding produced by EncodePath.
// Returns an error for malformed data so callers can skip corrupt
// templates instead of aborting a scan.
func DecodePath(data string) (Path, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(data), &pairs); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}

	path := make(Path, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("decode path: element %d has %d coordinates, want 2", i, len(pair))
		}
		path[i] = Point{X: pair[0], Y: pair[1]}
	}

	return path, nil
}

// round2 rounds a coordinate to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
