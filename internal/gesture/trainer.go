package gesture

import (
	"encoding/json"
	"fmt"
)

// Trainer processes recorded samples into a single template path.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// RecordedSample is one raw capture of a gesture submitted for training.
// The path field uses the [x, y] pair encoding of EncodePath.
type RecordedSample struct {
	Path      json.RawMessage `json:"path"`
	Timestamp int64           `json:"timestamp"`
}

// Train averages multiple recorded samples of the same gesture into a
// single normalized path of n points. Every sample is normalized before
// averaging so captures of different sizes and positions contribute
// equally.
func (t *Trainer) Train(samples []json.RawMessage, n int) (Path, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}
	if n < 2 {
		return nil, fmt.Errorf("target point count must be at least 2, got %d", n)
	}

	var normalized []Path
	for i, raw := range samples {
		var sample RecordedSample
		if err := json.Unmarshal(raw, &sample); err != nil {
			return nil, fmt.Errorf("failed to parse sample %d: %w", i, err)
		}

		path, err := DecodePath(string(sample.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to decode sample %d path: %w", i, err)
		}

		if len(path) < 2 || path.Length() == 0 {
			return nil, fmt.Errorf("sample %d has insufficient path points", i)
		}

		normalized = append(normalized, Normalize(path, n))
	}

	// Average point-wise across the aligned samples.
	averaged := make(Path, n)
	count := float64(len(normalized))

	for i := 0; i < n; i++ {
		var sumX, sumY float64
		for _, path := range normalized {
			sumX += path[i].X
			sumY += path[i].Y
		}
		averaged[i] = Point{X: sumX / count, Y: sumY / count}
	}

	return averaged, nil
}
