package gesture

import (
	"log"
	"sync"
)

// Default engine parameters.
const (
	// DefaultResamplePoints is the fixed point count normalized paths
	// are resampled to before comparison.
	DefaultResamplePoints = 40
	// DefaultMinLength is the minimum arc length in pixels for a drag
	// to count as a gesture rather than an accidental tap.
	DefaultMinLength = 100.0
	// DefaultThreshold is the maximum mean angular difference in
	// radians for a template to be accepted as a match.
	DefaultThreshold = 0.5
	// DefaultDampenExponent controls the power scaling applied to live
	// drag feedback offsets.
	DefaultDampenExponent = 0.75
)

// TemplateSource supplies the current template library. It is read at
// classification time, never cached, so newly assigned templates are
// matchable immediately.
type TemplateSource interface {
	Templates() ([]*Template, error)
}

// Result is the outcome of classifying a completed gesture.
type Result struct {
	// Matched reports whether a template scored below the acceptance
	// threshold.
	Matched bool
	// Template is the best-scoring template. Set only when Matched.
	Template *Template
	// Score is the mean angular difference in radians against
	// Template; lower is better. Set only when Matched.
	Score float64
	// Path is the normalized input path, offered for template
	// assignment. Set only when not Matched.
	Path Path
}

// Config holds engine construction parameters. Zero values fall back to
// the package defaults.
type Config struct {
	ResamplePoints int
	MinLength      float64
	Threshold      float64
	DampenExponent float64

	// Templates is the live template library read during
	// classification.
	Templates TemplateSource

	// OnFeedback, when set, receives the dampened displacement from
	// the press position on every pointer move. It affects only
	// presentation, never the recorded path.
	OnFeedback func(offset Point)
}

// engine capture states.
type engineState int

const (
	stateIdle engineState = iota
	stateDragging
)

// Engine converts a raw pointer drag into either a matched template or a
// normalized path to be offered for assignment. One engine serves one
// anchor; feed it PointerDown, PointerMove and PointerUp in event order.
type Engine struct {
	config Config

	mu     sync.Mutex
	state  engineState
	start  Point
	last   Point
	raw    Path
	closed bool
}

// NewEngine creates an Engine with the given configuration, filling in
// defaults for unset numeric fields.
func NewEngine(config Config) *Engine {
	if config.ResamplePoints <= 0 {
		config.ResamplePoints = DefaultResamplePoints
	}
	if config.MinLength <= 0 {
		config.MinLength = DefaultMinLength
	}
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.DampenExponent <= 0 {
		config.DampenExponent = DefaultDampenExponent
	}

	return &Engine{config: config}
}

// PointerDown begins a capture at p. A press while a gesture is already
// in progress is ignored until the current gesture resolves.
func (e *Engine) PointerDown(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state == stateDragging {
		return
	}

	e.state = stateDragging
	e.start = p
	e.last = p
	e.raw = Path{p}
}

// PointerMove appends the raw position to the capture and emits the
// dampened displacement through the feedback hook. Moves outside a
// capture are ignored.
func (e *Engine) PointerMove(p Point) {
	e.mu.Lock()
	if e.closed || e.state != stateDragging {
		e.mu.Unlock()
		return
	}

	e.raw = append(e.raw, p)
	e.last = p
	feedback := e.config.OnFeedback
	offset := p.Sub(e.start).Dampen(e.config.DampenExponent)
	e.mu.Unlock()

	// Feedback runs outside the lock; it is presentation only.
	if feedback != nil {
		feedback(offset)
	}
}

// PointerUp completes the capture and classifies the recorded path.
// Returns nil when no gesture was in progress or the drag was rejected
// as an accidental tap.
func (e *Engine) PointerUp(p Point) *Result {
	e.mu.Lock()
	if e.closed || e.state != stateDragging {
		e.mu.Unlock()
		return nil
	}

	e.raw = append(e.raw, p)
	raw := e.raw
	e.state = stateIdle
	e.raw = nil
	e.mu.Unlock()

	return e.Classify(raw)
}

// Dragging reports whether a capture is in progress.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateDragging
}

// Close detaches the engine: any capture in progress is discarded and
// subsequent pointer events are ignored. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.state = stateIdle
	e.raw = nil
}

// Classify normalizes a completed raw path and scores it against the
// template library. Returns nil when the input is too short to count as
// a gesture. Templates that fail validation are skipped without aborting
// the scan.
func (e *Engine) Classify(raw Path) *Result {
	if len(raw) < 2 || raw.Length() < e.config.MinLength {
		return nil
	}

	normalized := Normalize(raw, e.config.ResamplePoints)

	var (
		best      *Template
		bestScore float64
	)

	if e.config.Templates != nil {
		templates, err := e.config.Templates.Templates()
		if err != nil {
			log.Printf("gesture: failed to read template library: %v", err)
		}

		for _, t := range templates {
			if !t.Valid() {
				continue
			}

			// Stored paths are normalized at save time, but the
			// resample count may have changed since.
			candidate := t.Path
			if len(candidate) != e.config.ResamplePoints {
				candidate = Resample(candidate, e.config.ResamplePoints)
			}

			score, err := AngularDifference(normalized, candidate)
			if err != nil {
				continue
			}

			if best == nil || score < bestScore {
				best = t
				bestScore = score
			}
		}
	}

	if best != nil && bestScore < e.config.Threshold {
		return &Result{Matched: true, Template: best, Score: bestScore}
	}

	return &Result{Matched: false, Path: normalized}
}
