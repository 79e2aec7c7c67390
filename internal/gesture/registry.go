package gesture

import "sync"

// Registry tracks the engines currently attached to anchors. The owning
// feature manager constructs one registry and passes it to every place
// engines are created and torn down; there is no process-wide list.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]*Engine
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]*Engine),
	}
}

// Add registers an engine under the given anchor id. An engine already
// registered under that id is closed and replaced.
func (r *Registry) Add(anchorID string, e *Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.engines[anchorID]; ok {
		prev.Close()
	}
	r.engines[anchorID] = e
}

// Remove closes and deregisters the engine for the given anchor id.
// Removing an unknown id is a no-op.
func (r *Registry) Remove(anchorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[anchorID]; ok {
		e.Close()
		delete(r.engines, anchorID)
	}
}

// Get returns the engine registered under the given anchor id.
func (r *Registry) Get(anchorID string) (*Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engines[anchorID]
	return e, ok
}

// Len returns the number of registered engines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// CloseAll closes and deregisters every engine.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.engines {
		e.Close()
		delete(r.engines, id)
	}
}
