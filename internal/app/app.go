// Package app wires the gesture engine, template store and command
// dispatcher into the Flick daemon.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/TheJusticeMan/flick/internal/dispatch"
	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/TheJusticeMan/flick/internal/store"
)

// DefaultPluginTimeout bounds a single plugin execution.
const DefaultPluginTimeout = 5 * time.Second

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	PluginDir      string
	ResamplePoints int
	MinLength      float64
	Threshold      float64
	DampenExponent float64
	PluginTimeout  time.Duration
}

// App owns the engine registry and routes classification results to the
// command dispatcher.
type App struct {
	config     Config
	registry   *gesture.Registry
	pluginMgr  *dispatch.Manager
	dispatcher *dispatch.Dispatcher
	templates  *templateSource

	enabled bool
	onMatch func(gestureName string)
	mu      sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.PluginTimeout <= 0 {
		config.PluginTimeout = DefaultPluginTimeout
	}

	manager := dispatch.NewManager(config.PluginDir)
	executor := dispatch.NewExecutor(config.PluginTimeout)

	a := &App{
		config:    config,
		registry:  gesture.NewRegistry(),
		pluginMgr: manager,
		templates: &templateSource{store: config.Store},
		enabled:   true,
	}
	a.dispatcher = dispatch.NewDispatcher(&bindingSource{store: config.Store}, manager, executor)

	return a
}

// SetEnabled enables or disables gesture recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnMatch sets a hook invoked with the gesture name after every
// successful match. Used by the tray to show the last gesture.
func (a *App) OnMatch(fn func(gestureName string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onMatch = fn
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Registry returns the engine registry.
func (a *App) Registry() *gesture.Registry {
	return a.registry
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *dispatch.Manager {
	return a.pluginMgr
}

// Templates returns the live template source backed by the store.
func (a *App) Templates() gesture.TemplateSource {
	return a.templates
}

// ResamplePoints returns the configured normalized path point count.
func (a *App) ResamplePoints() int {
	if a.config.ResamplePoints > 0 {
		return a.config.ResamplePoints
	}
	return gesture.DefaultResamplePoints
}

// NewEngine creates an engine bound to the store-backed template source.
// The caller registers it under an anchor id and feeds it pointer
// events.
func (a *App) NewEngine(onFeedback func(gesture.Point)) *gesture.Engine {
	return gesture.NewEngine(gesture.Config{
		ResamplePoints: a.config.ResamplePoints,
		MinLength:      a.config.MinLength,
		Threshold:      a.config.Threshold,
		DampenExponent: a.config.DampenExponent,
		Templates:      a.templates,
		OnFeedback:     onFeedback,
	})
}

// Classify runs the pure classification step over a completed raw path
// without any capture state. Used by the HTTP classify endpoint.
func (a *App) Classify(raw gesture.Path) *gesture.Result {
	return a.NewEngine(nil).Classify(raw)
}

// HandleResult routes a classification result: matches are dispatched
// to the bound plugin action, asynchronously so pointer handling never
// blocks on plugin execution. Unmatched results are left to the caller,
// which owns the assignment flow.
func (a *App) HandleResult(result *gesture.Result) {
	if result == nil || !result.Matched {
		return
	}

	a.mu.RLock()
	onMatch := a.onMatch
	a.mu.RUnlock()

	if onMatch != nil {
		onMatch(result.Template.Name)
	}

	template := result.Template
	score := result.Score
	go func() {
		if err := a.dispatcher.Dispatch(template.CommandID, template.Name, score); err != nil {
			log.Printf("app: dispatch for gesture %q failed: %v", template.Name, err)
		}
	}()
}

// Close tears down every registered engine.
func (a *App) Close() {
	a.registry.CloseAll()
}
