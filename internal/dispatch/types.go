// Package dispatch resolves matched gesture commands to plugin actions
// and executes them.
package dispatch

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents a request sent to a plugin for execution.
type Request struct {
	Action  string          `json:"action"`
	Command string          `json:"command"`
	Gesture string          `json:"gesture"`
	Score   float64         `json:"score"`
	Config  json.RawMessage `json:"config"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Binding connects a command identifier to a plugin action.
type Binding struct {
	CommandID  string
	PluginName string
	ActionName string
	Config     json.RawMessage
	Enabled    bool
}

// BindingSource looks up the binding for a command identifier.
// Implementations return nil, nil when the command is unbound.
type BindingSource interface {
	BindingForCommand(commandID string) (*Binding, error)
}
