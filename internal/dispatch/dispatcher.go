package dispatch

import (
	"fmt"
	"log"
)

// Dispatcher resolves matched command ids to plugin actions and runs
// them. Unbound or disabled commands are logged no-ops: a dispatch
// failure must never propagate back into pointer event handling.
type Dispatcher struct {
	bindings BindingSource
	manager  *Manager
	executor *Executor
}

// NewDispatcher creates a Dispatcher over the given binding source,
// plugin manager and executor.
func NewDispatcher(bindings BindingSource, manager *Manager, executor *Executor) *Dispatcher {
	return &Dispatcher{
		bindings: bindings,
		manager:  manager,
		executor: executor,
	}
}

// Dispatch looks up the binding for commandID and executes the bound
// plugin action. The gesture name and match score travel with the
// request so plugins can log or branch on them.
func (d *Dispatcher) Dispatch(commandID, gestureName string, score float64) error {
	binding, err := d.bindings.BindingForCommand(commandID)
	if err != nil {
		return fmt.Errorf("failed to look up binding for %q: %w", commandID, err)
	}

	if binding == nil {
		log.Printf("dispatch: command %q has no binding, skipping", commandID)
		return nil
	}
	if !binding.Enabled {
		log.Printf("dispatch: binding for %q is disabled, skipping", commandID)
		return nil
	}

	plugin, err := d.manager.Get(binding.PluginName)
	if err != nil {
		return fmt.Errorf("failed to resolve plugin %q for %q: %w", binding.PluginName, commandID, err)
	}

	req := &Request{
		Action:  binding.ActionName,
		Command: commandID,
		Gesture: gestureName,
		Score:   score,
		Config:  binding.Config,
	}

	resp, err := d.executor.Execute(plugin, req)
	if err != nil {
		return fmt.Errorf("failed to execute %s/%s: %w", binding.PluginName, binding.ActionName, err)
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s/%s reported failure: %s", binding.PluginName, binding.ActionName, resp.Error)
	}

	log.Printf("dispatch: executed %s/%s for gesture %q (score %.3f)",
		binding.PluginName, binding.ActionName, gestureName, score)
	return nil
}
