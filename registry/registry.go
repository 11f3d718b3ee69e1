// Package registry maps engine names to completion models.
//
// It lets the web layer and CLI look up engines by the name that
// appears in the request path (for example "175b") without depending
// on concrete client construction.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ncecere/textgen-demo/engine"
)

// Registry is a name-to-engine lookup.
type Registry interface {
	// Engine returns the completion model registered under name.
	// If no such engine exists, a *NoSuchEngineError is returned.
	Engine(name string) (engine.CompletionModel, error)

	// Register registers or replaces an engine under the given name.
	// Passing a nil model removes any existing registration.
	Register(name string, model engine.CompletionModel)

	// Names returns the registered engine names in sorted order.
	Names() []string
}

// NoSuchEngineError indicates that a requested engine name was not
// found in the registry.
type NoSuchEngineError struct {
	// Name is the engine name that was requested.
	Name string
}

func (e *NoSuchEngineError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("registry: no engine registered under %q", e.Name)
}

// New returns an empty in-memory Registry safe for concurrent use.
func New() Registry {
	return &inMemory{models: make(map[string]engine.CompletionModel)}
}

type inMemory struct {
	mu     sync.RWMutex
	models map[string]engine.CompletionModel
}

func (r *inMemory) Engine(name string) (engine.CompletionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	model, ok := r.models[name]
	if !ok {
		return nil, &NoSuchEngineError{Name: name}
	}
	return model, nil
}

func (r *inMemory) Register(name string, model engine.CompletionModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if model == nil {
		delete(r.models, name)
		return
	}
	r.models[name] = model
}

func (r *inMemory) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
