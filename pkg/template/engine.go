package template

import (
	"fmt"
	"sync"
)

// RenderFunc is a compiled template ready to be applied to a data payload.
type RenderFunc func(data map[string]any) (string, error)

// Engine compiles placeholder content into render functions. Engines are
// registered under their Name and resolved per content field through the
// engineType control field.
type Engine interface {
	// Name returns the registry key for the engine.
	Name() string

	// Compile parses a template string into a reusable render function.
	Compile(source string) (RenderFunc, error)
}

// Registry is a name-keyed engine registry. Lookups for unregistered names
// fail closed with ErrEngineNotFound.
type Registry struct {
	engines map[string]Engine
	mu      sync.RWMutex
}

// NewRegistry creates a registry with the given engines registered.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{
		engines: make(map[string]Engine, len(engines)),
	}
	for _, e := range engines {
		r.Register(e)
	}
	return r
}

// Register adds an engine under its name, replacing any previous registration.
func (r *Registry) Register(engine Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[engine.Name()] = engine
}

// Get resolves an engine by name.
func (r *Registry) Get(name string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engine, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEngineNotFound, name)
	}
	return engine, nil
}
