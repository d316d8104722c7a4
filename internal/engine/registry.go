package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe factory of named engines. Creators register
// lazily; instances are built on first request, wrapped in the
// instrumentation decorator, and cached for reuse.
type Registry struct {
	mu       sync.RWMutex
	creators map[string]func() Engine
	engines  map[string]Engine
}

// NewRegistry returns a registry pre-populated with the standard engines:
//
//   - "barrett": the native Barrett-reduction ring (default)
//   - "stdlib":  math/big reference, used for cross-checking
//
// The "gmp" engine registers itself when the binary is built with the gmp
// build tag.
func NewRegistry() *Registry {
	r := &Registry{
		creators: make(map[string]func() Engine),
		engines:  make(map[string]Engine),
	}
	r.Register("barrett", func() Engine { return NewBarrettEngine() })
	r.Register("stdlib", func() Engine { return NewStdlibEngine() })
	return r
}

// Register adds a named engine creator, replacing any previous registration
// with the same name and dropping its cached instance.
func (r *Registry) Register(name string, creator func() Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[name] = creator
	delete(r.engines, name)
}

// Get returns the shared, instrumented engine instance for name.
func (r *Registry) Get(name string) (Engine, error) {
	r.mu.RLock()
	if e, ok := r.engines[name]; ok {
		r.mu.RUnlock()
		return e, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[name]; ok {
		return e, nil
	}
	creator, ok := r.creators[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown engine %q", name)
	}
	e := Instrument(creator())
	r.engines[name] = e
	return e, nil
}

// List returns the registered engine names in sorted order, so callers that
// iterate (the CLI's "all" mode) behave reproducibly.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.creators))
	for name := range r.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is the process-wide registry. Build-tag-gated engines
// (currently only gmp) add themselves to it from their init functions.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }
