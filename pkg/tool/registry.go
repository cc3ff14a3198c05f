package tool

import (
	"strings"
	"sync"
)

// Registry is the static catalog of callable tools. Registration order is
// preserved: some vendors cap the number of declarations a request may
// carry, and callers pre-filter by category counting on a stable order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	specs map[string]Spec
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a Spec to the catalog. A malformed parameters schema or a
// duplicate name is rejected here, at process start, never at call time.
func (r *Registry) Register(s Spec) error {
	if err := validateSpec(s); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[s.Name]; exists {
		return &SchemaError{Tool: s.Name, Reason: "duplicate tool name"}
	}
	r.order = append(r.order, s.Name)
	r.specs[s.Name] = s
	return nil
}

// MustRegister registers a Spec and panics on a schema error. Intended for
// static catalogs wired at startup.
func (r *Registry) MustRegister(s Spec) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get returns the Spec registered under name.
func (r *Registry) Get(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	return s, ok
}

// Find returns a Spec by name, case-insensitively, or false when missing.
func (r *Registry) Find(name string) (Spec, bool) {
	if s, ok := r.Get(name); ok {
		return s, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for n, s := range r.specs {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	return Spec{}, false
}

// List returns registered Specs in registration order. When categories are
// given, only tools in one of those categories are returned, still in
// registration order.
func (r *Registry) List(categories ...string) []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[string]bool
	if len(categories) > 0 {
		wanted = make(map[string]bool, len(categories))
		for _, c := range categories {
			wanted[strings.ToLower(c)] = true
		}
	}

	out := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		s := r.specs[name]
		if wanted != nil && !wanted[strings.ToLower(s.Category)] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
