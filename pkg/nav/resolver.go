package nav

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Resolver maps a route name plus parameters to a concrete URL. Components
// receive a Resolver by injection instead of reaching into a process-global
// route table.
type Resolver interface {
	URL(name string, params map[string]string) (string, error)
}

// Routes is the registry-backed Resolver. Patterns use ":name" placeholder
// segments, e.g. "/admin/users/:id/edit".
type Routes struct {
	mu       sync.RWMutex
	patterns map[string]string
}

// NewRoutes creates an empty route table.
func NewRoutes() *Routes {
	return &Routes{
		patterns: make(map[string]string),
	}
}

// Register adds a named route pattern. Duplicate names return an error.
func (r *Routes) Register(name, pattern string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("nav: route name is required")
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return fmt.Errorf("nav: route %q: pattern is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patterns[name]; exists {
		return fmt.Errorf("nav: route %q already registered", name)
	}
	r.patterns[name] = pattern
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Routes) MustRegister(name, pattern string) {
	if err := r.Register(name, pattern); err != nil {
		panic(err)
	}
}

// URL resolves a route name, substituting ":param" segments from params.
// Unknown names and missing parameters are programmer errors and surface as
// returned errors rather than callbacks.
func (r *Routes) URL(name string, params map[string]string) (string, error) {
	r.mu.RLock()
	pattern, ok := r.patterns[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("nav: route %q not found", name)
	}

	segments := strings.Split(pattern, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		key := segment[1:]
		value, ok := params[key]
		if !ok || value == "" {
			return "", fmt.Errorf("nav: route %q: missing parameter %q", name, key)
		}
		segments[i] = value
	}
	return strings.Join(segments, "/"), nil
}

// List returns the registered route names, sorted.
func (r *Routes) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.patterns))
	for name := range r.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
