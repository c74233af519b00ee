package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownFormat is returned by Registry.Format for names that match
// neither a renderer nor an alias.
var ErrUnknownFormat = errors.New("report: unknown format")

// Registry maps --format values onto renderers. Names are matched case
// insensitively and aliases resolve to a registered renderer.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	aliases   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		aliases:   make(map[string]string),
	}
}

// DefaultRegistry returns a registry holding the text and json renderers,
// with "txt" and "plain" accepted for text.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(NewText())
	registry.MustRegister(NewJSON())
	registry.mustAlias("txt", "text")
	registry.mustAlias("plain", "text")
	return registry
}

// Register adds a renderer under its normalized Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("report: renderer is required")
	}
	name := normalizeFormat(renderer.Name())
	if name == "" {
		return fmt.Errorf("report: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(name) {
		return fmt.Errorf("report: format %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Alias makes alias resolve to the renderer registered as name.
func (r *Registry) Alias(alias, name string) error {
	alias, name = normalizeFormat(alias), normalizeFormat(name)
	if alias == "" {
		return fmt.Errorf("report: alias is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("report: alias %q targets unregistered format %q", alias, name)
	}
	if r.taken(alias) {
		return fmt.Errorf("report: format %q already registered", alias)
	}
	r.aliases[alias] = name
	return nil
}

func (r *Registry) mustAlias(alias, name string) {
	if err := r.Alias(alias, name); err != nil {
		panic(err)
	}
}

// Format resolves a --format value. Unknown values wrap ErrUnknownFormat and
// list the registered names.
func (r *Registry) Format(name string) (Renderer, error) {
	key := normalizeFormat(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[key]; ok {
		key = target
	}
	if renderer, ok := r.renderers[key]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(r.names(), ", "))
}

// List returns the sorted renderer names, aliases excluded.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

// Usage renders the registered names for flag help, e.g. "json|text".
func (r *Registry) Usage() string {
	return strings.Join(r.List(), "|")
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.renderers[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

func normalizeFormat(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
