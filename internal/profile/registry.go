package profile

import (
	"sort"
	"strings"
)

// Registry holds institution profiles keyed by name.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register adds a profile. Panics on duplicate name.
func (r *Registry) Register(p *Profile) {
	key := strings.ToLower(p.Name)
	if _, ok := r.profiles[key]; ok {
		panic("duplicate profile name: " + key)
	}
	r.profiles[key] = p
}

// Resolve returns the profile for an institution name, or
// UnsupportedInstitutionError if none is registered.
func (r *Registry) Resolve(name string) (*Profile, error) {
	p, ok := r.profiles[strings.ToLower(name)]
	if !ok {
		return nil, &UnsupportedInstitutionError{Name: name}
	}
	return p, nil
}

// Names returns the registered institution names, lowercased and sorted.
// These are the names Resolve accepts and the statement directory names
// init scaffolds.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for key := range r.profiles {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range builtins() {
		r.Register(p)
	}
	return r
}
