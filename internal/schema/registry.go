package schema

import "sort"

// Registry is the immutable set of TypeDef values a schema loader populates
// before resolution begins (spec.md §6 item 1). It is the sole input to
// the Resolver.
type Registry struct {
	defs map[string]TypeDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]TypeDef)}
}

// Insert adds or overwrites a TypeDef by name.
func (r *Registry) Insert(def TypeDef) {
	r.defs[def.Name] = def
}

// Lookup returns the TypeDef for name, if present.
func (r *Registry) Lookup(name string) (TypeDef, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns every registered type name, sorted, so callers that range
// over the registry get deterministic iteration order (spec.md §3.5 inv. 7).
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len is the number of registered types.
func (r *Registry) Len() int { return len(r.defs) }
