// Package resolver implements the Type Resolver (spec.md §4.1): it
// consumes an immutable schema.Registry and produces, for every name, a
// ResolvedType carrying computed layout, alignment and size classification.
package resolver

import (
	"sort"

	"github.com/layoutforge/abi/internal/debug"
	"github.com/layoutforge/abi/internal/graph"
	"github.com/layoutforge/abi/internal/schema"
)

// Model is the published resolution result (spec.md §6 item 2).
type Model struct {
	Types           map[string]*ResolvedType
	ResolutionOrder []string

	registry *schema.Registry
}

// Lookup returns the resolved type for name, if present.
func (m *Model) Lookup(name string) (*ResolvedType, bool) {
	t, ok := m.Types[name]
	return t, ok
}

// HasVariableRuntimeSize implements spec.md §6 item 2.
func (m *Model) HasVariableRuntimeSize(name string) bool {
	t, ok := m.Types[name]
	return ok && t.VariableRuntimeSize()
}

// NonConstantDependencies implements spec.md §6 item 2: the flattened set
// of dotted paths this type's footprint needs at runtime.
func (m *Model) NonConstantDependencies(name string) []string {
	t, ok := m.Types[name]
	if !ok || t.Size.IsConst() {
		return nil
	}
	return t.Size.Dynamic().Flatten()
}

type resolver struct {
	reg   *schema.Registry
	model *Model
	opts  Options
	depth int
}

// Resolve resolves every type in reg once, in the dependency order the
// Layout Graph computes (§4.3), after rejecting any cycle that graph
// reports, using the default Options.
func Resolve(reg *schema.Registry) (*Model, error) {
	return ResolveWithOptions(reg, NewOptions())
}

// ResolveWithOptions is Resolve with caller-supplied Options.
func ResolveWithOptions(reg *schema.Registry, opts Options) (*Model, error) {
	model := &Model{Types: make(map[string]*ResolvedType), registry: reg}
	c := &resolver{reg: reg, model: model, opts: opts}

	names := reg.Names()

	dag := graph.Build(names, func(name string) []string {
		def, ok := reg.Lookup(name)
		if !ok {
			return nil
		}
		return directDeps(def.Kind)
	})

	if cycles := dag.Cycles(); len(cycles) > 0 {
		sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
		return nil, circularDependency(cycles[0])
	}

	order := dag.Order()
	debug.Log(nil, "Resolve", "%d types in order %v", len(order), order)

	for _, name := range order {
		def, ok := reg.Lookup(name)
		if !ok {
			// Referenced only, never defined: surfaced at the point of use
			// as UnknownType instead of here.
			continue
		}
		rt, err := c.resolveTypeDef(def)
		if err != nil {
			return nil, err
		}
		model.Types[name] = rt
		model.ResolutionOrder = append(model.ResolutionOrder, name)
	}

	return model, nil
}

// directDeps lists the named TypeRef targets and nested inline kinds a
// TypeKind textually depends on, for the Layout Graph (spec.md §4.3).
func directDeps(k schema.TypeKind) []string {
	var out []string
	var addRef func(schema.TypeRef)
	addRef = func(r schema.TypeRef) {
		if r.Inline != nil {
			out = append(out, directDeps(r.Inline)...)
			return
		}
		out = append(out, r.Name)
	}

	switch v := k.(type) {
	case *schema.PrimitiveDef:
	case *schema.StructDef:
		for _, f := range v.Fields {
			addRef(f.Type)
		}
	case *schema.UnionDef:
		for _, variant := range v.Variants {
			addRef(variant.Type)
		}
	case *schema.EnumDef:
		for _, variant := range v.Variants {
			addRef(variant.Type)
		}
	case *schema.ArrayDef:
		addRef(v.Element)
	case *schema.SDUDef:
		for _, variant := range v.Variants {
			addRef(variant.Type)
		}
	case *schema.TypeRefDef:
		out = append(out, v.Target)
	}
	return out
}
