package abi

import "github.com/layoutforge/abi/internal/resolver"

// Model is the resolution result (spec.md §6 item 2): every registered
// type's computed layout, alignment and size classification, plus the
// order types were resolved in.
type Model = resolver.Model

// ResolvedType is one type's resolved layout.
type ResolvedType = resolver.ResolvedType

// SchemaError is returned by Resolve: unknown type, circular dependency,
// invalid comment, non-constant type reference, field-reference-not-
// found, field-reference-not-primitive, or tail-rule violation (spec.md
// §7). Fatal for the offending type.
type SchemaError = resolver.Error

// ResolveOptions configures a Resolve run: currently just the maximum
// depth of inline nested type bodies the resolver will follow before
// aborting.
type ResolveOptions = resolver.Options

// NewResolveOptions returns the default ResolveOptions.
func NewResolveOptions() ResolveOptions { return resolver.NewOptions() }

// Resolve runs the Type Resolver over reg, producing a Model (spec.md
// §4.1), using the default ResolveOptions.
func Resolve(reg *Registry) (*Model, error) {
	return resolver.Resolve(reg)
}

// ResolveWithOptions is Resolve with caller-supplied ResolveOptions.
func ResolveWithOptions(reg *Registry, opts ResolveOptions) (*Model, error) {
	return resolver.ResolveWithOptions(reg, opts)
}
