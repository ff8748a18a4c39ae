package abi

import "github.com/layoutforge/abi/internal/schema"

// Registry is the immutable set of named type definitions a consumer
// builds up before resolving (spec.md §6 item 1). The schema loader that
// parses surface syntax into TypeDef values is out of scope for this
// module.
type Registry = schema.Registry

// TypeDef names one entry in a Registry.
type TypeDef = schema.TypeDef

// NewRegistry returns an empty Registry ready for TypeDef inserts.
func NewRegistry() *Registry { return schema.NewRegistry() }
