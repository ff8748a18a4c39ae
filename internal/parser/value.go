// Package parser implements the Reflective Parser (spec.md §4.5): given a
// ResolvedType, a byte buffer and a ParamMap, it decodes a ReflectedValue
// tree without any generated, type-specific code.
package parser

import (
	"github.com/layoutforge/abi/internal/resolver"
	"github.com/layoutforge/abi/internal/schema"
)

// Value is the sum of every decoded shape (spec.md §4.5 "Value tree").
type Value interface{ isValue() }

type value struct{}

func (value) isValue() {}

// Primitive carries a decoded leaf scalar as raw bits; Type says how to
// interpret them (spec.md §4.5: "Primitive(kind-tagged numeric)").
type Primitive struct {
	value
	Type schema.PrimitiveType
	Bits uint64
}

// NamedField is one entry of a decoded Struct, in declaration order.
type NamedField struct {
	Name  string
	Value *ReflectedValue
}

// Struct is an ordered list of named fields.
type Struct struct {
	value
	Fields []NamedField
}

// Union carries the selected variant's name and its own decoded body.
type Union struct {
	value
	Variant string
	Inner   *ReflectedValue
}

// Enum carries the selected variant's name, the tag value that selected
// it, and the variant's own decoded body.
type Enum struct {
	value
	Variant  string
	TagValue uint64
	Inner    *ReflectedValue
}

// Array is an ordered list of decoded elements.
type Array struct {
	value
	Elements []*ReflectedValue
}

// SizeDiscriminatedUnion carries the selected variant's name (chosen by
// matching remaining buffer length) and its decoded body.
type SizeDiscriminatedUnion struct {
	value
	Variant string
	Inner   *ReflectedValue
}

// TypeRef carries the target type name and the decoded body reached
// through it.
type TypeRef struct {
	value
	Target string
	Inner  *ReflectedValue
}

// ReflectedValue pairs a decoded Value with the ResolvedType descriptor
// that produced it, plus the byte range it occupied in its buffer, so
// downstream consumers (validators, equality checks, printers) can work
// without re-consulting the resolver (spec.md §4.5).
type ReflectedValue struct {
	Type   *resolver.ResolvedType
	Offset int
	Length int
	Value  Value
}
