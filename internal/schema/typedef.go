package schema

// TypeKind is the sum of every shape a TypeDef can take (spec.md §3.3).
type TypeKind interface{ isTypeKind() }

type kind struct{}

func (kind) isTypeKind() {}

// PrimitiveDef is a leaf scalar type definition.
type PrimitiveDef struct {
	kind
	Type PrimitiveType
}

// StructField is one named field of a StructDef, in declaration order.
type StructField struct {
	Name    string
	Type    TypeRef
	Comment string
}

// StructDef is an ordered list of named fields with container attributes.
type StructDef struct {
	kind
	Fields   []StructField
	Packed   bool
	Aligned  uint64 // 0 = default (natural max-field alignment)
	Comment  string
}

// UnionVariant is one named variant of a UnionDef.
type UnionVariant struct {
	Name string
	Type TypeRef
}

// UnionDef is an ordered list of named variants overlapping at offset 0.
type UnionDef struct {
	kind
	Variants []UnionVariant
	Packed   bool
	Comment  string
}

// EnumVariant is one named, tagged variant of an EnumDef.
type EnumVariant struct {
	Name                string
	TagValue            uint64
	Type                TypeRef
	RequiresPayloadSize bool
}

// EnumDef is a tagged union: a tag expression plus ordered variants, exactly
// one of which is active at runtime, selected by evaluating TagExpr.
type EnumDef struct {
	kind
	TagExpr  *ExprKind
	Variants []EnumVariant
	Comment  string
}

// ArrayDef is an element type plus a size expression. Jagged indicates the
// element type is variable-size, so the array's own footprint must sum
// each element's individual size rather than multiply by a constant.
type ArrayDef struct {
	kind
	Element TypeRef
	SizeExpr *ExprKind
	Jagged   bool
	Comment  string
}

// SDUVariant is one variant of a SizeDiscriminatedUnionDef, selected at
// parse time by matching the remaining buffer length against ExpectedSize.
type SDUVariant struct {
	Name         string
	ExpectedSize uint64
	Type         TypeRef
}

// SDUDef is a union whose active variant is chosen by the size of the
// remaining buffer rather than an explicit tag.
type SDUDef struct {
	kind
	Variants []SDUVariant
	Comment  string
}

// TypeRefDef names another registered type.
type TypeRefDef struct {
	kind
	Target string
}

// TypeRef is how every composite TypeKind refers to another type: either
// an inline nested kind, or a named reference resolved against the
// Registry. Exactly one of Inline/Name is set.
type TypeRef struct {
	Inline TypeKind
	Name   string
}

// IsNamed reports whether this reference is a TypeRef{Target: Name} rather
// than an inline nested kind.
func (r TypeRef) IsNamed() bool { return r.Inline == nil }

// Named builds a TypeRef that points to a registered type by name.
func Named(name string) TypeRef { return TypeRef{Name: name} }

// InlineRef builds a TypeRef that owns an inline nested type definition.
func InlineRef(k TypeKind) TypeRef { return TypeRef{Inline: k} }

// TypeDef is a named entry in the Registry: a name paired with its kind.
type TypeDef struct {
	Name string
	Kind TypeKind
}
