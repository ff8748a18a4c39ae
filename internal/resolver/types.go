package resolver

import "github.com/layoutforge/abi/internal/schema"

// Size is a resolved type's footprint classification (spec.md §3.4).
type Size struct {
	constant bool
	bytes    uint64
	dynamic  DynamicParams
}

// ConstSize builds a constant-size Size of n bytes.
func ConstSize(n uint64) Size { return Size{constant: true, bytes: n} }

// VariableSize builds a variable-size Size carrying its dynamic parameters.
func VariableSize(params DynamicParams) Size { return Size{dynamic: params} }

// IsConst reports whether this size is fully determined at resolve time.
func (s Size) IsConst() bool { return s.constant }

// Bytes returns the constant byte count. Only meaningful if IsConst.
func (s Size) Bytes() uint64 { return s.bytes }

// Dynamic returns the dynamic parameter map. Only meaningful if !IsConst.
func (s Size) Dynamic() DynamicParams { return s.dynamic }

// FieldType is how a resolved composite refers to another type: either an
// owned inline nested ResolvedType, or a name resolved against the Model's
// type table. Children reference types by name through the registry, never
// by direct pointer, so resolved trees stay acyclic in memory even when
// types mutually reference each other by name (spec.md §9 design note).
type FieldType struct {
	Inline *ResolvedType
	Ref    string
}

// TypeName is the name this FieldType denotes for error messages and IR
// CallNested targets: either the inline type's own synthesized name, or Ref.
func (f FieldType) TypeName() string {
	if f.Inline != nil {
		return f.Inline.Name
	}
	return f.Ref
}

// ResolvedKind is the sum of resolved type bodies (spec.md §3.4).
type ResolvedKind interface{ isResolvedKind() }

type rkind struct{}

func (rkind) isResolvedKind() {}

type ResolvedPrimitive struct {
	rkind
	Type schema.PrimitiveType
}

type ResolvedField struct {
	Name    string
	Type    FieldType
	Offset  *uint64 // nil iff this field or a preceding field is variable-size
	Comment string
}

type ResolvedStruct struct {
	rkind
	Fields  []ResolvedField
	Packed  bool
	Aligned uint64
}

type ResolvedUnionVariant struct {
	Name string
	Type FieldType
}

type ResolvedUnion struct {
	rkind
	Variants []ResolvedUnionVariant
	Packed   bool
}

type ResolvedEnumVariant struct {
	Name                string
	TagValue            uint64
	Type                FieldType
	RequiresPayloadSize bool
}

type ResolvedEnum struct {
	rkind
	TagExpr     *schema.ExprKind
	TagConstant bool
	Variants    []ResolvedEnumVariant
}

type ResolvedArray struct {
	rkind
	Element      FieldType
	SizeExpr     *schema.ExprKind
	SizeConstant bool
	Jagged       bool
}

type ResolvedSDUVariant struct {
	Name         string
	ExpectedSize uint64
	Type         FieldType
}

type ResolvedSDU struct {
	rkind
	Variants []ResolvedSDUVariant
}

// ResolvedAlias is a top-level TypeDef{Kind: TypeRefDef} that does nothing
// but name another type; its Size/Alignment are the target's, copied at
// resolution time (spec.md §3.3, and the original_source supplement of
// keeping TypeRef nodes visible post-resolution; see SPEC_FULL.md).
type ResolvedAlias struct {
	rkind
	Target string
}

// ResolvedType is the resolver's output for one type name (spec.md §3.4).
type ResolvedType struct {
	Name      string
	Alignment uint64
	Size      Size
	Kind      ResolvedKind
	Comment   string
}

// VariableRuntimeSize reports whether this type's footprint needs runtime
// parameters (spec.md §6 item 2: has_variable_runtime_size).
func (t *ResolvedType) VariableRuntimeSize() bool { return !t.Size.IsConst() }
