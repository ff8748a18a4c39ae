package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layoutforge/abi/internal/schema"
)

func mustResolve(t *testing.T, reg *schema.Registry) *Model {
	t.Helper()
	m, err := Resolve(reg)
	require.NoError(t, err)
	return m
}

// Scenario 1 (spec.md §8): Struct{a:U32 @0, b:U16 @4, c:U16 @6}: size=8,
// alignment=4.
func TestResolveStructConstantOffsets(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Packet", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "a", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U32)}}},
			{Name: "b", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "c", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
		},
	}})

	model := mustResolve(t, reg)
	rt, ok := model.Lookup("Packet")
	require.True(t, ok)
	require.True(t, rt.Size.IsConst())
	require.EqualValues(t, 8, rt.Size.Bytes())
	require.EqualValues(t, 4, rt.Alignment)

	st := rt.Kind.(ResolvedStruct)
	require.Len(t, st.Fields, 3)
	require.EqualValues(t, 0, *st.Fields[0].Offset)
	require.EqualValues(t, 4, *st.Fields[1].Offset)
	require.EqualValues(t, 6, *st.Fields[2].Offset)
}

// Scenario 2 (spec.md §8): Struct{count:U16 @0, data:U8[count] @2} — the
// array of U8 has alignment 1, the struct's own alignment is its max
// field alignment (2, from count), so the variable struct still reports
// alignment 2 even though it can't compute a constant size.
func TestResolveStructCountedArrayTail(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Blob", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "count", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "data", Type: schema.TypeRef{Inline: &schema.ArrayDef{
				Element:  schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}},
				SizeExpr: schema.FieldRef("count"),
			}}},
		},
	}})

	model := mustResolve(t, reg)
	rt, ok := model.Lookup("Blob")
	require.True(t, ok)
	require.False(t, rt.Size.IsConst())
	require.EqualValues(t, 2, rt.Alignment)

	// "count" is a sibling field at the struct's own level, so per the
	// path-prefixing rule (spec.md §4.2) its reference stays unprefixed.
	params := rt.Size.Dynamic().Flatten()
	require.Contains(t, params, "count")
}

// Scenario 6 (spec.md §8): two structs referencing each other by TypeRef
// must be rejected as a circular dependency.
func TestResolveCircularDependency(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "A", Kind: &schema.StructDef{
		Fields: []schema.StructField{{Name: "b", Type: schema.Named("B")}},
	}})
	reg.Insert(schema.TypeDef{Name: "B", Kind: &schema.StructDef{
		Fields: []schema.StructField{{Name: "a", Type: schema.Named("A")}},
	}})

	_, err := Resolve(reg)
	require.Error(t, err)
	rerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrCircularDependency, rerr.Kind)
}

// A struct whose first field is variable-size must have that field as its
// only field (boundary property, spec.md §8); a constant field following a
// variable one is rejected by the tail rule.
func TestResolveStructTailRuleViolation(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Bad", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "n", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "data", Type: schema.TypeRef{Inline: &schema.ArrayDef{
				Element:  schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}},
				SizeExpr: schema.FieldRef("n"),
			}}},
			{Name: "trailer", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}}},
		},
	}})

	_, err := Resolve(reg)
	require.Error(t, err)
	rerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrTailRuleViolation, rerr.Kind)
}

// A packed struct with aligned=0 has struct alignment 1 (boundary property,
// spec.md §8).
func TestResolveStructPackedAlignment(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Packed", Kind: &schema.StructDef{
		Packed: true,
		Fields: []schema.StructField{
			{Name: "a", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U32)}}},
			{Name: "b", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
		},
	}})

	model := mustResolve(t, reg)
	rt, ok := model.Lookup("Packed")
	require.True(t, ok)
	require.EqualValues(t, 1, rt.Alignment)
	require.True(t, rt.Size.IsConst())
	require.EqualValues(t, 6, rt.Size.Bytes())
}
