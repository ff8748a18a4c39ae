package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layoutforge/abi/internal/resolver"
	"github.com/layoutforge/abi/internal/schema"
)

func resolveOne(t *testing.T, reg *schema.Registry) *resolver.Model {
	t.Helper()
	m, err := resolver.Resolve(reg)
	require.NoError(t, err)
	return m
}

// Scenario 1 (spec.md §8): a flat constant-size struct decodes its three
// fields at their precomputed offsets.
func TestParseConstantStruct(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Packet", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "a", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U32)}}},
			{Name: "b", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "c", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
		},
	}})
	model := resolveOne(t, reg)

	buf := []byte{1, 0, 0, 0, 2, 0, 3, 0}
	rv, err := Parse(model, "Packet", buf, nil)
	require.NoError(t, err)
	require.Equal(t, 8, rv.Length)

	st := rv.Value.(Struct)
	require.Len(t, st.Fields, 3)
	require.EqualValues(t, 1, st.Fields[0].Value.Value.(Primitive).Bits)
	require.EqualValues(t, 2, st.Fields[1].Value.Value.(Primitive).Bits)
	require.EqualValues(t, 3, st.Fields[2].Value.Value.(Primitive).Bits)
}

// Scenario 2 (spec.md §8): a U16 count followed by a (non-jagged) U8 array
// sized by that sibling field.
func TestParseCountedArrayStruct(t *testing.T) {
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
	model := resolveOne(t, reg)

	buf := []byte{3, 0, 10, 20, 30}
	rv, err := Parse(model, "Blob", buf, nil)
	require.NoError(t, err)
	require.Equal(t, 5, rv.Length)

	st := rv.Value.(Struct)
	data := st.Fields[1].Value.Value.(Array)
	require.Len(t, data.Elements, 3)
	require.EqualValues(t, 10, data.Elements[0].Value.(Primitive).Bits)
	require.EqualValues(t, 20, data.Elements[1].Value.(Primitive).Bits)
	require.EqualValues(t, 30, data.Elements[2].Value.(Primitive).Bits)
}

// Scenario 3 (spec.md §8): a packed struct whose second field is an enum
// tagged by the first, constant-folding sibling field reads through the
// live frame (fallback level 2).
func TestParsePackedStructEmbeddedEnum(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Frame", Kind: &schema.StructDef{
		Packed: true,
		Fields: []schema.StructField{
			{Name: "tag", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}}},
			{Name: "body", Type: schema.TypeRef{Inline: &schema.EnumDef{
				TagExpr: schema.FieldRef("tag"),
				Variants: []schema.EnumVariant{
					{Name: "a", TagValue: 0, Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}}},
					{Name: "b", TagValue: 1, Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
				},
			}}},
		},
	}})
	model := resolveOne(t, reg)

	buf := []byte{1, 0x34, 0x12}
	rv, err := Parse(model, "Frame", buf, nil)
	require.NoError(t, err)
	require.Equal(t, 3, rv.Length)

	st := rv.Value.(Struct)
	body := st.Fields[1].Value.Value.(Enum)
	require.Equal(t, "b", body.Variant)
	require.EqualValues(t, 1, body.TagValue)
	require.EqualValues(t, 0x1234, body.Inner.Value.(Primitive).Bits)
}

// Scenario 4 (spec.md §8): a size-discriminated union selects its variant
// purely from the remaining buffer length.
func TestParseSizeDiscriminatedUnion(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Payload", Kind: &schema.SDUDef{
		Variants: []schema.SDUVariant{
			{Name: "small", ExpectedSize: 2, Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "large", ExpectedSize: 4, Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U32)}}},
		},
	}})
	model := resolveOne(t, reg)

	rv, err := Parse(model, "Payload", []byte{0x34, 0x12}, nil)
	require.NoError(t, err)
	sdu := rv.Value.(SizeDiscriminatedUnion)
	require.Equal(t, "small", sdu.Variant)
	require.EqualValues(t, 0x1234, sdu.Inner.Value.(Primitive).Bits)

	_, err = Parse(model, "Payload", []byte{1, 2, 3}, nil)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrInvalidSizeDiscriminatedUnionSize, perr.Kind)
}

// Scenario 5 (spec.md §8): a jagged array of variable-size struct elements
// sums each element's own consumed length as it goes.
func TestParseJaggedArrayOfVariableElements(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Items", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "n", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "items", Type: schema.TypeRef{Inline: &schema.ArrayDef{
				Jagged: true,
				Element: schema.TypeRef{Inline: &schema.StructDef{
					Fields: []schema.StructField{
						{Name: "len", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
						{Name: "data", Type: schema.TypeRef{Inline: &schema.ArrayDef{
							Element:  schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}},
							SizeExpr: schema.FieldRef("len"),
						}}},
					},
				}},
				SizeExpr: schema.FieldRef("n"),
			}}},
		},
	}})
	model := resolveOne(t, reg)

	// n=2; element 0: len=1,data=[9]; element 1: len=2,data=[7,8].
	buf := []byte{2, 0, 1, 0, 9, 2, 0, 7, 8}
	rv, err := Parse(model, "Items", buf, nil)
	require.NoError(t, err)
	require.Equal(t, len(buf), rv.Length)

	st := rv.Value.(Struct)
	items := st.Fields[1].Value.Value.(Array)
	require.Len(t, items.Elements, 2)

	e0 := items.Elements[0].Value.(Struct)
	require.EqualValues(t, 1, e0.Fields[0].Value.Value.(Primitive).Bits)
	d0 := e0.Fields[1].Value.Value.(Array)
	require.Len(t, d0.Elements, 1)
	require.EqualValues(t, 9, d0.Elements[0].Value.(Primitive).Bits)

	e1 := items.Elements[1].Value.(Struct)
	require.EqualValues(t, 2, e1.Fields[0].Value.Value.(Primitive).Bits)
	d1 := e1.Fields[1].Value.Value.(Array)
	require.Len(t, d1.Elements, 2)
	require.EqualValues(t, 7, d1.Elements[0].Value.(Primitive).Bits)
	require.EqualValues(t, 8, d1.Elements[1].Value.(Primitive).Bits)
}

// A plain union is discriminated by an externally-supplied __variant
// selector, never by buffer size (spec.md §4.2) — for a root-level union
// the selector's key is just "__variant".
func TestParseUnionExternalSelector(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Sel", Kind: &schema.UnionDef{
		Variants: []schema.UnionVariant{
			{Name: "asU16", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "asI16", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.I16)}}},
		},
	}})
	model := resolveOne(t, reg)

	params := NewParamMap()
	params.Set("__variant", 1)

	rv, err := Parse(model, "Sel", []byte{0xff, 0xff}, params)
	require.NoError(t, err)
	u := rv.Value.(Union)
	require.Equal(t, "asI16", u.Variant)
}

// Insufficient buffer data surfaces as ErrInsufficientData, not a panic.
func TestParseInsufficientData(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Insert(schema.TypeDef{Name: "Packet", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "a", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U32)}}},
		},
	}})
	model := resolveOne(t, reg)

	_, err := Parse(model, "Packet", []byte{1, 2}, nil)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrInsufficientData, perr.Kind)
}

func TestParamMapSuffixMatch(t *testing.T) {
	m := NewParamMap()
	m.Set("data.count", 7)

	v, ok := m.Lookup("count")
	require.True(t, ok)
	require.EqualValues(t, 7, v)

	_, ok = m.Lookup("other")
	require.False(t, ok)
}
