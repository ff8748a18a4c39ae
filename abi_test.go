package abi_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layoutforge/abi"
	"github.com/layoutforge/abi/internal/schema"
)

// Exercises the full pipeline — Registry, Resolve, Build, EncodeJSON and
// Parse — over one schema, mirroring the teacher's own end-to-end usage
// example (compile once, decode many).
func TestPipelineEndToEnd(t *testing.T) {
	reg := abi.NewRegistry()
	reg.Insert(abi.TypeDef{Name: "Blob", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "count", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U16)}}},
			{Name: "data", Type: schema.TypeRef{Inline: &schema.ArrayDef{
				Element:  schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U8)}},
				SizeExpr: schema.FieldRef("count"),
			}}},
		},
	}})

	model, err := abi.Resolve(reg)
	require.NoError(t, err)

	layout, err := abi.Build(model, "test-build")
	require.NoError(t, err)
	require.Len(t, layout.Types, 1)

	encoded, err := abi.EncodeJSON(layout)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.EqualValues(t, 1, decoded["version"])

	_, err = abi.EncodeBinary(layout)
	require.NoError(t, err)

	buf := []byte{3, 0, 10, 20, 30}
	rv, err := abi.Parse(model, "Blob", buf, nil)
	require.NoError(t, err)
	require.Equal(t, len(buf), rv.Length)

	st := rv.Value.(abi.Struct)
	data := st.Fields[1].Value.Value.(abi.Array)
	require.Len(t, data.Elements, 3)
	require.EqualValues(t, 30, data.Elements[2].Value.(abi.Primitive).Bits)
}

// Schema errors surface before Build or Parse are even reachable.
func TestResolveUnknownTypeReference(t *testing.T) {
	reg := abi.NewRegistry()
	reg.Insert(abi.TypeDef{Name: "Bad", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "x", Type: schema.TypeRef{Name: "DoesNotExist"}},
		},
	}})

	_, err := abi.Resolve(reg)
	require.Error(t, err)
	_, ok := err.(*abi.SchemaError)
	require.True(t, ok)
}

// Parse surfaces insufficient data as a ParseError, never a panic.
func TestParseInsufficientData(t *testing.T) {
	reg := abi.NewRegistry()
	reg.Insert(abi.TypeDef{Name: "Packet", Kind: &schema.StructDef{
		Fields: []schema.StructField{
			{Name: "a", Type: schema.TypeRef{Inline: &schema.PrimitiveDef{Type: schema.U(schema.U32)}}},
		},
	}})
	model, err := abi.Resolve(reg)
	require.NoError(t, err)

	_, err = abi.Parse(model, "Packet", []byte{1, 2}, nil)
	require.Error(t, err)
	perr, ok := err.(*abi.ParseError)
	require.True(t, ok)
	require.Equal(t, abi.ErrInsufficientData, perr.Kind)
}
