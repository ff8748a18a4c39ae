package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layoutforge/abi/internal/schema"
)

// A chain of inline-nested struct bodies deeper than MaxRecursionDepth
// aborts with ErrRecursionLimitExceeded instead of overflowing the stack.
func TestResolveWithOptionsRecursionLimit(t *testing.T) {
	reg := schema.NewRegistry()

	var inner schema.TypeKind = &schema.PrimitiveDef{Type: schema.U(schema.U8)}
	for i := 0; i < 10; i++ {
		inner = &schema.StructDef{Fields: []schema.StructField{
			{Name: "inner", Type: schema.TypeRef{Inline: inner}},
		}}
	}
	reg.Insert(schema.TypeDef{Name: "Deep", Kind: inner})

	_, err := ResolveWithOptions(reg, Options{MaxRecursionDepth: 3})
	require.Error(t, err)
	rerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrRecursionLimitExceeded, rerr.Kind)

	// The default limit comfortably accommodates this depth.
	m, err := Resolve(reg)
	require.NoError(t, err)
	require.NotNil(t, m)
}
