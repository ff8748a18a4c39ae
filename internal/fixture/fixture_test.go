package fixture_test

import (
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/layoutforge/abi/internal/fixture"
	"github.com/layoutforge/abi/internal/ir"
	"github.com/layoutforge/abi/internal/parser"
	"github.com/layoutforge/abi/internal/resolver"
)

type expectDoc struct {
	Length            int      `yaml:"length"`
	StructFieldCount  int      `yaml:"struct_field_count"`
	ArrayElementCount int      `yaml:"array_element_count"`
	ArrayElements     []uint64 `yaml:"array_elements"`
	EnumVariant       string   `yaml:"enum_variant"`
	EnumTagValue      uint64   `yaml:"enum_tag_value"`
	EnumInnerBits     uint64   `yaml:"enum_inner_bits"`
}

func section(ar *txtar.Archive, name string) []byte {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

func decodeHex(data []byte) ([]byte, error) {
	compact := strings.Join(strings.Fields(string(data)), "")
	return hex.DecodeString(compact)
}

// End-to-end golden fixtures (SPEC_FULL.md Domain Stack: golang.org/x/tools/
// txtar): each bundle pairs a YAML schema with a root type name, a raw
// buffer, and the properties its parse result must have.
func TestTxtarFixtures(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/schemas/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			reg, err := fixture.Load(section(ar, "schema.yaml"))
			require.NoError(t, err)

			root := strings.TrimSpace(string(section(ar, "root.txt")))
			require.NotEmpty(t, root)

			buf, err := decodeHex(section(ar, "buffer.hex"))
			require.NoError(t, err)

			var expect expectDoc
			require.NoError(t, yaml.Unmarshal(section(ar, "expect.yaml"), &expect))

			model, err := resolver.Resolve(reg)
			require.NoError(t, err)

			layout, err := ir.Build(model, "fixture-build")
			require.NoError(t, err)
			encoded, err := ir.EncodeJSON(layout)
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(encoded, &decoded))
			require.NotEmpty(t, decoded["types"])

			rv, err := parser.Parse(model, root, buf, nil)
			require.NoError(t, err)
			require.Equal(t, expect.Length, rv.Length)

			st, ok := rv.Value.(parser.Struct)
			require.True(t, ok)

			if expect.StructFieldCount > 0 {
				require.Len(t, st.Fields, expect.StructFieldCount)
			}
			if len(expect.ArrayElements) > 0 {
				arr := findArray(t, st)
				require.Len(t, arr.Elements, expect.ArrayElementCount)
				for i, want := range expect.ArrayElements {
					require.EqualValues(t, want, arr.Elements[i].Value.(parser.Primitive).Bits)
				}
			}
			if expect.EnumVariant != "" {
				en := findEnum(t, st)
				require.Equal(t, expect.EnumVariant, en.Variant)
				require.EqualValues(t, expect.EnumTagValue, en.TagValue)
				require.EqualValues(t, expect.EnumInnerBits, en.Inner.Value.(parser.Primitive).Bits)
			}
		})
	}
}

func findArray(t *testing.T, st parser.Struct) parser.Array {
	t.Helper()
	for _, f := range st.Fields {
		if arr, ok := f.Value.Value.(parser.Array); ok {
			return arr
		}
	}
	t.Fatalf("no array field found")
	return parser.Array{}
}

func findEnum(t *testing.T, st parser.Struct) parser.Enum {
	t.Helper()
	for _, f := range st.Fields {
		if en, ok := f.Value.Value.(parser.Enum); ok {
			return en
		}
	}
	t.Fatalf("no enum field found")
	return parser.Enum{}
}
