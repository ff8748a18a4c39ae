// Package fixture decodes YAML-expressed schemas into schema.TypeDef
// values, purely as test data (SPEC_FULL.md Test Tooling): the surface
// syntax a real schema loader would parse is out of scope, but writing
// one Go struct literal per field of every fixture schema doesn't scale
// once end-to-end golden tests need a handful of full schemas, so tests
// load them from the schema.yaml section of testdata/schemas/*.txtar
// bundles instead.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/layoutforge/abi/internal/schema"
)

// File is the top-level shape of a schema fixture YAML document.
type File struct {
	Types []typeDoc `yaml:"types"`
}

type typeDoc struct {
	Name    string  `yaml:"name"`
	Comment string  `yaml:"comment"`
	Body    typeRef `yaml:",inline"`
}

// typeRef mirrors schema.TypeRef: exactly one of Ref (a named reference)
// or the inline body fields is meaningful.
type typeRef struct {
	Ref string `yaml:"ref"`

	Kind string `yaml:"kind"`

	// primitive
	Primitive string `yaml:"primitive"`

	// struct
	Fields  []fieldDoc `yaml:"fields"`
	Packed  bool       `yaml:"packed"`
	Aligned uint64     `yaml:"aligned"`

	// union / enum / sdu share "variants" with different per-variant shapes
	Variants []variantDoc `yaml:"variants"`
	TagExpr  *exprDoc     `yaml:"tag_expr"`

	// array
	Element  *typeRef `yaml:"element"`
	SizeExpr *exprDoc `yaml:"size_expr"`
	Jagged   bool     `yaml:"jagged"`
}

type fieldDoc struct {
	Name    string  `yaml:"name"`
	Type    typeRef `yaml:",inline"`
	Comment string  `yaml:"comment"`
}

type variantDoc struct {
	Name                string  `yaml:"name"`
	Type                typeRef `yaml:",inline"`
	TagValue            uint64  `yaml:"tag_value"`
	RequiresPayloadSize bool    `yaml:"requires_payload_size"`
	ExpectedSize        uint64  `yaml:"expected_size"`
}

// exprDoc covers the subset of schema.ExprKind fixture schemas actually
// need: a field reference, an integer literal, or a binary operator
// combining two sub-expressions.
type exprDoc struct {
	Field string     `yaml:"field"`
	Lit   *uint64    `yaml:"lit"`
	Op    string     `yaml:"op"`
	Left  *exprDoc   `yaml:"left"`
	Right *exprDoc   `yaml:"right"`
}

// Load decodes a schema fixture document into a schema.Registry.
func Load(data []byte) (*schema.Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	reg := schema.NewRegistry()
	for _, td := range f.Types {
		kind, err := td.Body.toKind()
		if err != nil {
			return nil, fmt.Errorf("fixture: type %q: %w", td.Name, err)
		}
		reg.Insert(schema.TypeDef{Name: td.Name, Kind: kind})
	}
	return reg, nil
}

func (t typeRef) toSchemaRef() (schema.TypeRef, error) {
	if t.Ref != "" {
		return schema.TypeRef{Name: t.Ref}, nil
	}
	k, err := t.toKind()
	if err != nil {
		return schema.TypeRef{}, err
	}
	return schema.TypeRef{Inline: k}, nil
}

func (t typeRef) toKind() (schema.TypeKind, error) {
	switch t.Kind {
	case "primitive":
		p, err := parsePrimitive(t.Primitive)
		if err != nil {
			return nil, err
		}
		return &schema.PrimitiveDef{Type: p}, nil

	case "struct":
		fields := make([]schema.StructField, len(t.Fields))
		for i, f := range t.Fields {
			ref, err := f.Type.toSchemaRef()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields[i] = schema.StructField{Name: f.Name, Type: ref, Comment: f.Comment}
		}
		return &schema.StructDef{Fields: fields, Packed: t.Packed, Aligned: t.Aligned}, nil

	case "union":
		variants := make([]schema.UnionVariant, len(t.Variants))
		for i, v := range t.Variants {
			ref, err := v.Type.toSchemaRef()
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", v.Name, err)
			}
			variants[i] = schema.UnionVariant{Name: v.Name, Type: ref}
		}
		return &schema.UnionDef{Variants: variants, Packed: t.Packed}, nil

	case "enum":
		if t.TagExpr == nil {
			return nil, fmt.Errorf("enum missing tag_expr")
		}
		tagExpr, err := t.TagExpr.toExpr()
		if err != nil {
			return nil, err
		}
		variants := make([]schema.EnumVariant, len(t.Variants))
		for i, v := range t.Variants {
			ref, err := v.Type.toSchemaRef()
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", v.Name, err)
			}
			variants[i] = schema.EnumVariant{
				Name: v.Name, TagValue: v.TagValue, Type: ref,
				RequiresPayloadSize: v.RequiresPayloadSize,
			}
		}
		return &schema.EnumDef{TagExpr: tagExpr, Variants: variants}, nil

	case "array":
		if t.Element == nil {
			return nil, fmt.Errorf("array missing element")
		}
		if t.SizeExpr == nil {
			return nil, fmt.Errorf("array missing size_expr")
		}
		elemRef, err := t.Element.toSchemaRef()
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		sizeExpr, err := t.SizeExpr.toExpr()
		if err != nil {
			return nil, err
		}
		return &schema.ArrayDef{Element: elemRef, SizeExpr: sizeExpr, Jagged: t.Jagged}, nil

	case "sdu":
		variants := make([]schema.SDUVariant, len(t.Variants))
		for i, v := range t.Variants {
			ref, err := v.Type.toSchemaRef()
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", v.Name, err)
			}
			variants[i] = schema.SDUVariant{Name: v.Name, ExpectedSize: v.ExpectedSize, Type: ref}
		}
		return &schema.SDUDef{Variants: variants}, nil

	default:
		return nil, fmt.Errorf("unrecognized kind %q", t.Kind)
	}
}

func parsePrimitive(name string) (schema.PrimitiveType, error) {
	switch name {
	case "u8":
		return schema.U(schema.U8), nil
	case "u16":
		return schema.U(schema.U16), nil
	case "u32":
		return schema.U(schema.U32), nil
	case "u64":
		return schema.U(schema.U64), nil
	case "i8":
		return schema.U(schema.I8), nil
	case "i16":
		return schema.U(schema.I16), nil
	case "i32":
		return schema.U(schema.I32), nil
	case "i64":
		return schema.U(schema.I64), nil
	case "f16":
		return schema.Fp(schema.F16), nil
	case "f32":
		return schema.Fp(schema.F32), nil
	case "f64":
		return schema.Fp(schema.F64), nil
	default:
		return schema.PrimitiveType{}, fmt.Errorf("unrecognized primitive %q", name)
	}
}

func (e *exprDoc) toExpr() (*schema.ExprKind, error) {
	if e == nil {
		return nil, fmt.Errorf("missing expression")
	}
	switch {
	case e.Field != "":
		return schema.FieldRef(e.Field), nil
	case e.Lit != nil:
		return schema.Lit(*e.Lit), nil
	case e.Op != "":
		op, err := parseOp(e.Op)
		if err != nil {
			return nil, err
		}
		left, err := e.Left.toExpr()
		if err != nil {
			return nil, err
		}
		right, err := e.Right.toExpr()
		if err != nil {
			return nil, err
		}
		return schema.Bin(op, left, right), nil
	default:
		return nil, fmt.Errorf("expression has neither field, lit nor op set")
	}
}

func parseOp(name string) (schema.Op, error) {
	switch name {
	case "add":
		return schema.OpAdd, nil
	case "sub":
		return schema.OpSub, nil
	case "mul":
		return schema.OpMul, nil
	default:
		return 0, fmt.Errorf("unsupported fixture operator %q", name)
	}
}
