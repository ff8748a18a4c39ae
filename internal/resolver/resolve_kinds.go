package resolver

import (
	"strings"

	"github.com/layoutforge/abi/internal/debug"
	"github.com/layoutforge/abi/internal/schema"
)

func checkComment(typeName, comment string) error {
	if strings.Contains(comment, "*/") {
		return invalidComment(typeName, comment)
	}
	return nil
}

// resolveTypeDef resolves one top-level registry entry.
func (c *resolver) resolveTypeDef(def schema.TypeDef) (*ResolvedType, error) {
	return c.resolveKind(def.Name, def.Kind, &scope{})
}

// resolveKind resolves any TypeKind — top-level or inline-nested — without
// inserting it into the model; only Resolve inserts top-level results.
func (c *resolver) resolveKind(name string, k schema.TypeKind, sc *scope) (*ResolvedType, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.opts.maxDepth() {
		return nil, recursionLimitExceeded(name, c.opts.maxDepth())
	}
	debug.Log(nil, "resolveKind", "%s depth=%d", name, c.depth)

	switch v := k.(type) {
	case *schema.PrimitiveDef:
		return c.resolvePrimitive(name, v)
	case *schema.StructDef:
		return c.resolveStruct(name, v, sc)
	case *schema.UnionDef:
		return c.resolveUnion(name, v, sc)
	case *schema.EnumDef:
		return c.resolveEnum(name, v, sc)
	case *schema.ArrayDef:
		return c.resolveArray(name, v, sc)
	case *schema.SDUDef:
		return c.resolveSDU(name, v, sc)
	case *schema.TypeRefDef:
		return c.resolveAlias(name, v)
	default:
		return nil, &Error{Kind: ErrUnknownType, Type: name, Msg: "unrecognized type kind"}
	}
}

func (c *resolver) resolvePrimitive(name string, v *schema.PrimitiveDef) (*ResolvedType, error) {
	return &ResolvedType{
		Name:      name,
		Alignment: v.Type.Align(),
		Size:      ConstSize(v.Type.Size()),
		Kind:      ResolvedPrimitive{Type: v.Type},
	}, nil
}

func (c *resolver) resolveAlias(name string, v *schema.TypeRefDef) (*ResolvedType, error) {
	target, ok := c.model.Types[v.Target]
	if !ok {
		return nil, unknownType(name, v.Target)
	}
	return &ResolvedType{
		Name:      name,
		Alignment: target.Alignment,
		Size:      target.Size,
		Kind:      ResolvedAlias{Target: v.Target},
		Comment:   target.Comment,
	}, nil
}

// resolveFieldType resolves a schema.TypeRef used as a composite member
// (struct field, union/enum/SDU variant, array element) to a FieldType
// plus the concrete *ResolvedType for local layout computation. ownerName
// is the enclosing composite's name, used for error messages.
func (c *resolver) resolveFieldType(ownerName, memberName string, ref schema.TypeRef, sc *scope) (FieldType, *ResolvedType, error) {
	if ref.Inline != nil {
		anon := ownerName + "." + memberName
		rt, err := c.resolveKind(anon, ref.Inline, sc)
		if err != nil {
			return FieldType{}, nil, err
		}
		return FieldType{Inline: rt}, rt, nil
	}
	target, ok := c.model.Types[ref.Name]
	if !ok {
		return FieldType{}, nil, unknownType(ownerName, ref.Name)
	}
	return FieldType{Ref: ref.Name}, target, nil
}

// requireConstantFieldTarget enforces spec.md §3.5 invariant 6 / §4.1
// NonConstantTypeReference: a *named* TypeRef to a variable-size type is
// rejected when used as a struct field / union variant / enum variant /
// array element / SDU variant, because only the terminal field of a
// struct may admit a variable-size named reference (spec.md §9).
func requireConstantFieldTarget(ownerName string, ref schema.TypeRef, target *ResolvedType, terminal bool) error {
	if ref.Inline != nil {
		return nil // inline bodies are always permitted, constant or not
	}
	if target.Size.IsConst() {
		return nil
	}
	if terminal {
		return nil
	}
	return nonConstantTypeReference(ownerName, ref.Name)
}
