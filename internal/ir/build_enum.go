package ir

import (
	"strings"

	"github.com/layoutforge/abi/internal/resolver"
	"github.com/layoutforge/abi/internal/schema"
)

// buildEnum emits Switch{tag, one case per variant}, each case's node
// being that variant's own footprint aligned to the variant's alignment
// (spec.md §4.4).
func (b *builder) buildEnum(rt *resolver.ResolvedType, k resolver.ResolvedEnum) (Node, error) {
	tag := enumTagRef(k.TagExpr)

	var cases []SwitchCase
	for _, v := range k.Variants {
		target := b.targetOf(v.Type)
		if target == nil {
			return nil, missingType(rt.Name, v.Type.TypeName())
		}
		body, err := b.fieldNode(rt.Name, v.Name, v.Type)
		if err != nil {
			return nil, err
		}
		cases = append(cases, SwitchCase{
			TagValue: v.TagValue,
			Node:     AlignUp{Alignment: target.Alignment, Inner: body},
		})
	}
	return Switch{Tag: tag, Cases: cases}, nil
}

// enumTagRef names the parameter a Switch discriminates on: the tag
// expression's own field reference when it's a bare one, or the synthetic
// __computed_tag derived parameter for anything richer (spec.md §4.2,
// §9 — the two-layer design: the IR only lifts +, *, field refs and
// literals, so a computed tag is resolved by the secondary expression
// evaluator and surfaced here only by name).
func enumTagRef(e *schema.ExprKind) FieldRef {
	if e != nil && e.Op == schema.OpFieldRef {
		path := strings.Join(e.FieldPath, ".")
		return FieldRef{Owner: path, Path: path, Parameter: path}
	}
	return FieldRef{Owner: "__tag", Path: "__computed_tag", Parameter: "__computed_tag"}
}
