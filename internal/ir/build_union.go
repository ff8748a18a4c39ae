package ir

import "github.com/layoutforge/abi/internal/resolver"

// buildUnion emits Switch{tag = synthetic __variant, tag_value = variant
// index} (spec.md §4.4). Only reached for a union with at least one
// variable-size variant — a union whose variants are all constant-size is
// itself constant-size (its max variant's width) and nodeFor collapses it
// to a flat Const before dispatch: selecting among constant-size variants
// affects content, not byte count, and the Layout-IR concerns itself only
// with the latter (see DESIGN.md).
func (b *builder) buildUnion(rt *resolver.ResolvedType, k resolver.ResolvedUnion) (Node, error) {
	tag := FieldRef{Owner: "__variant", Path: "__variant", Parameter: "__variant"}

	var cases []SwitchCase
	for i, v := range k.Variants {
		target := b.targetOf(v.Type)
		if target == nil {
			return nil, missingType(rt.Name, v.Type.TypeName())
		}
		body, err := b.fieldNode(rt.Name, v.Name, v.Type)
		if err != nil {
			return nil, err
		}
		cases = append(cases, SwitchCase{
			TagValue: uint64(i),
			Node:     AlignUp{Alignment: target.Alignment, Inner: body},
		})
	}
	return Switch{Tag: tag, Cases: cases}, nil
}
