package ir

import "github.com/layoutforge/abi/internal/resolver"

// buildSDU emits Switch{tag = synthetic __payload_size, tag_value =
// expected_size per variant}; each case is simply Const(expected_size),
// since an SDU variant's declared size is exactly what selected it
// (spec.md §4.4).
func (b *builder) buildSDU(rt *resolver.ResolvedType, k resolver.ResolvedSDU) (Node, error) {
	tag := FieldRef{Owner: "__payload_size", Path: "__payload_size", Parameter: "__payload_size"}

	var cases []SwitchCase
	for _, v := range k.Variants {
		cases = append(cases, SwitchCase{
			TagValue: v.ExpectedSize,
			Node:     Const{Value: v.ExpectedSize},
		})
	}
	return Switch{Tag: tag, Cases: cases}, nil
}
