package ir

import "github.com/layoutforge/abi/internal/resolver"

// buildStruct folds a variable struct's fields left-to-right with
// AddChecked; each field's own contribution is aligned to its own
// alignment before being added, and the running sum is finally aligned to
// the struct's own alignment (spec.md §4.4).
func (b *builder) buildStruct(rt *resolver.ResolvedType, k resolver.ResolvedStruct) (Node, error) {
	var sum Node
	for _, f := range k.Fields {
		target := b.targetOf(f.Type)
		if target == nil {
			return nil, missingType(rt.Name, f.Type.TypeName())
		}
		contrib, err := b.fieldNode(rt.Name, f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		aligned := Node(AlignUp{Alignment: target.Alignment, Inner: contrib})
		if sum == nil {
			sum = aligned
			continue
		}
		sum = AddChecked{Left: sum, Right: aligned}
	}
	if sum == nil {
		sum = ZeroSize{Align: rt.Alignment}
	}
	return AlignUp{Alignment: rt.Alignment, Inner: sum}, nil
}
