package resolver

import "github.com/layoutforge/abi/internal/schema"

func (c *resolver) resolveSDU(name string, v *schema.SDUDef, sc *scope) (*ResolvedType, error) {
	if err := checkComment(name, v.Comment); err != nil {
		return nil, err
	}

	var (
		variants []ResolvedSDUVariant
		dynamic  DynamicParams
	)

	// spec.md §3.5 inv. 5: an SDU's size is always Variable, and it always
	// carries a synthetic payload_size parameter.
	dynamic.Add("__payload_size", "__payload_size", schema.U(schema.U64), true)

	maxAlign := uint64(1)
	for _, variant := range v.Variants {
		ref, target, err := c.resolveFieldType(name, variant.Name, variant.Type, sc)
		if err != nil {
			return nil, err
		}
		if err := requireConstantFieldTarget(name, variant.Type, target, false); err != nil {
			return nil, err
		}
		maxAlign = maxU64(maxAlign, target.Alignment)

		variants = append(variants, ResolvedSDUVariant{
			Name: variant.Name, ExpectedSize: variant.ExpectedSize, Type: ref,
		})

		if !target.Size.IsConst() {
			if isStructKind(c, ref) {
				dynamic.MergeNested(variant.Name, target.Size.Dynamic())
			} else {
				dynamic.MergeDirect(variant.Name, target.Size.Dynamic())
			}
		}
	}

	kind := ResolvedSDU{Variants: variants}
	return &ResolvedType{Name: name, Alignment: maxAlign, Size: VariableSize(dynamic), Kind: kind, Comment: v.Comment}, nil
}
