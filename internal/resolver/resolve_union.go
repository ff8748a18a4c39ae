package resolver

import "github.com/layoutforge/abi/internal/schema"

func (c *resolver) resolveUnion(name string, v *schema.UnionDef, sc *scope) (*ResolvedType, error) {
	if err := checkComment(name, v.Comment); err != nil {
		return nil, err
	}

	var (
		variants      []ResolvedUnionVariant
		maxSize       uint64
		maxAlign      uint64 = 1
		allConst             = true
		dynamic       DynamicParams
	)

	for _, variant := range v.Variants {
		ref, target, err := c.resolveFieldType(name, variant.Name, variant.Type, sc)
		if err != nil {
			return nil, err
		}
		if err := requireConstantFieldTarget(name, variant.Type, target, false); err != nil {
			return nil, err
		}

		variants = append(variants, ResolvedUnionVariant{Name: variant.Name, Type: ref})
		maxAlign = maxU64(maxAlign, target.Alignment)

		if target.Size.IsConst() {
			maxSize = maxU64(maxSize, target.Size.Bytes())
			continue
		}
		allConst = false
		if isStructKind(c, ref) {
			dynamic.MergeNested(variant.Name, target.Size.Dynamic())
		} else {
			dynamic.MergeDirect(variant.Name, target.Size.Dynamic())
		}
	}

	if v.Packed {
		maxAlign = 1
	}

	kind := ResolvedUnion{Variants: variants, Packed: v.Packed}
	if allConst {
		return &ResolvedType{Name: name, Alignment: maxAlign, Size: ConstSize(maxSize), Kind: kind, Comment: v.Comment}, nil
	}
	// Once any variant is variable-size, selecting which one is active
	// becomes part of computing the byte count itself, so the __variant
	// selector (spec.md §4.2) joins the footprint's own dynamic_params
	// here. A union whose variants are all constant-size has the constant
	// max size and needs __variant only to decode *content*, which is the
	// reflective parser's concern, not the footprint's (see DESIGN.md).
	dynamic.Add("__variant", "__variant", schema.U(schema.U64), false)
	return &ResolvedType{Name: name, Alignment: maxAlign, Size: VariableSize(dynamic), Kind: kind, Comment: v.Comment}, nil
}

func isStructKind(c *resolver, ref FieldType) bool {
	_, ok := c.followFieldType(ref).Kind.(ResolvedStruct)
	return ok
}
