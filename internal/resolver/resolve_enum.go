package resolver

import "github.com/layoutforge/abi/internal/schema"

func (c *resolver) resolveEnum(name string, v *schema.EnumDef, sc *scope) (*ResolvedType, error) {
	if err := checkComment(name, v.Comment); err != nil {
		return nil, err
	}

	tagAnalysis, err := c.analyzeExpr(sc, v.TagExpr, name)
	if err != nil {
		return nil, err
	}

	var dynamic DynamicParams
	if !tagAnalysis.constant {
		if v.TagExpr.Op == schema.OpFieldRef {
			dynamic.Merge(tagAnalysis.params)
		} else {
			// Computed tag: individual field refs are derived (internal),
			// and the computed result itself is exposed as a synthetic
			// derived parameter (spec.md §4.2, §9).
			for _, o := range tagAnalysis.params.Owners {
				for _, p := range o.Params {
					dynamic.Add(o.Owner, p.Path, p.Type, true)
				}
			}
			dynamic.Add("__tag", "__computed_tag", schema.U(schema.U64), true)
		}
	}

	var (
		variants      []ResolvedEnumVariant
		sizes         []uint64
		allSameSize         = true
		allConstSize        = true
		maxAlign      uint64 = 1
	)

	for _, variant := range v.Variants {
		ref, target, err := c.resolveFieldType(name, variant.Name, variant.Type, sc)
		if err != nil {
			return nil, err
		}
		if err := requireConstantFieldTarget(name, variant.Type, target, false); err != nil {
			return nil, err
		}

		variants = append(variants, ResolvedEnumVariant{
			Name: variant.Name, TagValue: variant.TagValue, Type: ref,
			RequiresPayloadSize: variant.RequiresPayloadSize,
		})
		maxAlign = maxU64(maxAlign, target.Alignment)

		if target.Size.IsConst() {
			sizes = append(sizes, target.Size.Bytes())
		} else {
			allConstSize = false
			if isStructKind(c, ref) {
				dynamic.MergeNested(variant.Name, target.Size.Dynamic())
			} else {
				dynamic.MergeDirect(variant.Name, target.Size.Dynamic())
			}
		}
	}

	for i := 1; i < len(sizes); i++ {
		if sizes[i] != sizes[0] {
			allSameSize = false
			break
		}
	}

	kind := ResolvedEnum{TagExpr: v.TagExpr, TagConstant: tagAnalysis.constant, Variants: variants}

	// spec.md §3.5 inv. 3: constant-size iff all variants are constant-size
	// AND equal.
	if allConstSize && allSameSize && len(sizes) > 0 {
		return &ResolvedType{Name: name, Alignment: maxAlign, Size: ConstSize(sizes[0]), Kind: kind, Comment: v.Comment}, nil
	}
	return &ResolvedType{Name: name, Alignment: maxAlign, Size: VariableSize(dynamic), Kind: kind, Comment: v.Comment}, nil
}
