package resolver

import "github.com/layoutforge/abi/internal/schema"

func (c *resolver) resolveStruct(name string, v *schema.StructDef, sc *scope) (*ResolvedType, error) {
	if err := checkComment(name, v.Comment); err != nil {
		return nil, err
	}

	// The struct's own field list becomes the innermost scope frame once
	// it is populated incrementally below; expressions in field N can only
	// see fields 0..N-1, which is exactly declaration order.
	own := frame{}
	sc.push(own)
	defer sc.pop()

	var (
		fields         []ResolvedField
		runningOffset  uint64
		maxFieldAlign  uint64 = 1
		allPriorConst         = true
		sawVariable           = false
		dynamic        DynamicParams
	)

	for _, f := range v.Fields {
		if sawVariable {
			return nil, tailRuleViolation(name, f.Name)
		}

		ref, target, err := c.resolveFieldType(name, f.Name, f.Type, sc)
		if err != nil {
			return nil, err
		}
		// Terminal check happens after the loop (we don't know yet if this
		// is the last field); named variable-size TypeRefs are validated
		// once we know whether more fields follow, below.

		isStruct := false
		if _, ok := c.followFieldType(ref).Kind.(ResolvedStruct); ok {
			isStruct = true
		}

		fieldConst := target.Size.IsConst()

		var offset *uint64
		if allPriorConst && fieldConst {
			pos := runningOffset
			if !v.Packed {
				pos = alignUp(runningOffset, target.Alignment)
			}
			o := pos
			offset = &o
			runningOffset = pos + target.Size.Bytes()
		}

		maxFieldAlign = maxU64(maxFieldAlign, target.Alignment)

		rf := ResolvedField{Name: f.Name, Type: ref, Offset: offset, Comment: f.Comment}
		fields = append(fields, rf)
		own = append(own, rf)
		sc.frames[len(sc.frames)-1] = own

		if !fieldConst {
			if isStruct {
				dynamic.MergeNested(f.Name, target.Size.Dynamic())
			} else {
				dynamic.MergeDirect(f.Name, target.Size.Dynamic())
			}
			sawVariable = true
			allPriorConst = false
		}
	}

	// Now that the full field list is known, enforce the named-TypeRef
	// variable-size restriction: only the terminal field may name a
	// variable-size type directly (spec.md §3.5 inv. 6, §9).
	for i, f := range v.Fields {
		if f.Type.Inline != nil {
			continue
		}
		target, ok := c.model.Types[f.Type.Name]
		if !ok {
			continue // already reported above
		}
		terminal := i == len(v.Fields)-1
		if err := requireConstantFieldTarget(name, f.Type, target, terminal); err != nil {
			return nil, err
		}
	}

	structAlignment := computeStructAlignment(v.Packed, v.Aligned, maxFieldAlign)

	if sawVariable {
		return &ResolvedType{
			Name:      name,
			Alignment: structAlignment,
			Size:      VariableSize(dynamic),
			Kind:      ResolvedStruct{Fields: fields, Packed: v.Packed, Aligned: v.Aligned},
			Comment:   v.Comment,
		}, nil
	}

	total := alignUp(runningOffset, structAlignment)
	return &ResolvedType{
		Name:      name,
		Alignment: structAlignment,
		Size:      ConstSize(total),
		Kind:      ResolvedStruct{Fields: fields, Packed: v.Packed, Aligned: v.Aligned},
		Comment:   v.Comment,
	}, nil
}

// computeStructAlignment implements the precise rules of spec.md §4.1.
func computeStructAlignment(packed bool, aligned uint64, maxFieldAlign uint64) uint64 {
	switch {
	case packed && aligned == 0:
		return 1
	case packed && aligned > 0:
		return aligned
	case !packed && aligned == 0:
		return maxU64(maxFieldAlign, 1)
	default: // !packed && aligned > 0
		return aligned
	}
}
