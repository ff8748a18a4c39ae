package resolver

import "github.com/layoutforge/abi/internal/schema"

func (c *resolver) resolveArray(name string, v *schema.ArrayDef, sc *scope) (*ResolvedType, error) {
	if err := checkComment(name, v.Comment); err != nil {
		return nil, err
	}

	sizeAnalysis, err := c.analyzeExpr(sc, v.SizeExpr, name)
	if err != nil {
		return nil, err
	}

	ref, elem, err := c.resolveFieldType(name, "element", v.Element, sc)
	if err != nil {
		return nil, err
	}
	if err := requireConstantFieldTarget(name, v.Element, elem, false); err != nil {
		return nil, err
	}

	var dynamic DynamicParams
	if !sizeAnalysis.constant {
		dynamic.Merge(sizeAnalysis.params)
	}

	elemConst := elem.Size.IsConst()
	if !elemConst {
		if isStructKind(c, ref) {
			dynamic.MergeNested("element", elem.Size.Dynamic())
		} else {
			dynamic.MergeDirect("element", elem.Size.Dynamic())
		}
	}

	kind := ResolvedArray{Element: ref, SizeExpr: v.SizeExpr, SizeConstant: sizeAnalysis.constant, Jagged: v.Jagged}

	// spec.md §3.5 inv. 4: constant iff both count and element size are
	// constant.
	if sizeAnalysis.constant && elemConst {
		count := evalConstUint(v.SizeExpr)
		return &ResolvedType{Name: name, Alignment: elem.Alignment, Size: ConstSize(count * elem.Size.Bytes()), Kind: kind, Comment: v.Comment}, nil
	}
	return &ResolvedType{Name: name, Alignment: elem.Alignment, Size: VariableSize(dynamic), Kind: kind, Comment: v.Comment}, nil
}

// evalConstUint evaluates an expression known (by prior analysis) to be
// constant, for the narrow set of shapes array size expressions may use.
func evalConstUint(e *schema.ExprKind) uint64 {
	v, _ := evalConst(e)
	return v
}

// evalConst evaluates a constant expression to an unsigned 64-bit result,
// using checked (wraparound-free) arithmetic; this mirrors the semantics
// the Layout-IR and reflective parser both use at runtime (spec.md §4.4,
// §4.5), applied here only to schema-authored constants.
func evalConst(e *schema.ExprKind) (uint64, bool) {
	if e == nil {
		return 0, true
	}
	switch e.Op {
	case schema.OpLiteral:
		if e.IsSigned {
			if e.LitSigned < 0 {
				return 0, false
			}
			return uint64(e.LitSigned), true
		}
		return e.LitUnsigned, true
	case schema.OpAdd:
		l, ok1 := evalConst(e.Left)
		r, ok2 := evalConst(e.Right)
		if l > ^uint64(0)-r {
			return 0, false
		}
		return l + r, ok1 && ok2
	case schema.OpSub:
		l, ok1 := evalConst(e.Left)
		r, ok2 := evalConst(e.Right)
		if r > l {
			return 0, false
		}
		return l - r, ok1 && ok2
	case schema.OpMul:
		l, ok1 := evalConst(e.Left)
		r, ok2 := evalConst(e.Right)
		if l != 0 && r > ^uint64(0)/l {
			return 0, false
		}
		return l * r, ok1 && ok2
	case schema.OpDiv:
		l, ok1 := evalConst(e.Left)
		r, ok2 := evalConst(e.Right)
		if r == 0 {
			return 0, false
		}
		return l / r, ok1 && ok2
	case schema.OpPow:
		l, ok1 := evalConst(e.Left)
		r, ok2 := evalConst(e.Right)
		result := uint64(1)
		for i := uint64(0); i < r; i++ {
			if l != 0 && result > ^uint64(0)/l {
				return 0, false
			}
			result *= l
		}
		return result, ok1 && ok2
	default:
		return 0, false
	}
}
