package resolver

import (
	"strings"

	"github.com/layoutforge/abi/internal/schema"
)

// analysis is the result of classifying an expression (spec.md §4.1): its
// constantness, and every dynamic parameter it would need at runtime, keyed
// directly by its own dotted path (owner == path) since a bare tag/size
// expression has no "owning field" of its own until some enclosing struct
// field rolls these parameters up under its own name via
// DynamicParams.MergeUnderOwner.
type analysis struct {
	constant bool
	params   DynamicParams
}

// analyzeExpr classifies e per spec.md §4.1: constant iff it contains no
// field references and every sizeof/alignof target is constant-size.
func (c *resolver) analyzeExpr(sc *scope, e *schema.ExprKind, typeName string) (analysis, error) {
	if e == nil {
		return analysis{constant: true}, nil
	}

	switch e.Op {
	case schema.OpLiteral:
		return analysis{constant: true}, nil

	case schema.OpFieldRef:
		prim, err := c.resolvePath(sc, e.FieldPath, typeName)
		if err != nil {
			return analysis{}, err
		}
		path := strings.Join(e.FieldPath, ".")
		var a analysis
		a.params.Add(path, path, prim, false)
		return a, nil

	case schema.OpSizeOf, schema.OpAlignOf:
		target, ok := c.model.Types[e.TypeName]
		if !ok {
			return analysis{}, unknownType(typeName, e.TypeName)
		}
		return analysis{constant: target.Size.IsConst()}, nil

	default:
		if e.Op.IsUnary() {
			return c.analyzeExpr(sc, e.X, typeName)
		}
		if e.Op.IsBinary() {
			left, err := c.analyzeExpr(sc, e.Left, typeName)
			if err != nil {
				return analysis{}, err
			}
			right, err := c.analyzeExpr(sc, e.Right, typeName)
			if err != nil {
				return analysis{}, err
			}
			merged := analysis{constant: left.constant && right.constant}
			merged.params.Merge(left.params)
			merged.params.Merge(right.params)
			return merged, nil
		}
	}

	return analysis{constant: true}, nil
}

// liftable reports whether e uses only the operators the Layout-IR can
// lower directly (+, *, field refs, literals); anything else must be
// modeled as a derived __computed_tag parameter instead (spec.md §9).
func liftable(e *schema.ExprKind) bool {
	if e == nil {
		return true
	}
	switch e.Op {
	case schema.OpLiteral, schema.OpFieldRef:
		return true
	case schema.OpAdd, schema.OpMul:
		return liftable(e.Left) && liftable(e.Right)
	default:
		return false
	}
}
