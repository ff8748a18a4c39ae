package ir

import (
	"fmt"
	"strings"

	"github.com/layoutforge/abi/internal/schema"
)

// liftExpr lowers a schema expression into a Layout-IR node. Per spec.md
// §9 (Open Question resolution, SPEC_FULL.md), the IR grammar lifts only
// literals, field references, +, and *; sizeof of a constant-size type and
// alignof of any resolved type collapse to a literal too, since their value
// is already known at build time. Anything richer (bitwise ops,
// comparisons, a sizeof of a variable-size type) is UnsupportedExpression
// — those are modeled instead as a derived parameter resolved by the secondary expression
// evaluator (internal/exprextract), never by the IR itself.
func (b *builder) liftExpr(typeName string, e *schema.ExprKind) (Node, error) {
	if e == nil {
		return Const{Value: 0}, nil
	}

	switch e.Op {
	case schema.OpLiteral:
		v := e.LitUnsigned
		if e.IsSigned {
			v = uint64(e.LitSigned)
		}
		return Const{Value: v}, nil

	case schema.OpFieldRef:
		path := strings.Join(e.FieldPath, ".")
		return FieldRef{Owner: path, Path: path, Parameter: path}, nil

	case schema.OpSizeOf:
		target, ok := b.model.Lookup(e.TypeName)
		if !ok {
			return nil, missingType(typeName, e.TypeName)
		}
		if !target.Size.IsConst() {
			return nil, unsupportedExpression(typeName, "sizeof("+e.TypeName+")")
		}
		return Const{Value: target.Size.Bytes(), Align: target.Alignment}, nil

	case schema.OpAlignOf:
		target, ok := b.model.Lookup(e.TypeName)
		if !ok {
			return nil, missingType(typeName, e.TypeName)
		}
		return Const{Value: target.Alignment, Align: target.Alignment}, nil

	case schema.OpAdd:
		left, right, err := b.liftBinaryOperands(typeName, e)
		if err != nil {
			return nil, err
		}
		return AddChecked{Left: left, Right: right}, nil

	case schema.OpMul:
		left, right, err := b.liftBinaryOperands(typeName, e)
		if err != nil {
			return nil, err
		}
		return MulChecked{Left: left, Right: right}, nil

	default:
		return nil, unsupportedExpression(typeName, describeOp(e.Op))
	}
}

func (b *builder) liftBinaryOperands(typeName string, e *schema.ExprKind) (Node, Node, error) {
	left, err := b.liftExpr(typeName, e.Left)
	if err != nil {
		return nil, nil, err
	}
	right, err := b.liftExpr(typeName, e.Right)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func describeOp(op schema.Op) string {
	return fmt.Sprintf("operator(%d)", int(op))
}
