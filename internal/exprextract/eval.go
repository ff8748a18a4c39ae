// Package exprextract implements the secondary, full-richness expression
// evaluator referenced by SPEC_FULL.md's Open Question resolution
// (spec.md §9): the Layout-IR only lifts `+`, `*`, field refs and
// literals; every other operator (bitwise ops, shifts, comparisons,
// popcount) is instead evaluated here, at parse time, against live field
// values. A computed enum tag surfaces from the IR only as the name
// `__computed_tag`; it is this package — driven by the reflective
// parser's field-reference resolver — that actually produces its value.
package exprextract

import (
	"fmt"

	"github.com/layoutforge/abi/internal/schema"
)

// Resolver answers the two questions an expression evaluation needs beyond
// arithmetic on its own operands: the value of a field reference, and the
// size/alignment of a named type. The reflective parser supplies an
// implementation backed by its four-level field-reference fallback
// (spec.md §4.5 item 3).
type Resolver interface {
	FieldValue(path []string) (uint64, error)
	TypeSize(name string) (value uint64, constant bool, err error)
	TypeAlign(name string) (uint64, error)
}

// ErrorKind dispatches evaluation failures by family (spec.md §4.5).
type ErrorKind int

const (
	ErrExpressionEvaluationFailed ErrorKind = iota
	ErrFieldReferenceFailed
	ErrTypeResolutionFailed
)

// Error is a value-typed evaluation error.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func evalFailed(format string, args ...any) *Error {
	return &Error{Kind: ErrExpressionEvaluationFailed, Msg: fmt.Sprintf(format, args...)}
}

func fieldRefFailed(format string, args ...any) *Error {
	return &Error{Kind: ErrFieldReferenceFailed, Msg: fmt.Sprintf(format, args...)}
}

func typeResolutionFailed(format string, args ...any) *Error {
	return &Error{Kind: ErrTypeResolutionFailed, Msg: fmt.Sprintf(format, args...)}
}

// Eval evaluates e to an unsigned 64-bit result using checked, unsigned
// arithmetic (spec.md §4.5 item 4): divide-by-zero and modulo-by-zero are
// errors, not panics or wraparound. Signed literals are accepted only when
// non-negative.
func Eval(e *schema.ExprKind, r Resolver) (uint64, error) {
	if e == nil {
		return 0, nil
	}

	switch e.Op {
	case schema.OpLiteral:
		if e.IsSigned {
			if e.LitSigned < 0 {
				return 0, evalFailed("negative literal %d cannot be coerced to an unsigned parameter", e.LitSigned)
			}
			return uint64(e.LitSigned), nil
		}
		return e.LitUnsigned, nil

	case schema.OpFieldRef:
		v, err := r.FieldValue(e.FieldPath)
		if err != nil {
			return 0, fieldRefFailed("%v", err)
		}
		return v, nil

	case schema.OpSizeOf:
		v, _, err := r.TypeSize(e.TypeName)
		if err != nil {
			return 0, typeResolutionFailed("%v", err)
		}
		return v, nil

	case schema.OpAlignOf:
		v, err := r.TypeAlign(e.TypeName)
		if err != nil {
			return 0, typeResolutionFailed("%v", err)
		}
		return v, nil
	}

	if e.Op.IsUnary() {
		x, err := Eval(e.X, r)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case schema.OpBitNot:
			return ^x, nil
		case schema.OpNeg:
			return -x, nil
		case schema.OpNot:
			if x == 0 {
				return 1, nil
			}
			return 0, nil
		case schema.OpPopcount:
			return uint64(popcount(x)), nil
		}
	}

	if e.Op.IsBinary() {
		l, err := Eval(e.Left, r)
		if err != nil {
			return 0, err
		}
		rr, err := Eval(e.Right, r)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case schema.OpAdd:
			if l > ^uint64(0)-rr {
				return 0, evalFailed("addition overflows u64")
			}
			return l + rr, nil
		case schema.OpSub:
			if rr > l {
				return 0, evalFailed("subtraction underflows u64")
			}
			return l - rr, nil
		case schema.OpMul:
			if l != 0 && rr > ^uint64(0)/l {
				return 0, evalFailed("multiplication overflows u64")
			}
			return l * rr, nil
		case schema.OpDiv:
			if rr == 0 {
				return 0, evalFailed("division by zero")
			}
			return l / rr, nil
		case schema.OpMod:
			if rr == 0 {
				return 0, evalFailed("modulo by zero")
			}
			return l % rr, nil
		case schema.OpPow:
			result := uint64(1)
			for i := uint64(0); i < rr; i++ {
				if l != 0 && result > ^uint64(0)/l {
					return 0, evalFailed("exponentiation overflows u64")
				}
				result *= l
			}
			return result, nil
		case schema.OpBitAnd:
			return l & rr, nil
		case schema.OpBitOr:
			return l | rr, nil
		case schema.OpBitXor:
			return l ^ rr, nil
		case schema.OpShl:
			return l << rr, nil
		case schema.OpShr:
			return l >> rr, nil
		case schema.OpEq:
			return boolU64(l == rr), nil
		case schema.OpNe:
			return boolU64(l != rr), nil
		case schema.OpLt:
			return boolU64(l < rr), nil
		case schema.OpLe:
			return boolU64(l <= rr), nil
		case schema.OpGt:
			return boolU64(l > rr), nil
		case schema.OpGe:
			return boolU64(l >= rr), nil
		case schema.OpAnd:
			return boolU64(l != 0 && rr != 0), nil
		case schema.OpOr:
			return boolU64(l != 0 || rr != 0), nil
		case schema.OpXor:
			return boolU64((l != 0) != (rr != 0)), nil
		}
	}

	return 0, evalFailed("unrecognized operator %d", int(e.Op))
}

func boolU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func popcount(x uint64) int {
	n := 0
	for x != 0 {
		n += int(x & 1)
		x >>= 1
	}
	return n
}
