// Package schema is the declarative data model described in spec.md §3: the
// immutable registry of TypeDef values the core resolves. It is populated
// by a consumer (the schema loader, out of scope per spec.md §1) and never
// mutated thereafter.
package schema

import "fmt"

// IntegralType is a fixed-width signed or unsigned integer primitive.
type IntegralType int

const (
	U8 IntegralType = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
)

func (t IntegralType) String() string {
	switch t {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	default:
		return fmt.Sprintf("IntegralType(%d)", int(t))
	}
}

// Size is this integral type's footprint in bytes.
func (t IntegralType) Size() uint64 {
	switch t {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case U64, I64:
		return 8
	default:
		panic(fmt.Sprintf("schema: unknown integral type %d", int(t)))
	}
}

// Signed reports whether this integral type is signed.
func (t IntegralType) Signed() bool {
	switch t {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// FloatingPointType is a fixed-width floating point primitive. F16 is
// carried opaquely as a 2-byte value; the core never interprets its bits.
type FloatingPointType int

const (
	F16 FloatingPointType = iota
	F32
	F64
)

func (t FloatingPointType) String() string {
	switch t {
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("FloatingPointType(%d)", int(t))
	}
}

// Size is this floating point type's footprint in bytes.
func (t FloatingPointType) Size() uint64 {
	switch t {
	case F16:
		return 2
	case F32:
		return 4
	case F64:
		return 8
	default:
		panic(fmt.Sprintf("schema: unknown floating point type %d", int(t)))
	}
}

// PrimitiveKind distinguishes an integral from a floating point primitive.
type PrimitiveKind int

const (
	Integral PrimitiveKind = iota
	FloatingPoint
)

// PrimitiveType is a leaf scalar type: either an IntegralType or a
// FloatingPointType. Exactly one of Int/Float is meaningful, selected by
// Kind.
type PrimitiveType struct {
	Kind  PrimitiveKind
	Int   IntegralType
	Float FloatingPointType
}

// Size is this primitive's footprint in bytes (always 1, 2, 4 or 8).
func (p PrimitiveType) Size() uint64 {
	if p.Kind == Integral {
		return p.Int.Size()
	}
	return p.Float.Size()
}

// Align is this primitive's alignment, which always equals its size.
func (p PrimitiveType) Align() uint64 { return p.Size() }

func (p PrimitiveType) String() string {
	if p.Kind == Integral {
		return p.Int.String()
	}
	return p.Float.String()
}

func U(t IntegralType) PrimitiveType   { return PrimitiveType{Kind: Integral, Int: t} }
func Fp(t FloatingPointType) PrimitiveType { return PrimitiveType{Kind: FloatingPoint, Float: t} }
