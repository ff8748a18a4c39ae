package abi

import "github.com/layoutforge/abi/internal/parser"

// ParamMap holds the runtime values a Parse call needs for every
// dynamic parameter a resolved type declares: union __variant selectors,
// array/SDU/enum-tag field overrides, and any derived parameter a caller
// chooses to inject directly instead of letting it resolve from the
// buffer itself (spec.md §4.5, §6 item 4).
type ParamMap = parser.ParamMap

// NewParamMap returns an empty ParamMap ready for Set calls.
func NewParamMap() *ParamMap { return parser.NewParamMap() }

// ReflectedValue is one decoded node in a Parse result tree: its byte
// range within the buffer plus a Value payload (Primitive, Struct,
// Union, Enum, Array, SizeDiscriminatedUnion, or TypeRef).
type ReflectedValue = parser.ReflectedValue

// Value is the sum type every ReflectedValue.Value implements.
type Value = parser.Value

// Struct, Union, Enum, Array, SizeDiscriminatedUnion, TypeRef and
// Primitive are the concrete Value kinds a ReflectedValue can hold.
type (
	Primitive              = parser.Primitive
	NamedField             = parser.NamedField
	Struct                 = parser.Struct
	Union                  = parser.Union
	Enum                   = parser.Enum
	Array                  = parser.Array
	SizeDiscriminatedUnion = parser.SizeDiscriminatedUnion
	TypeRef                = parser.TypeRef
)

// ParseOptions configures a Parse call: maximum recursion depth and
// whether unconsumed trailing bytes after a constant-size root type are
// an error or silently discarded (spec.md §6 item 4).
type ParseOptions = parser.Options

// NewParseOptions returns the default ParseOptions.
func NewParseOptions() ParseOptions { return parser.NewOptions() }

// ParseError is returned by Parse: insufficient buffer data, an invalid
// enum tag or SDU size, a field reference or expression that could not
// be resolved, or an unknown root type name (spec.md §7).
type ParseError = parser.Error

// ParseErrorKind dispatches a ParseError by family.
type ParseErrorKind = parser.ErrorKind

// ParseError kinds, re-exported for type-switching on ParseError.Kind.
const (
	ErrInsufficientData                 = parser.ErrInsufficientData
	ErrInvalidEnumTag                    = parser.ErrInvalidEnumTag
	ErrInvalidSizeDiscriminatedUnionSize = parser.ErrInvalidSizeDiscriminatedUnionSize
	ErrExpressionEvaluationFailed        = parser.ErrExpressionEvaluationFailed
	ErrFieldReferenceFailed              = parser.ErrFieldReferenceFailed
	ErrTypeResolutionFailed              = parser.ErrTypeResolutionFailed
	ErrUnknownType                       = parser.ErrUnknownType
	ErrInternal                          = parser.ErrInternal
)

// Parse decodes buf against typeName's resolved layout in model, using
// params for any dynamic parameters the layout needs, and default
// ParseOptions (spec.md §4.5).
func Parse(model *Model, typeName string, buf []byte, params *ParamMap) (*ReflectedValue, error) {
	return parser.Parse(model, typeName, buf, params)
}

// ParseWithOptions is Parse with caller-supplied ParseOptions.
func ParseWithOptions(model *Model, typeName string, buf []byte, params *ParamMap, opts ParseOptions) (*ReflectedValue, error) {
	return parser.ParseWithOptions(model, typeName, buf, params, opts)
}
