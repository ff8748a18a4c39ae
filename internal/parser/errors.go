package parser

import "fmt"

// ErrorKind dispatches a parse failure by family (spec.md §4.5).
type ErrorKind int

const (
	// ErrInsufficientData means the buffer ran out before a value's
	// declared size could be satisfied.
	ErrInsufficientData ErrorKind = iota
	// ErrInvalidEnumTag means a tag expression evaluated to a value no
	// variant declares.
	ErrInvalidEnumTag
	// ErrInvalidSizeDiscriminatedUnionSize means the remaining buffer
	// length matched no SDU variant's expected size.
	ErrInvalidSizeDiscriminatedUnionSize
	// ErrExpressionEvaluationFailed wraps a failure from internal/exprextract.
	ErrExpressionEvaluationFailed
	// ErrFieldReferenceFailed means a field-reference path could not be
	// resolved through any of the four fallback levels.
	ErrFieldReferenceFailed
	// ErrTypeResolutionFailed means a sizeof/alignof operand named an
	// unknown type.
	ErrTypeResolutionFailed
	// ErrUnknownType means the entry type name isn't in the model.
	ErrUnknownType
	// ErrInternal wraps a recovered arithmetic panic (slice bounds,
	// integer divide-by-zero) that reached the parser from its own
	// bookkeeping rather than from a Value's declared shape.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInsufficientData:
		return "InsufficientData"
	case ErrInvalidEnumTag:
		return "InvalidEnumTag"
	case ErrInvalidSizeDiscriminatedUnionSize:
		return "InvalidSizeDiscriminatedUnionSize"
	case ErrExpressionEvaluationFailed:
		return "ExpressionEvaluationFailed"
	case ErrFieldReferenceFailed:
		return "FieldReferenceFailed"
	case ErrTypeResolutionFailed:
		return "TypeResolutionFailed"
	case ErrUnknownType:
		return "UnknownType"
	case ErrInternal:
		return "Internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a value-typed parse error carrying the offset it occurred at,
// mirroring the resolver's and ir's own error shape.
type Error struct {
	Kind   ErrorKind
	Type   string
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %s: %s (type=%s offset=%d)", e.Kind, e.Msg, e.Type, e.Offset)
}

func insufficientData(typeName string, offset int, needed, available int) *Error {
	return &Error{
		Kind:   ErrInsufficientData,
		Type:   typeName,
		Offset: offset,
		Msg:    fmt.Sprintf("needed %d bytes, %d available", needed, available),
	}
}

func invalidEnumTag(typeName string, offset int, tag uint64) *Error {
	return &Error{
		Kind:   ErrInvalidEnumTag,
		Type:   typeName,
		Offset: offset,
		Msg:    fmt.Sprintf("tag value %d matches no declared variant", tag),
	}
}

func invalidSDUSize(typeName string, offset int, size int) *Error {
	return &Error{
		Kind:   ErrInvalidSizeDiscriminatedUnionSize,
		Type:   typeName,
		Offset: offset,
		Msg:    fmt.Sprintf("remaining buffer length %d matches no declared variant size", size),
	}
}

func expressionEvaluationFailed(typeName string, offset int, err error) *Error {
	return &Error{Kind: ErrExpressionEvaluationFailed, Type: typeName, Offset: offset, Msg: err.Error()}
}

func fieldReferenceFailed(typeName string, offset int, path string) *Error {
	return &Error{
		Kind:   ErrFieldReferenceFailed,
		Type:   typeName,
		Offset: offset,
		Msg:    fmt.Sprintf("field reference %q could not be resolved against any parsed scope", path),
	}
}

func typeResolutionFailed(typeName string, offset int, target string) *Error {
	return &Error{
		Kind:   ErrTypeResolutionFailed,
		Type:   typeName,
		Offset: offset,
		Msg:    fmt.Sprintf("unknown type %q", target),
	}
}

func trailingBytes(typeName string, consumed, total int) *Error {
	return &Error{
		Kind:   ErrInsufficientData,
		Type:   typeName,
		Offset: consumed,
		Msg:    fmt.Sprintf("%d unconsumed trailing byte(s) after decoding a constant-size root type (consumed %d of %d)", total-consumed, consumed, total),
	}
}

func unknownType(name string) *Error {
	return &Error{Kind: ErrUnknownType, Type: name, Msg: "type not present in the resolved model"}
}

func internalError(typeName string, offset int, r any) *Error {
	return &Error{Kind: ErrInternal, Type: typeName, Offset: offset, Msg: fmt.Sprintf("recovered: %v", r)}
}
