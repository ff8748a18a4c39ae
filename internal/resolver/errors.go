package resolver

import "fmt"

// ErrorKind dispatches schema errors by family (spec.md §7).
type ErrorKind int

const (
	ErrUnknownType ErrorKind = iota
	ErrCircularDependency
	ErrInvalidComment
	ErrFieldReferenceNotFound
	ErrFieldReferenceNotPrimitive
	ErrNonConstantTypeReference
	ErrTailRuleViolation
	// ErrRecursionLimitExceeded means a chain of inline nested type bodies
	// exceeded Options.MaxRecursionDepth; not one of spec.md §7's named
	// schema error kinds, but needed to guard against a pathological or
	// mutually-recursive inline schema the way the parser guards its own
	// recursive descent.
	ErrRecursionLimitExceeded
)

// Error is a value-typed schema error naming the offending type/field/path
// (spec.md §7 policy).
type Error struct {
	Kind ErrorKind
	Type string // the type being resolved when the error occurred
	Path string // field/variant/path implicated, if any
	Msg  string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Msg, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Msg)
}

func unknownType(from, missing string) *Error {
	return &Error{Kind: ErrUnknownType, Type: from, Path: missing,
		Msg: fmt.Sprintf("references unknown type %q", missing)}
}

func circularDependency(names []string) *Error {
	return &Error{Kind: ErrCircularDependency, Type: fmt.Sprint(names),
		Msg: "circular dependency among types"}
}

func invalidComment(typ, text string) *Error {
	return &Error{Kind: ErrInvalidComment, Type: typ, Path: text,
		Msg: "comment contains reserved sequence \"*/\""}
}

func fieldReferenceNotFound(typ, path string) *Error {
	return &Error{Kind: ErrFieldReferenceNotFound, Type: typ, Path: path,
		Msg: "field reference not found"}
}

func fieldReferenceNotPrimitive(typ, path string) *Error {
	return &Error{Kind: ErrFieldReferenceNotPrimitive, Type: typ, Path: path,
		Msg: "field reference does not resolve to a primitive"}
}

func nonConstantTypeReference(typ, target string) *Error {
	return &Error{Kind: ErrNonConstantTypeReference, Type: typ, Path: target,
		Msg: fmt.Sprintf("references variable-size type %q by name; variable-size bodies must be inlined", target)}
}

func tailRuleViolation(typ, field string) *Error {
	return &Error{Kind: ErrTailRuleViolation, Type: typ, Path: field,
		Msg: "variable-size field must be the final field of its struct"}
}

func recursionLimitExceeded(typ string, limit int) *Error {
	return &Error{Kind: ErrRecursionLimitExceeded, Type: typ,
		Msg: fmt.Sprintf("inline type nesting exceeded the configured limit of %d", limit)}
}
