package ir

import "fmt"

// ErrorKind dispatches IR build failures by family (spec.md §4.4).
type ErrorKind int

const (
	ErrUnsupportedSize ErrorKind = iota
	ErrMissingDynamicRefs
	ErrMissingParameter
	ErrUnsupportedExpression
	ErrUnsupportedArrayElement
	ErrDependencyCycle
	ErrMissingType
	// ErrRecursionLimitExceeded means node emission nested deeper than
	// Options.MaxRecursionDepth while following inline type bodies; not
	// one of spec.md §7's named IR-build error kinds, but a second,
	// independent guard over an already-resolved model (see the
	// resolver's own identically-named guard).
	ErrRecursionLimitExceeded
)

// Error is a value-typed IR build error naming the offending type and, when
// applicable, the owner/path/primitive implicated.
type Error struct {
	Kind ErrorKind
	Type string
	Path string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Msg, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Msg)
}

func unsupportedSize(typ string, shape string) *Error {
	return &Error{Kind: ErrUnsupportedSize, Type: typ,
		Msg: fmt.Sprintf("unexpected shape %q for size emission", shape)}
}

func missingDynamicRefs(typ, field string) *Error {
	return &Error{Kind: ErrMissingDynamicRefs, Type: typ, Path: field,
		Msg: "variable-size field declares no dynamic parameters"}
}

func missingParameter(typ, owner, path string) *Error {
	return &Error{Kind: ErrMissingParameter, Type: typ, Path: path,
		Msg: fmt.Sprintf("expression refers to undeclared parameter under owner %q", owner)}
}

func unsupportedExpression(typ, path string) *Error {
	return &Error{Kind: ErrUnsupportedExpression, Type: typ, Path: path,
		Msg: "expression uses an operator the IR grammar cannot lift (only +, *, field refs and literals are lifted)"}
}

func unsupportedArrayElement(typ, elem string) *Error {
	return &Error{Kind: ErrUnsupportedArrayElement, Type: typ, Path: elem,
		Msg: "array element type cannot be emitted"}
}

func dependencyCycle(typ string) *Error {
	return &Error{Kind: ErrDependencyCycle, Type: typ, Msg: "dependency cycle encountered during IR emission"}
}

func missingType(typ, target string) *Error {
	return &Error{Kind: ErrMissingType, Type: typ, Path: target,
		Msg: fmt.Sprintf("references type %q not present in the resolved model", target)}
}

func recursionLimitExceeded(typ string, limit int) *Error {
	return &Error{Kind: ErrRecursionLimitExceeded, Type: typ,
		Msg: fmt.Sprintf("inline type nesting exceeded the configured limit of %d", limit)}
}
