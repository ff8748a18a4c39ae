package abi

// Errors form four families (spec.md §7), each value-typed with a kind
// and a message naming the offending type/field/path:
//
//   - SchemaError (resolution time): unknown type, circular dependency,
//     invalid comment, non-constant type reference, field-reference-not-
//     found, field-reference-not-primitive, tail-rule violation. Always
//     fatal for the offending type.
//   - BuildError (IR-build time): unsupported size/shape, missing
//     dynamic refs, missing parameter, unsupported expression,
//     unsupported array element, dependency cycle, missing type.
//   - ParseError (parse time): insufficient data, invalid enum tag,
//     invalid SDU size, expression evaluation failed, field-reference
//     failed, type-resolution failed. The parser never panics; every
//     recover path surfaces as a ParseError instead.
//   - Integrity errors: overflow on a checked AddChecked/MulChecked node
//     while evaluating a LayoutIR tree. This module only emits those
//     trees; evaluating them (and so detecting overflow) is the
//     responsibility of whatever consumer walks the LayoutIR to compute
//     an actual footprint, so there is no corresponding Go error type
//     here.
//
// No recovery is attempted internally: the caller decides whether to
// abort, skip the offending type, or retry with corrected input.
