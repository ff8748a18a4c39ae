// Package abi is the public facade over the type registry, resolver, IR
// builder and reflective parser: a consumer populates a Registry, calls
// Resolve to get a Model, optionally calls Build to get a LayoutIR
// artifact for an external emitter, and calls Parse to decode a buffer
// against a resolved type (spec.md §6 External Interfaces).
//
// None of the four stages does any I/O or concurrency of its own; the
// Model and LayoutIR are immutable once returned and safe to share across
// goroutines for concurrent parsing of the same schema (spec.md §5).
package abi
