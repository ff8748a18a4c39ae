package abi

import "github.com/layoutforge/abi/internal/ir"

// LayoutIR is the language-neutral artifact the IR Builder emits: one
// checked-arithmetic node tree per resolved type, plus the dynamic
// parameters each tree's footprint function needs (spec.md §6 item 3).
type LayoutIR = ir.LayoutIR

// TypeIr is one type's emitted tree within a LayoutIR.
type TypeIr = ir.TypeIr

// IrParameter describes one runtime input a type's footprint function
// needs.
type IrParameter = ir.IrParameter

// BuildError is returned by Build: a type whose size the IR grammar
// cannot express, a dynamic parameter the model never recorded, or an
// expression the IR's narrow grammar declines to lift (spec.md §7).
type BuildError = ir.Error

// BuildOptions configures a Build run: maximum inline-nesting depth, and
// whether derived parameters (e.g. __computed_tag) are surfaced in a
// TypeIr's Parameters list alongside plain field references.
type BuildOptions = ir.Options

// NewBuildOptions returns the default BuildOptions.
func NewBuildOptions() BuildOptions { return ir.NewOptions() }

// Build runs the IR Builder over model, producing a LayoutIR artifact
// (spec.md §4.4), using the default BuildOptions. buildID distinguishes
// this build from any other over the same model; it plays no role in
// either deterministic encoding.
func Build(model *Model, buildID string) (*LayoutIR, error) {
	return ir.Build(model, buildID)
}

// BuildWithOptions is Build with caller-supplied BuildOptions.
func BuildWithOptions(model *Model, buildID string, opts BuildOptions) (*LayoutIR, error) {
	return ir.BuildWithOptions(model, buildID, opts)
}

// EncodeJSON produces the canonical, sorted-key JSON encoding of a
// LayoutIR artifact.
func EncodeJSON(l *LayoutIR) ([]byte, error) {
	return ir.EncodeJSON(l)
}

// EncodeBinary produces the length-prefixed binary encoding of a
// LayoutIR artifact.
func EncodeBinary(l *LayoutIR) ([]byte, error) {
	return ir.EncodeBinary(l)
}
