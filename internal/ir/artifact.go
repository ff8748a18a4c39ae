package ir

// IrParameter describes one runtime input a type's footprint function needs
// (spec.md §6 item 3).
type IrParameter struct {
	Name        string
	Description string
	Derived     bool
}

// TypeIr is one type's emitted Layout-IR (spec.md §6 item 3).
type TypeIr struct {
	TypeName   string
	Alignment  uint64
	Root       Node
	Parameters []IrParameter
}

// LayoutIR is the full artifact covering every type in a resolved model
// (spec.md §6 item 3). BuildID distinguishes two builds over the same
// model; it is not part of either deterministic encoding (SPEC_FULL.md
// Domain Stack: google/uuid).
type LayoutIR struct {
	Version int
	Types   []TypeIr
	BuildID string
}

// CurrentVersion is the Layout-IR artifact format version this package
// emits.
const CurrentVersion = 1
