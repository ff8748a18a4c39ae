package resolver

// Options configures a Resolve run (SPEC_FULL.md Ambient Stack
// Configuration), mirroring the teacher's Options/NewOptions pattern.
type Options struct {
	// MaxRecursionDepth bounds how deeply nested inline type bodies
	// (a struct field whose type is itself an inline struct/union/
	// enum/array/SDU, and so on) may nest before resolution aborts
	// with a RecursionLimitExceeded error, guarding against a
	// pathological or mutually-recursive inline schema.
	MaxRecursionDepth int
}

const defaultMaxRecursionDepth = 256

// NewOptions returns the default Options.
func NewOptions() Options {
	return Options{MaxRecursionDepth: defaultMaxRecursionDepth}
}

func (o Options) maxDepth() int {
	if o.MaxRecursionDepth <= 0 {
		return defaultMaxRecursionDepth
	}
	return o.MaxRecursionDepth
}
