package ir

// Options configures a Build run (SPEC_FULL.md Ambient Stack
// Configuration), mirroring the teacher's Options/NewOptions pattern.
type Options struct {
	// MaxRecursionDepth bounds node emission depth while walking inline
	// nested type bodies, guarding against a pathological schema the
	// resolver's own Options.MaxRecursionDepth already let through at a
	// looser limit (Build runs after Resolve, over an already-resolved
	// model, so this is a second, independent guard).
	MaxRecursionDepth int

	// SurfaceDerivedParameters controls whether a TypeIr's Parameters
	// list includes derived parameters (those with Derived: true, e.g.
	// __computed_tag) alongside plain field-reference ones. Callers that
	// only care about the parameters they must supply directly — not
	// the ones the parser can derive on its own from the buffer — can
	// set this false to get a shorter, caller-facing list.
	SurfaceDerivedParameters bool
}

const defaultMaxRecursionDepth = 256

// NewOptions returns the default Options.
func NewOptions() Options {
	return Options{MaxRecursionDepth: defaultMaxRecursionDepth, SurfaceDerivedParameters: true}
}

func (o Options) maxDepth() int {
	if o.MaxRecursionDepth <= 0 {
		return defaultMaxRecursionDepth
	}
	return o.MaxRecursionDepth
}
