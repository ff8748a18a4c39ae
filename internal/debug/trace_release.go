//go:build !debug

package debug

// Enabled is false in release builds; Log and Assert compile down to
// nothing so callers never pay for the formatting work.
const Enabled = false

// Log is a no-op in release builds.
func Log(context []any, operation string, format string, args ...any) {}

// Assert is a no-op in release builds.
func Assert(cond bool, format string, args ...any) {}
