// Package debug includes opt-in structured tracing for the resolver, IR
// builder and reflective parser. It is compiled to a no-op unless the
// binary is built with the "debug" tag, so the hot resolution/parse path
// pays nothing for it in production builds.
package debug

import "fmt"

// Formatter is a fmt.Formatter implementation that defers printing until
// the value is actually formatted with %v.
type Formatter func(s fmt.State)

func (f Formatter) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprintf(s, "%%%c(%T)", verb, f)
		return
	}
	f(s)
}

func (f Formatter) String() string { return fmt.Sprint(f) }

// Fprintf delays formatting of format/args until the result is printed.
func Fprintf(format string, args ...any) Formatter {
	return Formatter(func(s fmt.State) { fmt.Fprintf(s, format, args...) })
}

// Dict pretty-prints kv pairs as a dictionary, skipping nil values.
func Dict(prefix any, kv ...any) Formatter {
	return Formatter(func(s fmt.State) {
		if len(kv)%2 != 0 {
			panic("debug: Dict args must be divisible by 2")
		}
		if prefix == nil {
			prefix = ""
		}
		first := true
		fmt.Fprintf(s, "%v{", prefix)
		for i := 0; i < len(kv)/2; i++ {
			k, v := kv[2*i], kv[2*i+1]
			if v == nil {
				continue
			}
			if !first {
				fmt.Fprint(s, ", ")
			}
			first = false
			fmt.Fprintf(s, "%v: %v", k, v)
		}
		fmt.Fprint(s, "}")
	})
}
