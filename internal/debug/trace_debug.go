//go:build debug

package debug

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// Enabled is true when the binary is built with `-tags debug`.
const Enabled = true

var debugPattern *regexp.Regexp

func init() {
	flag.Func("abi.filter", "regexp to filter debug trace lines by", func(s string) (err error) {
		debugPattern, err = regexp.Compile(s)
		return err
	})
}

// Log prints a structured trace line to stderr. context is optional
// Printf-style args identifying the group of operations this line belongs
// to; it is printed before operation.
func Log(context []any, operation string, format string, args ...any) {
	skip := 2
	pc, file, line, _ := runtime.Caller(skip)
	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	pkg := name
	if idx := strings.Index(pkg, "."); idx >= 0 {
		pkg = pkg[:idx]
	}
	file = filepath.Base(file)

	buf := new(strings.Builder)
	fmt.Fprintf(buf, "%s/%s:%d", pkg, file, line)
	if len(context) >= 1 {
		fmt.Fprintf(buf, " ["+context[0].(string), context[1:]...)
		buf.WriteByte(']')
	}
	fmt.Fprintf(buf, " %s: ", operation)
	fmt.Fprintf(buf, format, args...)

	if debugPattern != nil && !debugPattern.MatchString(buf.String()) {
		return
	}

	buf.WriteByte('\n')
	os.Stderr.WriteString(buf.String())
}

// Assert panics if cond is false. Only compiled into debug builds.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("abi: internal assertion failed: "+format, args...))
	}
}
