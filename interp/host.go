package interp

import (
	"fmt"
	"io"

	"monogrammedchalk.com/tcl/value"
)

// RegisterPuts registers the `puts` built-in against out (spec §4.8,
// "puts s (external, conditional)"; spec §1 lists it as an out-of-scope
// host collaborator, only the interface is specified). Writes s followed
// by a newline; the result is s itself.
func RegisterPuts(in *Interp, out io.Writer) {
	in.Register("puts", func(in *Interp, args []value.Value, _ any) FlowCode {
		if len(args) != 2 {
			return argError(in, "puts")
		}
		fmt.Fprintf(out, "%s\n", args[1].String())
		return in.setResult(Normal, args[1].Dup())
	}, 2, nil)
}

// RegisterClock registers a variadic `clock` command that returns
// tick()'s value, demonstrating the opaque user-data slot of spec §4.1's
// Command record (SPEC_FULL §3, "host-registered command surface").
func RegisterClock(in *Interp, tick func() int64) {
	in.Register("clock", func(in *Interp, args []value.Value, user any) FlowCode {
		f := user.(func() int64)
		return in.setResult(Normal, value.FromInt(f()))
	}, 0, tick)
}
