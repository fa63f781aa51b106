package interp

import "monogrammedchalk.com/tcl/value"

// Handler is a registered command's implementation. args is the borrowed
// word list (args[0] is the command name); handlers must not retain or
// mutate it past the call. user is the opaque user-data supplied at
// registration (for `proc`-defined commands, a duplicated copy of the
// proc's parameter list and body).
type Handler func(in *Interp, args []value.Value, user any) FlowCode

// command is one entry in the registry: a name, its handler, declared
// arity (0 = variadic, else the exact word count including the command
// name), and opaque user-data.
//
// Grounded on the teacher's command dispatch in executor/weave.go, which
// switches on a fixed set of block types; here the switch is replaced by
// a registry so that `proc` can add new names (and shadow built-ins) at
// run time.
type command struct {
	name    string
	handler Handler
	arity   int
	user    any
	next    *command
}

// Register prepends a new command record to the registry (spec §4.6).
// Lookup is linear from the head, so the most recently registered
// definition of a name wins — this is what lets `proc` shadow a built-in
// or an earlier proc of the same name.
func (in *Interp) Register(name string, handler Handler, arity int, user any) {
	in.commands = &command{name: name, handler: handler, arity: arity, user: user, next: in.commands}
}

// lookup returns the first registered command matching name whose arity
// is 0 (variadic) or equal to argc (the word count including the command
// name itself), or nil if none match.
func (in *Interp) lookup(name string, argc int) *command {
	for c := in.commands; c != nil; c = c.next {
		if c.name == name && (c.arity == 0 || c.arity == argc) {
			return c
		}
	}
	return nil
}
