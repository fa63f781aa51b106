package interp

import "monogrammedchalk.com/tcl/value"

// binding is one name/value pair in a Frame. A global binding carries no
// value of its own; lookups and writes redirect to the same name in the
// root frame (spec §3, "Variable binding").
//
// This is the teacher's `executor/stack.go` Stack []map[string]string
// model, generalized from plain strings to binary-safe Values and from an
// implicit "search every frame" lookup to the spec's explicit global-alias
// flag (glitter had no notion of aliasing a name to an outer scope; partcl
// does, via tcl_var's TCL_VAR_GLOBAL flag).
type binding struct {
	value  value.Value
	global bool
}

// Frame is one level of variable scope, linked to its parent. The
// interpreter holds a pointer to the current (innermost) frame; proc
// calls push a child frame and tear it down on return.
type Frame struct {
	vars   map[string]*binding
	parent *Frame
}

func newFrame(parent *Frame) *Frame {
	return &Frame{vars: make(map[string]*binding), parent: parent}
}

func (f *Frame) root() *Frame {
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// pushFrame creates and switches to a new child frame of in's current
// frame, mirroring glitter's pushStackFrame (there: append a map onto a
// slice; here: link a new Frame onto the current one since procs nest by
// call, not by lexical block).
func (in *Interp) pushFrame() {
	in.cur = newFrame(in.cur)
}

// popFrame discards the current frame and returns to its parent. Never
// called on the root frame.
func (in *Interp) popFrame() {
	in.cur = in.cur.parent
}

// lookupBinding returns the binding backing name as observed from the
// current frame, following one level of global aliasing if present.
func (in *Interp) lookupBinding(name string) (*binding, bool) {
	b, ok := in.cur.vars[name]
	if !ok {
		return nil, false
	}
	if b.global {
		return in.cur.root().vars[name], true
	}
	return b, true
}

// Var implements spec §4.5's var(name, value?):
//  1. look up name in the current frame, following a global alias to the
//     root frame if set;
//  2. if unset and value is nil, raise VARUNKNOWN and create a fresh
//     empty binding anyway;
//  3. if unset, create a binding in the current frame;
//  4. if value is non-nil, replace the binding's value;
//  5. return the binding's current value (borrowed).
func (in *Interp) Var(name string, val *value.Value) (value.Value, bool) {
	b, ok := in.lookupBinding(name)
	if !ok {
		b = &binding{}
		in.cur.vars[name] = b
		if val == nil {
			in.fail(VarUnknown, "can't read %q: no such variable", name)
			return b.value, false
		}
	}
	if val != nil {
		b.value = val.Dup()
	}
	return b.value, true
}

// Global implements the `global` built-in's per-name semantics (spec
// §4.5): walking to the root frame, a local binding of the same name in
// the current frame is a VARNAME collision; an unknown name at the root
// is VARUNKNOWN; otherwise a local alias binding is created.
func (in *Interp) Global(name string) bool {
	if _, ok := in.cur.vars[name]; ok {
		in.fail(VarName, "variable %q already has a local definition", name)
		return false
	}
	root := in.cur.root()
	if _, ok := root.vars[name]; !ok {
		in.fail(VarUnknown, "no such variable %q at global scope", name)
		return false
	}
	in.cur.vars[name] = &binding{global: true}
	return true
}
