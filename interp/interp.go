// Package interp is the interpreter core: the environment/command table,
// the evaluator, the control-flow and data built-ins, and the expression
// sublanguage. It is the package a host embeds.
//
// The split mirrors the teacher's executor package (the piece of
// monogrammedchalk.com/glitter that walks a parsed document and carries
// scope state) generalized from "weave a document" to "evaluate a
// command script": the same Stack-of-frames idea, the same
// dispatch-by-type switch turned into a command registry, but driving a
// recursive word evaluator instead of a linear block list.
package interp

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"monogrammedchalk.com/tcl/value"
)

// FlowCode is the control-flow signal threaded through command dispatch
// and the evaluator (spec §4.7, GLOSSARY "Flow code").
type FlowCode int

const (
	Normal FlowCode = iota
	Return
	Break
	Again
	Error
)

func (f FlowCode) String() string {
	switch f {
	case Normal:
		return "NORMAL"
	case Return:
		return "RETURN"
	case Break:
		return "BREAK"
	case Again:
		return "AGAIN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ErrorKind is the taxonomy of error codes an interpreter can latch
// (spec §7).
type ErrorKind int

const (
	NoError ErrorKind = iota
	Syntax
	VarUnknown
	VarName
	CmdUnknown
	Param
	ExprErr
	Memory
)

func (k ErrorKind) String() string {
	switch k {
	case Syntax:
		return "SYNTAX"
	case VarUnknown:
		return "VARUNKNOWN"
	case VarName:
		return "VARNAME"
	case CmdUnknown:
		return "CMDUNKNOWN"
	case Param:
		return "PARAM"
	case ExprErr:
		return "EXPR"
	case Memory:
		return "MEMORY"
	default:
		return "NONE"
	}
}

// Interp is one interpreter instance: current frame, command registry,
// result value, nesting depth, and the first-error latch.
type Interp struct {
	root     *Frame
	cur      *Frame
	commands *command

	result value.Value

	nest int

	errLatched bool
	errKind    ErrorKind
	errPos     int

	// curPos is the start offset of the word most recently substituted,
	// relative to the buffer being evaluated at that moment (a nested
	// script or proc body has its own offsets). It is the default error
	// position for built-ins that don't have a more specific span of
	// their own.
	curPos int

	log *logrus.Logger
}

// New zero-initializes an interpreter, creates its root frame, and
// registers every built-in (spec §6, "init").
func New() *Interp {
	in := &Interp{log: logrus.StandardLogger()}
	in.root = newFrame(nil)
	in.cur = in.root
	registerBuiltins(in)
	return in
}

// SetLogger replaces the logger stored on the interpreter (New installs
// logrus's standard logger). The evaluator and built-ins do not write to
// it.
func (in *Interp) SetLogger(l *logrus.Logger) {
	in.log = l
}

// Destroy tears down all frames and the command registry (spec §6,
// "destroy"). Go's GC reclaims everything once in is dropped; Destroy
// exists to match the host-facing lifecycle the spec names and to give a
// host an explicit point to release large scripts' results.
func (in *Interp) Destroy() {
	in.root = nil
	in.cur = nil
	in.commands = nil
	in.result = value.Value{}
}

// Result returns the interpreter's current result value.
func (in *Interp) Result() value.Value {
	return in.result
}

// setResult implements the `result(interp, flow, value)` helper from
// spec §6: it consumes val (the caller must not use it again) and
// records it as the interpreter's result, returning flow unchanged for
// convenient chaining (`return in.setResult(Normal, v)`).
func (in *Interp) setResult(flow FlowCode, val value.Value) FlowCode {
	in.result = val
	return flow
}

// fail latches the given error kind (first one wins) at in.curPos, the
// start of the word most recently substituted, and sets the result to a
// descriptive message, returning Error for convenient chaining.
func (in *Interp) fail(kind ErrorKind, format string, args ...any) FlowCode {
	return in.failAt(kind, in.curPos, format, args...)
}

// failAt is fail with an explicit byte offset, used by the lexer/eval
// path which knows exactly where in the script the error was found.
func (in *Interp) failAt(kind ErrorKind, pos int, format string, args ...any) FlowCode {
	msg := errors.Wrapf(errors.Errorf(format, args...), "tcl: %s", kind).Error()
	if !in.errLatched {
		in.errLatched = true
		in.errKind = kind
		in.errPos = pos
	}
	return in.setResult(Error, value.FromString(msg))
}

// ErrorPosition translates the latched byte offset into a 1-based
// line/column pair using CR, LF, or CRLF as line terminators (spec §6,
// "error_position"). ok is false if no error has been latched.
func (in *Interp) ErrorPosition(script []byte) (line, col int, kind ErrorKind, ok bool) {
	if !in.errLatched {
		return 0, 0, NoError, false
	}
	pos := in.errPos
	if pos > len(script) {
		pos = len(script)
	}
	line, col = 1, 1
	i := 0
	for i < pos {
		switch script[i] {
		case '\n':
			line++
			col = 1
			i++
		case '\r':
			line++
			col = 1
			i++
			if i < pos && script[i] == '\n' {
				i++
			}
		default:
			col++
			i++
		}
	}
	return line, col, in.errKind, true
}
