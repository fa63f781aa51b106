package interp

import (
	"monogrammedchalk.com/tcl/lexer"
	"monogrammedchalk.com/tcl/value"
)

// Eval drives the lexer over buf, accumulates words into argument lists,
// and dispatches each complete command to the command table (spec §4.7).
// It returns true on success (no error latched), matching the host-facing
// eval() contract of spec §6 ("return 0 on error, non-zero otherwise").
// An error latched by an earlier Eval call is cleared first.
func (in *Interp) Eval(buf []byte) bool {
	in.errLatched, in.errKind, in.errPos = false, NoError, 0
	in.evalBuffer(buf)
	return !in.errLatched
}

// evalBuffer is the internal recursive evaluator (spec §4.7 steps 1-5);
// it is what [nested script] substitution and proc bodies call back into.
func (in *Interp) evalBuffer(buf []byte) FlowCode {
	in.nest++
	defer func() { in.nest-- }()

	var args []value.Value
	var cur *value.Value
	var flags lexer.Flags
	off := 0
	last := Normal

loop:
	for off <= len(buf) {
		tok, nf := lexer.Next(buf[off:], flags)
		// In quote mode the only WORD the lexer returns is the closing
		// quote: it ends the word but its byte is not part of the text.
		closingQuote := tok.Kind == lexer.WORD && flags&lexer.InQuote != 0
		flags = nf
		absStart := off + tok.Start
		absEnd := off + tok.End

		switch tok.Kind {
		case lexer.ERROR:
			last = in.failAt(Syntax, absStart, "syntax error in script")
			break loop

		case lexer.WORD, lexer.PART:
			in.curPos = absStart
			span := buf[absStart:absEnd]
			if closingQuote {
				span = span[:0]
			}
			flow := in.subst(span)
			if flow == Error {
				last = flow
				break loop
			}
			v := in.result.Dup()
			if cur != nil {
				merged := value.Append(*cur, v)
				cur = &merged
			} else {
				cur = &v
			}
			if tok.Kind == lexer.WORD {
				args = append(args, *cur)
				cur = nil
			}

		case lexer.CMD:
			if len(args) > 0 {
				last = in.dispatch(args)
				args = nil
				if last != Normal {
					break loop
				}
			}
			if off+tok.End >= len(buf) && tok.Start == tok.End {
				// the synthetic end-of-buffer CMD token; nothing left
				// to lex after it.
				break loop
			}
		}

		adv := tok.End
		if adv == tok.Start {
			adv++
		}
		off += adv
	}

	if len(args) > 0 && last == Normal {
		last = in.dispatch(args)
	}

	return in.collapse(last)
}

// collapse implements spec §4.7 step 5: at the outermost level (in.nest is
// still 1 here, since evalBuffer defers its decrement), fold to Error if
// any error was latched, else return the last flow produced.
func (in *Interp) collapse(last FlowCode) FlowCode {
	if in.nest == 1 && in.errLatched {
		return Error
	}
	return last
}

// dispatch looks up and calls the command named by args[0].
func (in *Interp) dispatch(args []value.Value) FlowCode {
	name := args[0].String()
	c := in.lookup(name, len(args))
	if c == nil {
		return in.fail(CmdUnknown, "command not found: %q (%d args)", name, len(args)-1)
	}
	return c.handler(in, args, c.user)
}

// subst implements spec §4.4: resolves a single lexed span and writes the
// result into in.result.
func (in *Interp) subst(span []byte) FlowCode {
	if len(span) == 0 {
		return in.setResult(Normal, value.Value{})
	}
	switch span[0] {
	case '{':
		if len(span) <= 1 {
			return in.fail(Syntax, "unterminated brace literal")
		}
		inner := span[1 : len(span)-1]
		return in.setResult(Normal, value.New(inner, value.IsBinary(inner)))

	case '$':
		name := span[1:]
		if len(name) > 256 {
			return in.fail(VarName, "variable name too long")
		}
		v, ok := in.Var(string(name), nil)
		if !ok {
			return Error
		}
		return in.setResult(Normal, v.Dup())

	case '[':
		if len(span) < 2 {
			return in.fail(Syntax, "unterminated nested script")
		}
		inner := span[1 : len(span)-1]
		return in.evalBuffer(inner)

	default:
		return in.setResult(Normal, value.New(span, value.IsBinary(span)))
	}
}
