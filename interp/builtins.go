package interp

import (
	"monogrammedchalk.com/tcl/value"
)

// registerBuiltins installs every control-flow and data built-in named by
// spec §4.8, plus the four original_source-only additions SPEC_FULL §4
// folds in (append, for, list/concat/llength, the bare relational
// commands). Arity 0 means variadic.
func registerBuiltins(in *Interp) {
	in.Register("set", cmdSet, 0, nil)
	in.Register("global", cmdGlobal, 0, nil)
	in.Register("subst", cmdSubst, 2, nil)
	in.Register("proc", cmdProc, 4, nil)
	in.Register("if", cmdIf, 0, nil)
	in.Register("while", cmdWhile, 3, nil)
	in.Register("return", cmdReturn, 0, nil)
	in.Register("break", cmdBreak, 1, nil)
	in.Register("continue", cmdContinue, 1, nil)
	in.Register("incr", cmdIncr, 0, nil)
	in.Register("scan", cmdScan, 0, nil)
	in.Register("expr", cmdExpr, 0, nil)

	in.Register("append", cmdAppend, 0, nil)
	in.Register("for", cmdFor, 5, nil)
	in.Register("list", cmdList, 0, nil)
	in.Register("concat", cmdConcat, 0, nil)
	in.Register("llength", cmdLlength, 2, nil)

	for _, op := range []string{"<", ">", "<=", ">=", "==", "!="} {
		in.Register(op, cmdRelational(op), 3, nil)
	}
}

func argError(in *Interp, name string) FlowCode {
	return in.fail(Param, "wrong number of arguments to %q", name)
}

// cmdSet implements `set name ?value?` (spec §4.8).
func cmdSet(in *Interp, args []value.Value, _ any) FlowCode {
	if len(args) != 2 && len(args) != 3 {
		return argError(in, "set")
	}
	name := args[1].String()
	if len(args) == 3 {
		v := args[2].Dup()
		val, ok := in.Var(name, &v)
		if !ok {
			return Error
		}
		return in.setResult(Normal, val.Dup())
	}
	val, ok := in.Var(name, nil)
	if !ok {
		return Error
	}
	return in.setResult(Normal, val.Dup())
}

// cmdGlobal implements `global name...` (spec §4.5).
func cmdGlobal(in *Interp, args []value.Value, _ any) FlowCode {
	if len(args) < 2 {
		return argError(in, "global")
	}
	for _, a := range args[1:] {
		if !in.Global(a.String()) {
			return Error
		}
	}
	return in.setResult(Normal, value.Value{})
}

// cmdSubst implements `subst s`: substitute s once as a single span.
func cmdSubst(in *Interp, args []value.Value, _ any) FlowCode {
	return in.subst(args[1].Bytes())
}

// procUserData is the user-data a `proc` registration carries: its
// parameter names and body, duplicated at definition time (spec §4.6,
// "for user procedures this is a duplicated argument list").
type procUserData struct {
	params []string
	body   value.Value
}

// cmdProc implements `proc name params body` (spec §4.8): registers a
// variadic handler. On call it pushes a fresh frame, binds each formal to
// the matching positional actual (missing actuals become empty strings),
// evaluates the body in that frame, and tears the frame down; RETURN
// collapses to NORMAL at the frame boundary.
func cmdProc(in *Interp, args []value.Value, _ any) FlowCode {
	name := args[1].String()
	paramsList := args[2]
	body := args[3].Dup()

	var params []string
	n := value.ListCount(paramsList)
	for i := 0; i < n; i++ {
		w, ok := value.ListAt(paramsList, i)
		if !ok {
			return in.fail(Syntax, "malformed parameter list for proc %q", name)
		}
		params = append(params, w.String())
	}

	ud := &procUserData{params: params, body: body}
	in.Register(name, callProc, 0, ud)
	return in.setResult(Normal, value.Value{})
}

func callProc(in *Interp, args []value.Value, user any) FlowCode {
	ud := user.(*procUserData)
	in.pushFrame()
	defer in.popFrame()

	for i, p := range ud.params {
		var v value.Value
		if i+1 < len(args) {
			v = args[i+1].Dup()
		}
		if _, ok := in.Var(p, &v); !ok {
			return Error
		}
	}

	flow := in.evalBuffer(ud.body.Bytes())
	if flow == Return {
		return Normal
	}
	return flow
}

// cmdIf implements `if cond body ?then? ?elseif cond body?* ?else body?`
// (spec §4.8).
func cmdIf(in *Interp, args []value.Value, _ any) FlowCode {
	rest := args[1:]
	first := true
	for len(rest) > 0 {
		if !first {
			switch rest[0].String() {
			case "elseif":
				rest = rest[1:]
			case "else":
				if len(rest) < 2 {
					return argError(in, "if")
				}
				return in.evalBuffer(rest[1].Bytes())
			}
		}
		first = false

		if len(rest) < 2 {
			return argError(in, "if")
		}
		cond, body := rest[0], rest[1]
		rest = rest[2:]

		// A literal "then" word directly after a cond/body pair is
		// skipped.
		if len(rest) > 0 && rest[0].String() == "then" {
			rest = rest[1:]
		}

		n, flow := in.evalCondition(cond)
		if flow == Error {
			return Error
		}
		if n != 0 {
			return in.evalBuffer(body.Bytes())
		}

		// Two consecutive blocks with no then/elseif/else keyword are an
		// implicit elseif pair: loop continues without consuming a
		// keyword, `first` already false handles that on next iteration.
	}
	return in.setResult(Normal, value.Value{})
}

// evalCondition evaluates cond as an `expr` and returns its integer value.
func (in *Interp) evalCondition(cond value.Value) (int64, FlowCode) {
	flow := evalExpr(in, cond.Bytes())
	if flow == Error {
		return 0, Error
	}
	n, ok := in.result.IntOf()
	if !ok {
		return 0, in.fail(ExprErr, "condition did not evaluate to an integer")
	}
	return n, Normal
}

// cmdWhile implements `while cond body` (spec §4.8).
func cmdWhile(in *Interp, args []value.Value, _ any) FlowCode {
	cond, body := args[1], args[2]
	for {
		n, flow := in.evalCondition(cond)
		if flow == Error {
			return Error
		}
		if n == 0 {
			return in.setResult(Normal, value.Value{})
		}
		flow = in.evalBuffer(body.Bytes())
		switch flow {
		case Break:
			return in.setResult(Normal, value.Value{})
		case Return, Error:
			return flow
		}
		// Again (continue) and Normal both loop again.
	}
}

// cmdFor implements `for {init} {cond} {next} {body}` (SPEC_FULL §4,
// desugared onto the same flow-code machinery as while).
func cmdFor(in *Interp, args []value.Value, _ any) FlowCode {
	initS, cond, next, body := args[1], args[2], args[3], args[4]
	if flow := in.evalBuffer(initS.Bytes()); flow == Error {
		return Error
	}
	for {
		n, flow := in.evalCondition(cond)
		if flow == Error {
			return Error
		}
		if n == 0 {
			return in.setResult(Normal, value.Value{})
		}
		flow = in.evalBuffer(body.Bytes())
		switch flow {
		case Break:
			return in.setResult(Normal, value.Value{})
		case Return, Error:
			return flow
		}
		if flow := in.evalBuffer(next.Bytes()); flow == Error {
			return Error
		}
	}
}

// cmdReturn implements `return ?v?`.
func cmdReturn(in *Interp, args []value.Value, _ any) FlowCode {
	var v value.Value
	if len(args) > 1 {
		v = args[1].Dup()
	}
	return in.setResult(Return, v)
}

// cmdBreak implements `break`.
func cmdBreak(in *Interp, _ []value.Value, _ any) FlowCode {
	return in.setResult(Break, value.Value{})
}

// cmdContinue implements `continue`.
func cmdContinue(in *Interp, _ []value.Value, _ any) FlowCode {
	return in.setResult(Again, value.Value{})
}

// cmdIncr implements `incr name ?by?`.
func cmdIncr(in *Interp, args []value.Value, _ any) FlowCode {
	if len(args) != 2 && len(args) != 3 {
		return argError(in, "incr")
	}
	name := args[1].String()
	by := int64(1)
	if len(args) == 3 {
		n, ok := args[2].IntOf()
		if !ok {
			return in.fail(Param, "incr: %q is not an integer", args[2].String())
		}
		by = n
	}
	cur, ok := in.Var(name, nil)
	if !ok {
		return Error
	}
	n, ok := cur.IntOf()
	if !ok {
		n = 0
	}
	sum := value.FromInt(n + by)
	val, ok := in.Var(name, &sum)
	if !ok {
		return Error
	}
	return in.setResult(Normal, val.Dup())
}

// cmdAppend implements `append name value...` (SPEC_FULL §4): appends each
// value to the named variable in place.
func cmdAppend(in *Interp, args []value.Value, _ any) FlowCode {
	if len(args) < 3 {
		return argError(in, "append")
	}
	name := args[1].String()
	cur, ok := in.Var(name, nil)
	if !ok {
		return Error
	}
	acc := cur.Dup()
	for _, a := range args[2:] {
		acc = value.Append(acc, a.Dup())
	}
	val, ok := in.Var(name, &acc)
	if !ok {
		return Error
	}
	return in.setResult(Normal, val.Dup())
}

// cmdList implements `list a b c...`: builds a textual list from its
// arguments (SPEC_FULL §4).
func cmdList(in *Interp, args []value.Value, _ any) FlowCode {
	var list value.Value
	for _, a := range args[1:] {
		list = value.ListAppend(list, a.Dup())
	}
	return in.setResult(Normal, list)
}

// cmdConcat implements `concat a b...`: joins its arguments as one textual
// list, splicing rather than nesting each argument's own elements in.
func cmdConcat(in *Interp, args []value.Value, _ any) FlowCode {
	var list value.Value
	for _, a := range args[1:] {
		n := value.ListCount(a)
		for i := 0; i < n; i++ {
			w, ok := value.ListAt(a, i)
			if !ok {
				return in.fail(Syntax, "concat: malformed list argument")
			}
			list = value.ListAppend(list, w)
		}
	}
	return in.setResult(Normal, list)
}

// cmdLlength implements `llength list`.
func cmdLlength(in *Interp, args []value.Value, _ any) FlowCode {
	return in.setResult(Normal, value.FromInt(int64(value.ListCount(args[1]))))
}

// cmdScan implements `scan str fmt ?vars?` (spec §4.8): a restricted
// sscanf supporting %c, %d, %i, %x with an optional field-width digit run
// between % and the conversion; matches are assigned to successive
// positional variable names. Result is the number of conversions.
func cmdScan(in *Interp, args []value.Value, _ any) FlowCode {
	if len(args) < 3 {
		return argError(in, "scan")
	}
	str := args[1].Bytes()
	format := args[2].Bytes()
	varNames := args[3:]

	matched := 0
	si := 0
	vi := 0
	for fi := 0; fi < len(format); fi++ {
		if format[fi] != '%' {
			if si < len(str) && str[si] == format[fi] {
				si++
			}
			continue
		}
		fi++
		if fi >= len(format) {
			break
		}
		width := 0
		for fi < len(format) && format[fi] >= '0' && format[fi] <= '9' {
			width = width*10 + int(format[fi]-'0')
			fi++
		}
		if width > 32 {
			width = 32
		}
		if fi >= len(format) {
			break
		}
		conv := format[fi]

		for si < len(str) && isSpaceByte(str[si]) {
			si++
		}

		start := si
		limit := len(str)
		if width > 0 && start+width < limit {
			limit = start + width
		}
		var n int64
		var ok bool
		switch conv {
		case 'c':
			if si < len(str) {
				n, ok = int64(str[si]), true
				si++
			}
		case 'd':
			n, ok, si = scanInt(str, si, limit, 10)
		case 'i':
			n, ok, si = scanInt(str, si, limit, 0)
		case 'x':
			n, ok, si = scanInt(str, si, limit, 16)
		}
		if !ok {
			break
		}
		if vi < len(varNames) {
			v := value.FromInt(n)
			if _, ok := in.Var(varNames[vi].String(), &v); !ok {
				return Error
			}
			vi++
		}
		matched++
	}
	return in.setResult(Normal, value.FromInt(int64(matched)))
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// scanInt parses an integer of the given base (0 = auto-detect 0x prefix)
// starting at s[i:limit], returning the parsed value, whether anything
// matched, and the new scan position.
func scanInt(s []byte, i, limit int, base int) (int64, bool, int) {
	start := i
	neg := false
	if i < limit && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	if base == 0 {
		base = 10
		if i+1 < limit && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
			base = 16
			i += 2
		}
	} else if base == 16 && i+1 < limit && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
		i += 2
	}
	digitsStart := i
	var n int64
	for i < limit {
		c := s[i]
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		default:
			goto done
		}
		if d >= int64(base) {
			break
		}
		n = n*int64(base) + d
		i++
	}
done:
	if i == digitsStart {
		return 0, false, start
	}
	if neg {
		n = -n
	}
	return n, true, i
}

// cmdRelational returns a handler for a bare relational command (`<`,
// `>`, `<=`, `>=`, `==`, `!=`), adapting onto the expr evaluator's
// relational productions rather than duplicating comparison logic
// (SPEC_FULL §4).
func cmdRelational(op string) Handler {
	return func(in *Interp, args []value.Value, _ any) FlowCode {
		expr := value.Append(value.Append(args[1].Dup(), value.FromString(" "+op+" ")), args[2].Dup())
		return evalExpr(in, expr.Bytes())
	}
}
