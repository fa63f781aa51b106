package value

import "monogrammedchalk.com/tcl/lexer"

// List operations treat a Value's payload as a sequence of
// whitespace-separated words, each brace-quoted when it is empty or
// contains whitespace or a lexer-special byte. The textual form is
// always parseable by package lexer back into the same sequence of words;
// a binary blob embedded in a list carries its sentinel+length header
// verbatim so the lexer's balanced-brace/sentinel-skip rules keep it
// opaque to word splitting (spec §4.3).

// listSpecial reports whether c must force its containing word to be
// brace-quoted when appended to a list.
func listSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '$', '[', ']', '"', '{', '}', ';', 0:
		return true
	}
	return false
}

func needsBraces(item Value) bool {
	if item.IsBinaryEncoded() {
		return false // embedded verbatim, not brace-wrapped
	}
	b := item.Bytes()
	if len(b) == 0 {
		return true
	}
	for _, c := range b {
		if listSpecial(c) {
			return true
		}
	}
	return false
}

// ListAppend returns a new list Value with item appended as the next
// word, adding a single space separator if the list is non-empty.
func ListAppend(list, item Value) Value {
	var word []byte
	switch {
	case item.IsBinaryEncoded():
		word = item.raw // embed the sentinel header verbatim
	case needsBraces(item):
		b := item.Bytes()
		word = make([]byte, 0, len(b)+2)
		word = append(word, '{')
		word = append(word, b...)
		word = append(word, '}')
	default:
		word = item.Bytes()
	}

	if list.Len() == 0 && !list.IsBinaryEncoded() {
		return New(word, false)
	}
	buf := make([]byte, 0, list.Len()+1+len(word))
	buf = append(buf, list.Bytes()...)
	buf = append(buf, ' ')
	buf = append(buf, word...)
	return New(buf, list.IsBinaryEncoded())
}

// ListCount drives the lexer over list's payload, counting WORD tokens.
func ListCount(list Value) int {
	payload := appendNul(list.Bytes())
	count := 0
	var flags lexer.Flags
	off := 0
	for off < len(payload) {
		tok, nf := lexer.Next(payload[off:], flags)
		flags = nf
		if tok.Kind == lexer.WORD {
			count++
		}
		if tok.Kind == lexer.CMD {
			break
		}
		if tok.End == tok.Start && tok.Kind != lexer.WORD {
			off += tok.End + 1
			continue
		}
		off += tok.End
	}
	return count
}

// appendNul appends one past-the-end byte (spec §4.3: "list's payload plus
// one past-the-end byte") so the lexer can observe a clean CMD/end token.
func appendNul(b []byte) []byte {
	buf := make([]byte, len(b)+1)
	copy(buf, b)
	return buf
}

// ListAt returns a fresh Value holding the i-th word (0-based). Outer
// braces are stripped if the word is brace-wrapped.
func ListAt(list Value, i int) (Value, bool) {
	payload := appendNul(list.Bytes())
	idx := 0
	var flags lexer.Flags
	off := 0
	var cur []byte
	haveCur := false

	for off < len(payload) {
		tok, nf := lexer.Next(payload[off:], flags)
		flags = nf
		switch tok.Kind {
		case lexer.PART:
			span := payload[off+tok.Start : off+tok.End]
			cur = append(cur, stripOuterBraceIfAlone(span)...)
			haveCur = true
		case lexer.WORD:
			span := payload[off+tok.Start : off+tok.End]
			if !haveCur {
				cur = stripOuterBraceIfAlone(span)
			} else {
				cur = append(cur, span...)
			}
			if idx == i {
				return New(cur, false), true
			}
			idx++
			cur = nil
			haveCur = false
		case lexer.CMD:
			return Value{}, false
		case lexer.ERROR:
			return Value{}, false
		}
		adv := tok.End
		if adv == 0 {
			adv = 1
		}
		off += adv
	}
	return Value{}, false
}

// stripOuterBraceIfAlone strips a single layer of `{...}` wrapping when
// the entire span is one brace-delimited word (the common case for a
// ListAt result); partial spans (PART tokens glued to a dollar/bracket
// substitution) are returned unchanged.
func stripOuterBraceIfAlone(span []byte) []byte {
	if len(span) >= 2 && span[0] == '{' && span[len(span)-1] == '}' {
		return span[1 : len(span)-1]
	}
	return span
}

// ListSize returns the byte length of list's textual form, skipping over
// binary spans by their embedded length field rather than scanning byte
// by byte into them.
func ListSize(list Value) int {
	b := list.Bytes()
	total := 0
	for i := 0; i < len(b); {
		if b[i] == Sentinel && i+3 <= len(b) {
			length := int(b[i+1]) | int(b[i+2])<<8
			span := 3 + length + 1 // header + payload + convenience NUL
			if i+span > len(b) {
				span = len(b) - i
			}
			total += span
			i += span
			continue
		}
		total++
		i++
	}
	return total
}
