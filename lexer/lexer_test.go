package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, script string) []Token {
	t.Helper()
	buf := []byte(script)
	var toks []Token
	var flags Flags
	off := 0
	for off <= len(buf) {
		tok, nf := Next(buf[off:], flags)
		flags = nf
		abs := Token{Kind: tok.Kind, Start: off + tok.Start, End: off + tok.End}
		toks = append(toks, abs)
		if tok.Kind == CMD && tok.Start == tok.End && off == len(buf) {
			break
		}
		adv := tok.End
		if adv == tok.Start {
			adv++
		}
		off += adv
	}
	return toks
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerSimpleCommand(t *testing.T) {
	toks := lexAll(t, "set a 10\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, []Kind{WORD, WORD, WORD, CMD, CMD}, kinds(toks))
}

func TestLexerSemicolonEndsCommand(t *testing.T) {
	toks := lexAll(t, "set a 1;set b 2")
	var cmdCount int
	for _, k := range kinds(toks) {
		if k == CMD {
			cmdCount++
		}
	}
	assert.GreaterOrEqual(t, cmdCount, 2)
}

func TestLexerCommentAtStartOfCommand(t *testing.T) {
	// The comment consumes up to (not including) its trailing newline;
	// that newline then lexes as its own CMD token (an empty command),
	// after which "set a 1" lexes normally.
	toks := lexAll(t, "# a comment\nset a 1\n")
	assert.Equal(t, []Kind{CMD, WORD, WORD, WORD, CMD, CMD}, kinds(toks))
}

func TestLexerHashMidCommandIsLiteral(t *testing.T) {
	toks := lexAll(t, "set a #notacomment\n")
	assert.Equal(t, WORD, toks[2].Kind)
	buf := []byte("set a #notacomment\n")
	word := string(buf[toks[2].Start:toks[2].End])
	assert.Equal(t, "#notacomment", word)
}

func TestLexerBraceLiteral(t *testing.T) {
	toks := lexAll(t, "set a {hello world}\n")
	require.Len(t, toks, 5)
	assert.Equal(t, WORD, toks[2].Kind)
}

func TestLexerUnbalancedBraceIsError(t *testing.T) {
	toks := lexAll(t, "set a {hello\n")
	var sawErr bool
	for _, tok := range toks {
		if tok.Kind == ERROR {
			sawErr = true
		}
	}
	assert.True(t, sawErr)
}

func TestLexerDollarVariable(t *testing.T) {
	toks := lexAll(t, "set a $b\n")
	require.Len(t, toks, 5)
	assert.Equal(t, WORD, toks[2].Kind)
}

func TestLexerBareBracketIsError(t *testing.T) {
	tok, _ := Next([]byte("]"), 0)
	assert.Equal(t, ERROR, tok.Kind)
}

func TestLexerQuoteStringWithEmbeddedWord(t *testing.T) {
	toks := lexAll(t, `set a "hello world"`+"\n")
	var sawPart bool
	for _, tok := range toks {
		if tok.Kind == PART {
			sawPart = true
		}
	}
	assert.True(t, sawPart)
}

func TestLexerBinarySentinelOpaqueInBraces(t *testing.T) {
	// A binary-sentinel token embedded inside a {...} body must not
	// confuse brace balancing, even though its payload contains a raw
	// '}' byte (spec §8, "Binary-sentinel opacity").
	payload := []byte{Sentinel, 1, 0, '}', 0}
	script := append([]byte{'{'}, payload...)
	script = append(script, '}')
	tok, _ := Next(script, 0)
	assert.Equal(t, WORD, tok.Kind)
	assert.Equal(t, len(script), tok.End)
}

func TestLexerDeterminism(t *testing.T) {
	buf := []byte("set a [expr 1+2]\n")
	tok1, f1 := Next(buf, 0)
	tok2, f2 := Next(buf, 0)
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, f1, f2)
}
