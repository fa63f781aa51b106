package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildList(words ...string) Value {
	var l Value
	for _, w := range words {
		l = ListAppend(l, FromString(w))
	}
	return l
}

func TestListRoundTrip(t *testing.T) {
	words := []string{"alpha", "beta gamma", "delta"}
	var l Value
	for _, w := range words {
		l = ListAppend(l, FromString(w))
	}
	require.Equal(t, len(words), ListCount(l))
	for i, w := range words {
		got, ok := ListAt(l, i)
		require.True(t, ok)
		assert.Equal(t, w, got.String())
	}
}

func TestListAppendBracesWhenNeeded(t *testing.T) {
	l := buildList("plain", "has space")
	assert.Equal(t, "plain {has space}", l.String())
}

func TestListAppendBracesEmptyWord(t *testing.T) {
	l := ListAppend(Value{}, FromString(""))
	assert.Equal(t, "{}", l.String())
}

func TestListCountEmpty(t *testing.T) {
	assert.Equal(t, 0, ListCount(Value{}))
}

func TestListBinaryTransparency(t *testing.T) {
	payload := []byte("bin\x00ary")
	bv := New(payload, true)
	l := ListAppend(FromString("prefix"), bv)
	n := ListCount(l)
	require.Equal(t, 2, n)
	got, ok := ListAt(l, 1)
	require.True(t, ok)
	assert.True(t, got.IsBinaryEncoded())
	assert.Equal(t, string(payload), got.String())
}

func TestListSizeSkipsBinarySpanByLength(t *testing.T) {
	bv := New([]byte("abc"), true)
	l := ListAppend(FromString("x"), bv)
	assert.Equal(t, ListSize(l), len(l.Bytes()))
}
