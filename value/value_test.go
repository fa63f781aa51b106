package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTextRoundTrip(t *testing.T) {
	v := FromString("hello")
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, "hello", v.String())
	assert.False(t, v.IsBinaryEncoded())
}

func TestValuePromotesOnEmbeddedNul(t *testing.T) {
	v := New([]byte("a\x00b"), false)
	assert.True(t, v.IsBinaryEncoded())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []byte("a\x00b"), v.Bytes())
}

func TestValueForceBinary(t *testing.T) {
	v := New([]byte("plain"), true)
	assert.True(t, v.IsBinaryEncoded())
	assert.Equal(t, "plain", v.String())
}

func TestValueAppendStaysBinaryOnce(t *testing.T) {
	a := New([]byte("x\x00y"), false)
	b := FromString("z")
	c := Append(a, b)
	assert.True(t, c.IsBinaryEncoded())
	assert.Equal(t, "x\x00yz", c.String())
}

func TestValueAppendPlainStaysPlain(t *testing.T) {
	a := FromString("foo")
	b := FromString("bar")
	c := Append(a, b)
	assert.False(t, c.IsBinaryEncoded())
	assert.Equal(t, "foobar", c.String())
}

func TestValueIntOf(t *testing.T) {
	cases := map[string]int64{
		"10":    10,
		" 10 ":  10,
		"-10":   -10,
		"0x1F":  31,
		"0X1f":  31,
		"  -5":  -5,
	}
	for s, want := range cases {
		v := FromString(s)
		n, ok := v.IntOf()
		require.True(t, ok, "expected %q to parse", s)
		assert.Equal(t, want, n)
	}
}

func TestValueIntOfRejectsTrailingGarbage(t *testing.T) {
	_, ok := FromString("10abc").IntOf()
	assert.False(t, ok)
}

func TestValueClassOf(t *testing.T) {
	assert.Equal(t, Empty, ClassOf(Value{}))
	assert.Equal(t, Int, ClassOf(FromString("42")))
	assert.Equal(t, String, ClassOf(FromString("abc")))
	assert.Equal(t, Blob, ClassOf(New([]byte("a\x00b"), false)))
}

func TestValueMaxBinaryPayload(t *testing.T) {
	big := make([]byte, MaxBinary+100)
	v := New(big, true)
	assert.Equal(t, MaxBinary, v.Len())
}
