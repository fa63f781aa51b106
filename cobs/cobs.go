// Package cobs implements Consistent Overhead Byte Stuffing: encoding a
// byte buffer into a zero-free framing and decoding it back. It is an
// ancillary utility independent of interpreter state (spec §6, "COBS
// helper utility"), grounded on the original source's cobsEncode/
// cobsDecode in original_source/tcl.c.
package cobs

import "github.com/pkg/errors"

// MaxBlock is the largest run of non-zero bytes a single length code can
// describe before a forced code-group boundary is inserted.
const MaxBlock = 254

// Encode returns the COBS-framed encoding of src; the result contains no
// zero bytes except as the caller's own frame delimiter (not appended
// here). The original source allocated its output buffer at len(src),
// which undercounts whenever src contains long non-zero runs or is mostly
// zero-free (spec §9, "COBS helper bug to resolve"); this implementation
// allocates the correct worst case, len(src) + len(src)/254 + 2.
func Encode(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/MaxBlock+2)

	codeIdx := 0
	out = append(out, 0) // placeholder for the first code byte
	code := byte(1)

	for _, b := range src {
		if b == 0 {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
			continue
		}
		out = append(out, b)
		code++
		if code == MaxBlock+1 {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
		}
	}
	out[codeIdx] = code
	return out
}

// Decode reverses Encode. It returns an error if enc is malformed (a
// length code pointing past the end of the buffer).
func Decode(enc []byte) ([]byte, error) {
	out := make([]byte, 0, len(enc))
	i := 0
	for i < len(enc) {
		code := enc[i]
		if code == 0 {
			return nil, errors.New("cobs: zero byte in encoded stream")
		}
		i++
		end := i + int(code) - 1
		if end > len(enc) {
			return nil, errors.New("cobs: truncated block")
		}
		out = append(out, enc[i:end]...)
		i = end
		if code <= MaxBlock && i < len(enc) {
			out = append(out, 0)
		}
	}
	return out, nil
}
