package entity

import "strings"

// Code is an ordered digit sequence. It is used for both the secret and a guess.
type Code []int

// String concatenates the digits, e.g. [1 2 3 4] -> "1234". This is also the wire encoding of a guess.
func (that Code) String() string {
	var b strings.Builder
	b.Grow(len(that))

	for _, digit := range that {
		b.WriteByte(byte('0' + digit))
	}

	return b.String()
}

// Clone returns a working copy that can be mutated freely.
func (that Code) Clone() Code {
	out := make(Code, len(that))
	copy(out, that)
	return out
}
