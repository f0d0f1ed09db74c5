package venn

import (
	"fmt"
	"iter"
	"strings"
)

// Characters used to render a Key as text. The same alphabet names the
// section placeholders of the diagram templates.
const (
	In  = 'I'
	Out = 'O'
)

// Key is a membership vector indexed by input position. Key[i] is true when a
// section's elements must belong to input i and false when they must not.
type Key []bool

// keyAt builds the key for the idx-th combination of n inputs. The first
// input is the most significant bit so it varies slowest.
func keyAt(idx uint64, n int) Key {
	key := make(Key, n)
	for i := range key {
		key[i] = idx>>(n-1-i)&1 == 1
	}
	return key
}

// Keys returns the non-empty keys for n inputs in enumeration order. It
// yields nothing when n is outside 1..MaxSets.
func Keys(n int) iter.Seq[Key] {
	return func(yield func(Key) bool) {
		if n < 1 || n > MaxSets {
			return
		}

		last := uint64(1)<<n - 1
		for idx := uint64(1); idx <= last; idx++ {
			if !yield(keyAt(idx, n)) {
				return
			}
		}
	}
}

// String renders the key over the In/Out alphabet, e.g. "IOI".
func (k Key) String() string {
	var sb strings.Builder
	sb.Grow(len(k))

	for _, in := range k {
		if in {
			sb.WriteByte(In)
		} else {
			sb.WriteByte(Out)
		}
	}

	return sb.String()
}

// Bits renders the key as binary digits, e.g. "101".
func (k Key) Bits() string {
	return strings.Map(func(r rune) rune {
		if r == In {
			return '1'
		}
		return '0'
	}, k.String())
}

// Ones returns the number of inputs the section must belong to.
func (k Key) Ones() int {
	n := 0
	for _, in := range k {
		if in {
			n++
		}
	}
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKey parses a key rendered by Key.String. Binary digits are accepted
// too.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return nil, &ValidationError{Reason: "empty key"}
	}

	key := make(Key, 0, len(s))

	for i, r := range s {
		switch r {
		case In, '1':
			key = append(key, true)
		case Out, '0':
			key = append(key, false)
		default:
			return nil, &ValidationError{Index: i, Reason: fmt.Sprintf("invalid key character %q", r)}
		}
	}

	return key, nil
}
