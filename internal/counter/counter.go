// Package counter implements 128-bit big-endian CTR counter arithmetic.
//
// The whole 16-byte IV is one counter with no nonce prefix. Overflow past the
// most significant byte wraps silently.
package counter

import (
	"errors"
	"fmt"
)

// Size is the counter width in bytes.
const Size = 16

// ErrSize is returned when a counter is built from a slice that is not 16 bytes long.
var ErrSize = errors.New("counter must be 16 bytes")

// Counter is a big-endian unsigned 128-bit integer.
type Counter [Size]byte

// FromBytes copies b into a Counter.
func FromBytes(b []byte) (Counter, error) {
	var c Counter

	if len(b) != Size {
		return c, fmt.Errorf("%w: got %d", ErrSize, len(b))
	}

	copy(c[:], b)

	return c, nil
}

// Increment returns c + delta modulo 2^128.
func Increment(c Counter, delta uint64) Counter {
	carry := delta

	// Add one byte of the carry at a time so the sum never overflows uint64.
	for i := Size - 1; i >= 0 && carry != 0; i-- {
		sum := uint64(c[i]) + carry&0xff
		c[i] = byte(sum)
		carry = carry>>8 + sum>>8
	}

	return c
}

// Derive returns the counter block for the given absolute block index.
// It depends only on its arguments, so blocks can be computed in any order.
func Derive(base Counter, index uint64) Counter {
	return Increment(base, index)
}
