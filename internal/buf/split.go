// Package buf contains bounds-checked splitting and endian-safe decoding
// helpers. It is the only mechanism the parsing layers use to advance through
// a buffer, and it knows nothing about descriptor semantics.
package buf

import (
	"fmt"
	"math"
)

// ErrShortBuffer indicates the buffer lacked the bytes requested from it.
var ErrShortBuffer = fmt.Errorf("buf: short buffer")

// Split returns the first n bytes of b and the remainder. It fails when n is
// negative or exceeds len(b). Both returned slices alias b; nothing is copied.
func Split(b []byte, n int) (head, tail []byte, err error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("%w (negative length %d)", ErrShortBuffer, n)
	}
	if n > len(b) {
		return nil, nil, fmt.Errorf("%w (need %d, have %d)", ErrShortBuffer, n, len(b))
	}
	return b[:n:n], b[n:], nil
}

// SplitU64 is Split for lengths decoded from the wire as uint64. Lengths that
// do not fit in int are rejected before any slicing is attempted, so this
// never wraps on 32-bit hosts.
func SplitU64(b []byte, n uint64) (head, tail []byte, err error) {
	if n > math.MaxInt {
		return nil, nil, fmt.Errorf("%w (length %d exceeds int range)", ErrShortBuffer, n)
	}
	return Split(b, int(n))
}

// AddU64 adds a and b, reporting ok = false when the sum would wrap.
func AddU64(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// FitsInt reports whether a uint64 length can be used as a slice index.
func FitsInt(n uint64) bool {
	return n <= math.MaxInt
}
