package descriptor

import (
	"fmt"
	"unicode/utf8"

	"github.com/avbkit/avbkit/internal/format"
)

// Property is a view over a property descriptor: a named value baked into
// the image. All fields alias the buffer the descriptor was parsed from.
type Property struct {
	// Key is always UTF-8.
	Key string
	// KeyWithNul is the same content as Key, but NUL terminated.
	KeyWithNul []byte
	// ValueWithNul holds arbitrary value bytes, trailing NUL included.
	ValueWithNul []byte
}

// Tag implements Descriptor.
func (Property) Tag() Tag { return TagProperty }

// Value returns the value bytes without the trailing NUL.
func (p Property) Value() []byte {
	return p.ValueWithNul[:len(p.ValueWithNul)-1]
}

// ParseProperty extracts a Property from the given descriptor contents,
// header through body, in raw big-endian wire format.
//
// The body is key | NUL | value | NUL | padding. The validator guarantees
// both segments fit; the terminators are still re-checked here. Keys with
// embedded NUL bytes cannot be represented by the wire format and are
// rejected, which is acceptable because producers never emit such keys.
func ParseProperty(contents []byte) (Property, error) {
	d, err := parseDescriptor[format.PropertyHeader](contents)
	if err != nil {
		return Property{}, fmt.Errorf("property: %w", err)
	}

	keyWithNul, remainder, err := splitWithNul(d.body, d.header.KeyNumBytes)
	if err != nil {
		return Property{}, fmt.Errorf("property key: %w", err)
	}
	key, err := cutNul(keyWithNul)
	if err != nil {
		return Property{}, fmt.Errorf("property key: %w", err)
	}
	if !utf8.Valid(key) {
		return Property{}, fmt.Errorf("property key: %w", ErrInvalidUTF8)
	}

	valueWithNul, _, err := splitWithNul(remainder, d.header.ValueNumBytes)
	if err != nil {
		return Property{}, fmt.Errorf("property value: %w", err)
	}
	// The validator is expected to guarantee the terminator; re-check anyway.
	if valueWithNul[len(valueWithNul)-1] != 0 {
		return Property{}, fmt.Errorf("property value: %w (missing NUL terminator)",
			ErrInvalidContents)
	}

	return Property{
		Key:          bytesAsString(key),
		KeyWithNul:   keyWithNul,
		ValueWithNul: valueWithNul,
	}, nil
}
