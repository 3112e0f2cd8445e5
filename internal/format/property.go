package format

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// PropertyHeader models a property descriptor header.
//
// Layout (big-endian, after the generic prefix):
//
//	0x10  u64  key_num_bytes
//	0x18  u64  value_num_bytes
//
// Body: key | 0x00 | value | 0x00 | padding to 8 bytes.
type PropertyHeader struct {
	Prefix
	KeyNumBytes   uint64
	ValueNumBytes uint64
}

// HeaderSize implements Header.
func (h *PropertyHeader) HeaderSize() int { return PropertyHeaderSize }

// ValidateAndByteswap implements Header. The key and value lengths are
// checked to fit, with their terminators, inside the declared descriptor
// extent before the receiver is populated.
func (h *PropertyHeader) ValidateAndByteswap(raw, contents []byte) error {
	p, err := validatePrefix(raw, TagProperty)
	if err != nil {
		return fmt.Errorf("property: %w", err)
	}
	key, ok := buf.U64BE(raw, PrefixSize)
	if !ok {
		return fmt.Errorf("property key length: %w", ErrTruncated)
	}
	value, ok := buf.U64BE(raw, PrefixSize+8)
	if !ok {
		return fmt.Errorf("property value length: %w", ErrTruncated)
	}
	// Two NUL terminators ride along with the segments.
	if err := checkBodyFits(p, len(contents), PropertyHeaderSize-PrefixSize, key, value, 2); err != nil {
		return fmt.Errorf("property: %w", err)
	}
	h.Prefix = p
	h.KeyNumBytes = key
	h.ValueNumBytes = value
	return nil
}
