package format

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// Prefix is the generic 16-byte header present at the start of every
// descriptor: the type tag plus the number of bytes that follow the prefix.
type Prefix struct {
	Tag               uint64
	NumBytesFollowing uint64
}

// Header is the contract every descriptor header type satisfies. Binding the
// validate-and-byteswap routine to the header type itself means the wrong
// validator for a header is impossible to express at the call site.
type Header interface {
	// HeaderSize returns the fixed wire size of the header.
	HeaderSize() int

	// ValidateAndByteswap decodes the big-endian header bytes in raw into
	// host-order fields on the receiver and checks that every declared
	// segment length is internally consistent and fits within contents.
	// contents is the full descriptor range, header included. The receiver
	// must not be trusted unless the returned error is nil.
	ValidateAndByteswap(raw, contents []byte) error
}

// ParsePrefix decodes the generic prefix at the start of raw and enforces the
// 8-byte alignment rule on num_bytes_following.
func ParsePrefix(raw []byte) (Prefix, error) {
	tag, ok := buf.U64BE(raw, 0)
	if !ok {
		return Prefix{}, fmt.Errorf("prefix tag: %w", ErrTruncated)
	}
	nbf, ok := buf.U64BE(raw, 8)
	if !ok {
		return Prefix{}, fmt.Errorf("prefix length: %w", ErrTruncated)
	}
	if nbf%DescriptorAlignment != 0 {
		return Prefix{}, fmt.Errorf("num_bytes_following %d: %w", nbf, ErrMisaligned)
	}
	return Prefix{Tag: tag, NumBytesFollowing: nbf}, nil
}

// TotalSize returns the full descriptor size (prefix included) declared by
// the prefix, or an error when the declared size wraps or cannot index a
// slice on this host.
func (p Prefix) TotalSize() (int, error) {
	total, ok := buf.AddU64(PrefixSize, p.NumBytesFollowing)
	if !ok || !buf.FitsInt(total) {
		return 0, fmt.Errorf("descriptor size %d: %w", p.NumBytesFollowing, ErrLengthMismatch)
	}
	return int(total), nil
}

// validatePrefix decodes the prefix common to every typed header and checks
// the tag against the header type's own.
func validatePrefix(raw []byte, wantTag uint64) (Prefix, error) {
	p, err := ParsePrefix(raw)
	if err != nil {
		return Prefix{}, err
	}
	if p.Tag != wantTag {
		return Prefix{}, fmt.Errorf("tag %d, want %d: %w", p.Tag, wantTag, ErrTagMismatch)
	}
	return p, nil
}

// checkBodyFits verifies the body segments declared by a header against both
// the declared descriptor extent and the buffer actually supplied. fixed is
// the header size past the prefix; segments are the variable segment lengths
// (terminators included where the format has them). Trailing padding is not
// part of the requirement, so a buffer truncated inside its padding still
// passes. Every addition is overflow-checked.
func checkBodyFits(p Prefix, contentsLen int, fixed uint64, segments ...uint64) error {
	need := fixed
	for _, s := range segments {
		var ok bool
		need, ok = buf.AddU64(need, s)
		if !ok {
			return fmt.Errorf("segment lengths wrap: %w", ErrLengthMismatch)
		}
	}
	if need > p.NumBytesFollowing {
		return fmt.Errorf("segments need %d of %d declared bytes: %w",
			need, p.NumBytesFollowing, ErrLengthMismatch)
	}
	total, ok := buf.AddU64(PrefixSize, need)
	if !ok || !buf.FitsInt(total) {
		return fmt.Errorf("segment lengths wrap: %w", ErrLengthMismatch)
	}
	if int(total) > contentsLen {
		return fmt.Errorf("segments need %d bytes, have %d: %w",
			total, contentsLen, ErrTruncated)
	}
	return nil
}
