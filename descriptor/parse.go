package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"unsafe"

	"github.com/avbkit/avbkit/internal/buf"
	"github.com/avbkit/avbkit/internal/format"
)

// header constrains a type parameter to pointer-to-header types carrying
// their own validate-and-byteswap routine. The routine is bound to the header
// type itself, so pairing a header with the wrong validator cannot be
// written.
type header[H any] interface {
	*H
	format.Header
}

// parsed is a validated header plus the body bytes that follow it. body
// aliases the input buffer.
type parsed[H any] struct {
	header H
	body   []byte
}

// parseDescriptor slices the fixed header off contents, runs the header
// type's validate-and-byteswap over the full range, and returns the
// host-order header plus the remaining body. On success every length field
// in the header is internally consistent and fits within contents; callers
// may slice by those lengths without re-deriving bounds.
func parseDescriptor[H any, PH header[H]](contents []byte) (parsed[H], error) {
	ph := PH(new(H))
	raw, body, err := buf.Split(contents, ph.HeaderSize())
	if err != nil {
		return parsed[H]{}, fmt.Errorf("%w (have %d, need %d)",
			ErrInvalidHeader, len(contents), ph.HeaderSize())
	}
	if err := ph.ValidateAndByteswap(raw, contents); err != nil {
		// Declared segments overrunning the buffer is a truncation, not a
		// structural defect.
		if errors.Is(err, format.ErrTruncated) {
			return parsed[H]{}, fmt.Errorf("%w: %s", ErrInvalidSize, err)
		}
		return parsed[H]{}, fmt.Errorf("%w: %s", ErrInvalidContents, err)
	}
	return parsed[H]{header: *ph, body: body}, nil
}

// splitBody returns the first n bytes of b and the remainder, mapping
// failures onto the package error taxonomy.
func splitBody(b []byte, n uint64) (head, tail []byte, err error) {
	if !buf.FitsInt(n) {
		return nil, nil, fmt.Errorf("%w (%d)", ErrInvalidValue, n)
	}
	head, tail, err = buf.Split(b, int(n))
	if err != nil {
		return nil, nil, fmt.Errorf("%w (need %d, have %d)", ErrInvalidSize, n, len(b))
	}
	return head, tail, nil
}

// splitWithNul splits off n bytes plus the trailing NUL terminator.
func splitWithNul(b []byte, n uint64) (head, tail []byte, err error) {
	withNul, ok := buf.AddU64(n, 1)
	if !ok {
		return nil, nil, fmt.Errorf("%w (%d)", ErrInvalidValue, n)
	}
	return splitBody(b, withNul)
}

// cutNul strips the trailing NUL from a NUL-terminated segment. Missing
// terminators and embedded NULs are both rejected; the format never produces
// segments with interior NUL bytes.
func cutNul(b []byte) ([]byte, error) {
	if len(b) == 0 || b[len(b)-1] != 0 {
		return nil, fmt.Errorf("%w (missing NUL terminator)", ErrInvalidContents)
	}
	inner := b[:len(b)-1]
	if bytes.IndexByte(inner, 0) >= 0 {
		return nil, fmt.Errorf("%w (embedded NUL)", ErrInvalidContents)
	}
	return inner, nil
}

// algorithmName extracts the NUL-terminated algorithm string from the fixed
// hash_algorithm header field. A field with no NUL anywhere in its 32 bytes
// is rejected.
func algorithmName(field []byte) (string, error) {
	i := bytes.IndexByte(field, 0)
	if i < 0 {
		return "", fmt.Errorf("%w (hash algorithm not NUL terminated)", ErrInvalidContents)
	}
	return string(field[:i]), nil
}

// bytesAsString reinterprets validated UTF-8 bytes as a string without
// copying. The caller must not mutate b while the string is in use; parsed
// views document the same aliasing rule for their byte fields.
func bytesAsString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
