package descriptor

import "errors"

var (
	// ErrInvalidHeader indicates the buffer is shorter than the descriptor's
	// fixed header size.
	ErrInvalidHeader = errors.New("descriptor: buffer shorter than fixed header")
	// ErrInvalidSize indicates a declared length exceeds the bytes available.
	ErrInvalidSize = errors.New("descriptor: declared length exceeds available bytes")
	// ErrInvalidValue indicates a declared length cannot be represented as a
	// slice index on this host.
	ErrInvalidValue = errors.New("descriptor: declared length not representable")
	// ErrInvalidContents indicates the validate-and-byteswap routine rejected
	// the header, or a required NUL terminator was missing or misplaced.
	ErrInvalidContents = errors.New("descriptor: contents failed validation")
	// ErrInvalidUTF8 indicates a field required to be UTF-8 held invalid bytes.
	ErrInvalidUTF8 = errors.New("descriptor: invalid UTF-8")
)
