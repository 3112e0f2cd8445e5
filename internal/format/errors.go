package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMisaligned indicates a length that must be 8-byte aligned was not.
	ErrMisaligned = errors.New("format: misaligned length")
	// ErrTagMismatch indicates a header carried a tag other than the one its
	// type requires.
	ErrTagMismatch = errors.New("format: descriptor tag mismatch")
	// ErrLengthMismatch indicates header-declared lengths that are internally
	// inconsistent or do not fit the supplied buffer.
	ErrLengthMismatch = errors.New("format: declared lengths inconsistent")
	// ErrBadMagic indicates a vbmeta image without the expected magic.
	ErrBadMagic = errors.New("format: bad magic")
)
