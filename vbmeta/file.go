package vbmeta

import (
	"fmt"
	"os"
)

// DefaultMaxImageSize caps how large a file Open will load. vbmeta images
// are tens of kilobytes in practice; anything near the cap is hostile or not
// a vbmeta image at all.
const DefaultMaxImageSize = 64 << 20

// OpenOptions controls Open.
type OpenOptions struct {
	// MaxImageSize rejects files larger than this before any bytes are
	// mapped or read. Zero means DefaultMaxImageSize.
	MaxImageSize int64
}

func (o OpenOptions) checkSize(path string, size int64) error {
	limit := o.MaxImageSize
	if limit == 0 {
		limit = DefaultMaxImageSize
	}
	if size == 0 {
		return fmt.Errorf("empty vbmeta image: %s", path)
	}
	if size > limit {
		return fmt.Errorf("vbmeta image %s is %d bytes, limit %d", path, size, limit)
	}
	return nil
}

// File is an opened vbmeta image backed by a file, memory-mapped where the
// platform supports it.
type File struct {
	f      *os.File
	data   []byte
	img    Image
	mapped bool
}

// Image returns the parsed image view. It aliases the mapping and must not
// be used after Close.
func (f *File) Image() Image { return f.img }

// Bytes returns the raw image bytes. Same lifetime rule as Image.
func (f *File) Bytes() []byte { return f.data }

// Close releases the mapping and the underlying file. Views handed out
// earlier become invalid.
func (f *File) Close() error {
	if f == nil || f.f == nil {
		return nil
	}
	var firstErr error
	if f.mapped {
		firstErr = f.unmap()
	}
	if err := f.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	f.f = nil
	f.data = nil
	return firstErr
}
