//go:build linux || darwin

package vbmeta

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the image read-only. Descriptor views stay valid until Close.
func Open(path string, opts OpenOptions) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if err := opts.checkSize(path, sz); err != nil {
		_ = f.Close()
		return nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	img, err := Parse(data)
	if err != nil {
		_ = unix.Munmap(data)
		_ = f.Close()
		return nil, err
	}

	return &File{f: f, data: data, img: img, mapped: true}, nil
}

func (f *File) unmap() error {
	return unix.Munmap(f.data)
}
