//go:build !linux && !darwin

package vbmeta

import "os"

// Open reads the whole image into memory on platforms without the mmap
// loader.
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
	if err := opts.checkSize(path, st.Size()); err != nil {
		_ = f.Close()
		return nil, err
	}

	data := make([]byte, st.Size())
	if _, err := f.ReadAt(data, 0); err != nil {
		_ = f.Close()
		return nil, err
	}

	img, err := Parse(data)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &File{f: f, data: data, img: img}, nil
}

func (f *File) unmap() error { return nil }
