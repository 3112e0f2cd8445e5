package vbmeta

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/avbkit/avbkit/descriptor"
	"github.com/avbkit/avbkit/internal/format"
)

var (
	// ErrInvalidImage indicates the buffer is not a structurally valid
	// vbmeta image.
	ErrInvalidImage = errors.New("vbmeta: structurally invalid image")
	// ErrPropertyNotFound indicates no property descriptor carried the
	// requested key.
	ErrPropertyNotFound = errors.New("vbmeta: property not found")
)

// Image flags.
const (
	// FlagsHashtreeDisabled indicates dm-verity is disabled for the image.
	FlagsHashtreeDisabled uint32 = 1 << 0
	// FlagsVerificationDisabled indicates verification of this image was
	// switched off entirely.
	FlagsVerificationDisabled uint32 = 1 << 1
)

// Image is a read-only view over a vbmeta image buffer with a structurally
// validated header. Views handed out by its methods alias the buffer.
type Image struct {
	data   []byte
	header format.VBMetaHeader
}

// Parse validates the vbmeta header against the supplied buffer and returns
// an Image over it. The buffer is not copied; it must stay live and
// unmodified for as long as the Image or any view derived from it is used.
func Parse(data []byte) (Image, error) {
	h, err := format.ParseVBMetaHeader(data)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}
	return Image{data: data, header: h}, nil
}

// Size returns the image extent covered by the header and its two blocks.
func (i Image) Size() int {
	return format.VBMetaHeaderSize +
		int(i.header.AuthenticationDataBlockSize) +
		int(i.header.AuxiliaryDataBlockSize)
}

// RequiredVersion returns the minimum libavb version the image requires.
func (i Image) RequiredVersion() (major, minor uint32) {
	return i.header.RequiredVersionMajor, i.header.RequiredVersionMinor
}

// RollbackIndex returns the image's anti-rollback counter. Comparing it
// against stored state is upstream policy.
func (i Image) RollbackIndex() uint64 { return i.header.RollbackIndex }

// RollbackIndexLocation returns the rollback slot the image claims.
func (i Image) RollbackIndexLocation() uint32 { return i.header.RollbackIndexLocation }

// Flags returns the image flags (FlagsHashtreeDisabled and friends).
func (i Image) Flags() uint32 { return i.header.Flags }

// ReleaseString returns the NUL-terminated release string recorded by the
// tool that produced the image, e.g. "avbtool 1.3.0".
func (i Image) ReleaseString() string {
	rs := i.header.ReleaseString[:]
	if n := bytes.IndexByte(rs, 0); n >= 0 {
		rs = rs[:n]
	}
	return string(rs)
}

// DescriptorBytes returns the descriptor table region inside the auxiliary
// data block. The header validation already pinned the region inside the
// buffer.
func (i Image) DescriptorBytes() []byte {
	start := i.header.AuxiliaryBlockOffset() + i.header.DescriptorsOffset
	return i.data[start : start+i.header.DescriptorsSize]
}

// Descriptors parses the image's descriptor table into typed views.
func (i Image) Descriptors() ([]descriptor.Descriptor, error) {
	return descriptor.All(i.DescriptorBytes())
}

// PropertyValue returns the value bytes (trailing NUL excluded) of the first
// property descriptor whose key matches. Walk errors surface as-is;
// ErrPropertyNotFound reports a clean table without the key.
func (i Image) PropertyValue(key string) ([]byte, error) {
	descs, err := i.Descriptors()
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		if p, ok := d.(descriptor.Property); ok && p.Key == key {
			return p.Value(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPropertyNotFound, key)
}
