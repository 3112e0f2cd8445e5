package format

import (
	"bytes"
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// VBMetaMagic is the four-byte signature at the start of every vbmeta image.
var VBMetaMagic = []byte{'A', 'V', 'B', '0'}

const (
	// VBMetaHeaderSize is the fixed size of the vbmeta image header.
	VBMetaHeaderSize = 256

	// VBMetaBlockAlignment is the required alignment of the authentication
	// and auxiliary data blocks following the header.
	VBMetaBlockAlignment = 64

	// VBMetaReleaseStringSize is the width of the NUL-terminated release
	// string field.
	VBMetaReleaseStringSize = 48

	vbmetaVersionMajorOff = 0x04
	vbmetaVersionMinorOff = 0x08
	vbmetaAuthSizeOff     = 0x0c
	vbmetaAuxSizeOff      = 0x14
	vbmetaAlgorithmOff    = 0x1c
	vbmetaHashOffOff      = 0x20
	vbmetaHashSizeOff     = 0x28
	vbmetaSigOffOff       = 0x30
	vbmetaSigSizeOff      = 0x38
	vbmetaPubKeyOffOff    = 0x40
	vbmetaPubKeySizeOff   = 0x48
	vbmetaPKMDOffOff      = 0x50
	vbmetaPKMDSizeOff     = 0x58
	vbmetaDescOffOff      = 0x60
	vbmetaDescSizeOff     = 0x68
	vbmetaRollbackOff     = 0x70
	vbmetaFlagsOff        = 0x78
	vbmetaRollbackLocOff  = 0x7c
	vbmetaReleaseOff      = 0x80
)

// VBMetaHeader is the host-order view of a vbmeta image header. Offsets for
// hash and signature are relative to the authentication data block; offsets
// for keys, metadata, and descriptors are relative to the auxiliary data
// block.
type VBMetaHeader struct {
	RequiredVersionMajor uint32
	RequiredVersionMinor uint32

	AuthenticationDataBlockSize uint64
	AuxiliaryDataBlockSize      uint64

	AlgorithmType uint32

	HashOffset              uint64
	HashSize                uint64
	SigOffset               uint64
	SigSize                 uint64
	PublicKeyOffset         uint64
	PublicKeySize           uint64
	PublicKeyMetadataOffset uint64
	PublicKeyMetadataSize   uint64
	DescriptorsOffset       uint64
	DescriptorsSize         uint64

	RollbackIndex         uint64
	Flags                 uint32
	RollbackIndexLocation uint32

	ReleaseString [VBMetaReleaseStringSize]byte
}

// ParseVBMetaHeader decodes and structurally validates a vbmeta image header
// against the image it heads. Cryptographic verification of the blocks is a
// separate concern; only magic, alignment, and extent checks happen here.
func ParseVBMetaHeader(data []byte) (VBMetaHeader, error) {
	if len(data) < VBMetaHeaderSize {
		return VBMetaHeader{}, fmt.Errorf("vbmeta header: %w (have %d, need %d)",
			ErrTruncated, len(data), VBMetaHeaderSize)
	}
	if !bytes.Equal(data[:4], VBMetaMagic) {
		return VBMetaHeader{}, fmt.Errorf("vbmeta: %w", ErrBadMagic)
	}

	var h VBMetaHeader
	u32 := func(off int) uint32 { v, _ := buf.U32BE(data, off); return v }
	u64 := func(off int) uint64 { v, _ := buf.U64BE(data, off); return v }

	h.RequiredVersionMajor = u32(vbmetaVersionMajorOff)
	h.RequiredVersionMinor = u32(vbmetaVersionMinorOff)
	h.AuthenticationDataBlockSize = u64(vbmetaAuthSizeOff)
	h.AuxiliaryDataBlockSize = u64(vbmetaAuxSizeOff)
	h.AlgorithmType = u32(vbmetaAlgorithmOff)
	h.HashOffset = u64(vbmetaHashOffOff)
	h.HashSize = u64(vbmetaHashSizeOff)
	h.SigOffset = u64(vbmetaSigOffOff)
	h.SigSize = u64(vbmetaSigSizeOff)
	h.PublicKeyOffset = u64(vbmetaPubKeyOffOff)
	h.PublicKeySize = u64(vbmetaPubKeySizeOff)
	h.PublicKeyMetadataOffset = u64(vbmetaPKMDOffOff)
	h.PublicKeyMetadataSize = u64(vbmetaPKMDSizeOff)
	h.DescriptorsOffset = u64(vbmetaDescOffOff)
	h.DescriptorsSize = u64(vbmetaDescSizeOff)
	h.RollbackIndex = u64(vbmetaRollbackOff)
	h.Flags = u32(vbmetaFlagsOff)
	h.RollbackIndexLocation = u32(vbmetaRollbackLocOff)
	copy(h.ReleaseString[:], data[vbmetaReleaseOff:vbmetaReleaseOff+VBMetaReleaseStringSize])

	if h.AuthenticationDataBlockSize%VBMetaBlockAlignment != 0 ||
		h.AuxiliaryDataBlockSize%VBMetaBlockAlignment != 0 {
		return VBMetaHeader{}, fmt.Errorf("vbmeta block sizes: %w", ErrMisaligned)
	}

	blocks, ok := buf.AddU64(h.AuthenticationDataBlockSize, h.AuxiliaryDataBlockSize)
	if !ok {
		return VBMetaHeader{}, fmt.Errorf("vbmeta block sizes wrap: %w", ErrLengthMismatch)
	}
	total, ok := buf.AddU64(VBMetaHeaderSize, blocks)
	if !ok || !buf.FitsInt(total) || int(total) > len(data) {
		return VBMetaHeader{}, fmt.Errorf("vbmeta blocks extend past image: %w", ErrTruncated)
	}

	descEnd, ok := buf.AddU64(h.DescriptorsOffset, h.DescriptorsSize)
	if !ok || descEnd > h.AuxiliaryDataBlockSize {
		return VBMetaHeader{}, fmt.Errorf("vbmeta descriptor region outside auxiliary block: %w",
			ErrLengthMismatch)
	}

	return h, nil
}

// AuxiliaryBlockOffset returns the byte offset of the auxiliary data block
// within the image.
func (h VBMetaHeader) AuxiliaryBlockOffset() uint64 {
	return VBMetaHeaderSize + h.AuthenticationDataBlockSize
}
