package format

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// HashHeader models a hash descriptor header, describing a partition verified
// by a single digest over the whole image.
//
// Layout (big-endian, after the generic prefix):
//
//	0x10  u64       image_size
//	0x18  [32]byte  hash_algorithm (NUL padded)
//	0x38  u32       partition_name_len
//	0x3c  u32       salt_len
//	0x40  u32       digest_len
//	0x44  u32       flags
//	0x48  [60]byte  reserved
//
// Body: partition_name | salt | digest | padding. No NUL terminators.
type HashHeader struct {
	Prefix
	ImageSize        uint64
	HashAlgorithm    [HashAlgorithmSize]byte
	PartitionNameLen uint32
	SaltLen          uint32
	DigestLen        uint32
	Flags            uint32
}

const (
	hashImageSizeOff = PrefixSize
	hashAlgorithmOff = hashImageSizeOff + 8
	hashPartNameOff  = hashAlgorithmOff + HashAlgorithmSize
	hashSaltLenOff   = hashPartNameOff + 4
	hashDigestLenOff = hashSaltLenOff + 4
	hashFlagsOff     = hashDigestLenOff + 4
)

// HeaderSize implements Header.
func (h *HashHeader) HeaderSize() int { return HashHeaderSize }

// ValidateAndByteswap implements Header.
func (h *HashHeader) ValidateAndByteswap(raw, contents []byte) error {
	p, err := validatePrefix(raw, TagHash)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	imageSize, ok := buf.U64BE(raw, hashImageSizeOff)
	if !ok {
		return fmt.Errorf("hash image size: %w", ErrTruncated)
	}
	partNameLen, ok1 := buf.U32BE(raw, hashPartNameOff)
	saltLen, ok2 := buf.U32BE(raw, hashSaltLenOff)
	digestLen, ok3 := buf.U32BE(raw, hashDigestLenOff)
	flags, ok4 := buf.U32BE(raw, hashFlagsOff)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return fmt.Errorf("hash lengths: %w", ErrTruncated)
	}
	if err := checkBodyFits(p, len(contents), HashHeaderSize-PrefixSize,
		uint64(partNameLen), uint64(saltLen), uint64(digestLen)); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	h.Prefix = p
	h.ImageSize = imageSize
	copy(h.HashAlgorithm[:], raw[hashAlgorithmOff:hashAlgorithmOff+HashAlgorithmSize])
	h.PartitionNameLen = partNameLen
	h.SaltLen = saltLen
	h.DigestLen = digestLen
	h.Flags = flags
	return nil
}
