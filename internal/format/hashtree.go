package format

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// HashtreeHeader models a hashtree descriptor header, describing a partition
// verified on demand through a dm-verity hash tree.
//
// Layout (big-endian, after the generic prefix):
//
//	0x10  u32       dm_verity_version
//	0x14  u64       image_size
//	0x1c  u64       tree_offset
//	0x24  u64       tree_size
//	0x2c  u32       data_block_size
//	0x30  u32       hash_block_size
//	0x34  u32       fec_num_roots
//	0x38  u64       fec_offset
//	0x40  u64       fec_size
//	0x48  [32]byte  hash_algorithm (NUL padded)
//	0x68  u32       partition_name_len
//	0x6c  u32       salt_len
//	0x70  u32       root_digest_len
//	0x74  u32       flags
//	0x78  [60]byte  reserved
//
// Body: partition_name | salt | root_digest | padding. No NUL terminators.
type HashtreeHeader struct {
	Prefix
	DMVerityVersion  uint32
	ImageSize        uint64
	TreeOffset       uint64
	TreeSize         uint64
	DataBlockSize    uint32
	HashBlockSize    uint32
	FECNumRoots      uint32
	FECOffset        uint64
	FECSize          uint64
	HashAlgorithm    [HashAlgorithmSize]byte
	PartitionNameLen uint32
	SaltLen          uint32
	RootDigestLen    uint32
	Flags            uint32
}

const (
	htVersionOff    = PrefixSize
	htImageSizeOff  = htVersionOff + 4
	htTreeOffOff    = htImageSizeOff + 8
	htTreeSizeOff   = htTreeOffOff + 8
	htDataBlockOff  = htTreeSizeOff + 8
	htHashBlockOff  = htDataBlockOff + 4
	htFECRootsOff   = htHashBlockOff + 4
	htFECOffOff     = htFECRootsOff + 4
	htFECSizeOff    = htFECOffOff + 8
	htAlgorithmOff  = htFECSizeOff + 8
	htPartNameOff   = htAlgorithmOff + HashAlgorithmSize
	htSaltLenOff    = htPartNameOff + 4
	htRootDigestOff = htSaltLenOff + 4
	htFlagsOff      = htRootDigestOff + 4
)

// HeaderSize implements Header.
func (h *HashtreeHeader) HeaderSize() int { return HashtreeHeaderSize }

// ValidateAndByteswap implements Header.
func (h *HashtreeHeader) ValidateAndByteswap(raw, contents []byte) error {
	p, err := validatePrefix(raw, TagHashtree)
	if err != nil {
		return fmt.Errorf("hashtree: %w", err)
	}
	version, okA := buf.U32BE(raw, htVersionOff)
	imageSize, okB := buf.U64BE(raw, htImageSizeOff)
	treeOffset, okC := buf.U64BE(raw, htTreeOffOff)
	treeSize, okD := buf.U64BE(raw, htTreeSizeOff)
	dataBlock, okE := buf.U32BE(raw, htDataBlockOff)
	hashBlock, okF := buf.U32BE(raw, htHashBlockOff)
	fecRoots, okG := buf.U32BE(raw, htFECRootsOff)
	fecOffset, okH := buf.U64BE(raw, htFECOffOff)
	fecSize, okI := buf.U64BE(raw, htFECSizeOff)
	if !(okA && okB && okC && okD && okE && okF && okG && okH && okI) {
		return fmt.Errorf("hashtree geometry: %w", ErrTruncated)
	}
	partNameLen, ok1 := buf.U32BE(raw, htPartNameOff)
	saltLen, ok2 := buf.U32BE(raw, htSaltLenOff)
	rootDigestLen, ok3 := buf.U32BE(raw, htRootDigestOff)
	flags, ok4 := buf.U32BE(raw, htFlagsOff)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return fmt.Errorf("hashtree lengths: %w", ErrTruncated)
	}
	if err := checkBodyFits(p, len(contents), HashtreeHeaderSize-PrefixSize,
		uint64(partNameLen), uint64(saltLen), uint64(rootDigestLen)); err != nil {
		return fmt.Errorf("hashtree: %w", err)
	}
	h.Prefix = p
	h.DMVerityVersion = version
	h.ImageSize = imageSize
	h.TreeOffset = treeOffset
	h.TreeSize = treeSize
	h.DataBlockSize = dataBlock
	h.HashBlockSize = hashBlock
	h.FECNumRoots = fecRoots
	h.FECOffset = fecOffset
	h.FECSize = fecSize
	copy(h.HashAlgorithm[:], raw[htAlgorithmOff:htAlgorithmOff+HashAlgorithmSize])
	h.PartitionNameLen = partNameLen
	h.SaltLen = saltLen
	h.RootDigestLen = rootDigestLen
	h.Flags = flags
	return nil
}
