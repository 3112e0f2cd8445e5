// Package format houses the low-level wire layout of vbmeta descriptors and
// the per-type validate-and-byteswap routines. The goal is to keep the byte
// level decoding focused and allocation-free so the public descriptor package
// can expose the data in a more ergonomic form.
//
// All multi-byte integers are big-endian on the wire. Validated headers hold
// host-order values.
package format

// Descriptor tags identifying the kind of each descriptor.
const (
	TagProperty       = 0
	TagHashtree       = 1
	TagHash           = 2
	TagKernelCmdline  = 3
	TagChainPartition = 4
)

const (
	// PrefixSize is the size of the generic descriptor prefix present at the
	// start of every descriptor.
	// Layout (big-endian):
	//   0x00  u64  tag
	//   0x08  u64  num_bytes_following
	PrefixSize = 16

	// PropertyHeaderSize is the full property descriptor header:
	// prefix + key_num_bytes u64 + value_num_bytes u64.
	PropertyHeaderSize = PrefixSize + 16

	// HashtreeHeaderSize covers the dm-verity geometry, FEC fields, the
	// hash algorithm name, the three body segment lengths, flags, and the
	// reserved tail.
	HashtreeHeaderSize = PrefixSize + 4 + 8 + 8 + 8 + 4 + 4 + 4 + 8 + 8 +
		HashAlgorithmSize + 4 + 4 + 4 + 4 + ReservedSize

	// HashHeaderSize covers the image size, the hash algorithm name, the
	// three body segment lengths, flags, and the reserved tail.
	HashHeaderSize = PrefixSize + 8 + HashAlgorithmSize + 4 + 4 + 4 + 4 + ReservedSize

	// KernelCmdlineHeaderSize is prefix + flags u32 + cmdline length u32.
	KernelCmdlineHeaderSize = PrefixSize + 8

	// ChainPartitionHeaderSize is prefix + rollback index location u32 +
	// partition name length u32 + public key length u32 + flags u32 +
	// reserved tail.
	ChainPartitionHeaderSize = PrefixSize + 16 + ReservedSize

	// HashAlgorithmSize is the fixed width of the NUL-padded hash algorithm
	// name field in hash and hashtree descriptor headers.
	HashAlgorithmSize = 32

	// ReservedSize is the width of the reserved tail carried by hash,
	// hashtree, and chain partition descriptor headers.
	ReservedSize = 60

	// DescriptorAlignment is the required alignment of descriptor sizes.
	// num_bytes_following must always be a multiple of 8, and bodies are
	// padded up to it.
	DescriptorAlignment = 8
)

// Align8 returns n rounded up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1) = 8
//	Align8(8) = 8
//	Align8(9) = 16
func Align8(n uint64) uint64 {
	return (n + DescriptorAlignment - 1) &^ (DescriptorAlignment - 1)
}
