package descriptor

import (
	"fmt"
	"unicode/utf8"

	"github.com/avbkit/avbkit/internal/format"
)

// Hashtree descriptor flags.
const (
	// HashtreeDoNotUseAB indicates the partition is managed outside of A/B
	// slot suffixing.
	HashtreeDoNotUseAB uint32 = 1 << 0
	// HashtreeCheckAtMostOnce asks dm-verity to check each data block at
	// most once rather than on every read.
	HashtreeCheckAtMostOnce uint32 = 1 << 1
)

// Hashtree is a view over a hashtree descriptor: a partition verified on
// demand through a dm-verity hash tree stored alongside the data.
// PartitionName, Salt, and RootDigest alias the buffer the descriptor was
// parsed from.
type Hashtree struct {
	// DMVerityVersion is the on-disk dm-verity format version.
	DMVerityVersion uint32
	// ImageSize is the size in bytes of the verified data region.
	ImageSize uint64
	// TreeOffset and TreeSize locate the hash tree within the partition.
	TreeOffset uint64
	TreeSize   uint64
	// DataBlockSize and HashBlockSize are the dm-verity block geometry.
	DataBlockSize uint32
	HashBlockSize uint32
	// FECNumRoots, FECOffset, and FECSize describe the optional
	// forward-error-correction data. All zero when FEC is absent.
	FECNumRoots uint32
	FECOffset   uint64
	FECSize     uint64
	// Algorithm names the digest algorithm used for the tree.
	Algorithm string
	// PartitionName is the UTF-8 partition name, without any A/B suffix.
	PartitionName string
	// Salt is mixed into each block hash.
	Salt []byte
	// RootDigest is the expected digest of the tree root.
	RootDigest []byte
	// Flags holds HashtreeDoNotUseAB, HashtreeCheckAtMostOnce, and reserved
	// bits.
	Flags uint32
}

// Tag implements Descriptor.
func (Hashtree) Tag() Tag { return TagHashtree }

// ParseHashtree extracts a Hashtree from the given descriptor contents,
// header through body, in raw big-endian wire format.
//
// The body is partition_name | salt | root_digest | padding, with no
// terminators; the segments are length-delimited by the validated header.
func ParseHashtree(contents []byte) (Hashtree, error) {
	d, err := parseDescriptor[format.HashtreeHeader](contents)
	if err != nil {
		return Hashtree{}, fmt.Errorf("hashtree: %w", err)
	}

	algorithm, err := algorithmName(d.header.HashAlgorithm[:])
	if err != nil {
		return Hashtree{}, fmt.Errorf("hashtree: %w", err)
	}

	name, remainder, err := splitBody(d.body, uint64(d.header.PartitionNameLen))
	if err != nil {
		return Hashtree{}, fmt.Errorf("hashtree partition name: %w", err)
	}
	if !utf8.Valid(name) {
		return Hashtree{}, fmt.Errorf("hashtree partition name: %w", ErrInvalidUTF8)
	}
	salt, remainder, err := splitBody(remainder, uint64(d.header.SaltLen))
	if err != nil {
		return Hashtree{}, fmt.Errorf("hashtree salt: %w", err)
	}
	rootDigest, _, err := splitBody(remainder, uint64(d.header.RootDigestLen))
	if err != nil {
		return Hashtree{}, fmt.Errorf("hashtree root digest: %w", err)
	}

	return Hashtree{
		DMVerityVersion: d.header.DMVerityVersion,
		ImageSize:       d.header.ImageSize,
		TreeOffset:      d.header.TreeOffset,
		TreeSize:        d.header.TreeSize,
		DataBlockSize:   d.header.DataBlockSize,
		HashBlockSize:   d.header.HashBlockSize,
		FECNumRoots:     d.header.FECNumRoots,
		FECOffset:       d.header.FECOffset,
		FECSize:         d.header.FECSize,
		Algorithm:       algorithm,
		PartitionName:   bytesAsString(name),
		Salt:            salt,
		RootDigest:      rootDigest,
		Flags:           d.header.Flags,
	}, nil
}
