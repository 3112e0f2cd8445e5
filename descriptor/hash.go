package descriptor

import (
	"fmt"
	"unicode/utf8"

	"github.com/avbkit/avbkit/internal/format"
)

// Hash descriptor flags.
const (
	// HashDoNotUseAB indicates the partition is managed outside of A/B
	// slot suffixing.
	HashDoNotUseAB uint32 = 1 << 0
)

// Hash is a view over a hash descriptor: a partition verified by a single
// digest over the whole image. PartitionName, Salt, and Digest alias the
// buffer the descriptor was parsed from.
type Hash struct {
	// ImageSize is the size in bytes of the hashed partition image.
	ImageSize uint64
	// Algorithm names the digest algorithm, e.g. "sha256".
	Algorithm string
	// PartitionName is the UTF-8 partition name, without any A/B suffix.
	PartitionName string
	// Salt is prepended to the image when hashing.
	Salt []byte
	// Digest is the expected digest of salt plus image.
	Digest []byte
	// Flags holds HashDoNotUseAB and reserved bits.
	Flags uint32
}

// Tag implements Descriptor.
func (Hash) Tag() Tag { return TagHash }

// ParseHash extracts a Hash from the given descriptor contents, header
// through body, in raw big-endian wire format.
//
// The body is partition_name | salt | digest | padding, with no terminators;
// the segments are length-delimited by the validated header.
func ParseHash(contents []byte) (Hash, error) {
	d, err := parseDescriptor[format.HashHeader](contents)
	if err != nil {
		return Hash{}, fmt.Errorf("hash: %w", err)
	}

	algorithm, err := algorithmName(d.header.HashAlgorithm[:])
	if err != nil {
		return Hash{}, fmt.Errorf("hash: %w", err)
	}

	name, remainder, err := splitBody(d.body, uint64(d.header.PartitionNameLen))
	if err != nil {
		return Hash{}, fmt.Errorf("hash partition name: %w", err)
	}
	if !utf8.Valid(name) {
		return Hash{}, fmt.Errorf("hash partition name: %w", ErrInvalidUTF8)
	}
	salt, remainder, err := splitBody(remainder, uint64(d.header.SaltLen))
	if err != nil {
		return Hash{}, fmt.Errorf("hash salt: %w", err)
	}
	digest, _, err := splitBody(remainder, uint64(d.header.DigestLen))
	if err != nil {
		return Hash{}, fmt.Errorf("hash digest: %w", err)
	}

	return Hash{
		ImageSize:     d.header.ImageSize,
		Algorithm:     algorithm,
		PartitionName: bytesAsString(name),
		Salt:          salt,
		Digest:        digest,
		Flags:         d.header.Flags,
	}, nil
}
