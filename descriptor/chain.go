package descriptor

import (
	"fmt"
	"unicode/utf8"

	"github.com/avbkit/avbkit/internal/format"
)

// Chain partition descriptor flags.
const (
	// ChainPartitionDoNotUseAB indicates the chained partition is managed
	// outside of A/B slot suffixing.
	ChainPartitionDoNotUseAB uint32 = 1 << 0
)

// ChainPartition is a view over a chain partition descriptor: verification
// of the named partition is delegated to the vbmeta struct it carries,
// signed by the embedded public key. PartitionName and PublicKey alias the
// buffer the descriptor was parsed from.
type ChainPartition struct {
	// RollbackIndexLocation is the rollback slot the chained image uses.
	RollbackIndexLocation uint32
	// PartitionName is the UTF-8 partition name, without any A/B suffix.
	PartitionName string
	// PublicKey is the serialized key the chained vbmeta must be signed
	// with. Matching it against trusted keys is upstream policy.
	PublicKey []byte
	// Flags holds ChainPartitionDoNotUseAB and reserved bits.
	Flags uint32
}

// Tag implements Descriptor.
func (ChainPartition) Tag() Tag { return TagChainPartition }

// ParseChainPartition extracts a ChainPartition from the given descriptor
// contents, header through body, in raw big-endian wire format.
//
// The body is partition_name | public_key | padding, with no terminators;
// the segments are length-delimited by the validated header.
func ParseChainPartition(contents []byte) (ChainPartition, error) {
	d, err := parseDescriptor[format.ChainPartitionHeader](contents)
	if err != nil {
		return ChainPartition{}, fmt.Errorf("chain partition: %w", err)
	}

	name, remainder, err := splitBody(d.body, uint64(d.header.PartitionNameLen))
	if err != nil {
		return ChainPartition{}, fmt.Errorf("chain partition name: %w", err)
	}
	if !utf8.Valid(name) {
		return ChainPartition{}, fmt.Errorf("chain partition name: %w", ErrInvalidUTF8)
	}
	publicKey, _, err := splitBody(remainder, uint64(d.header.PublicKeyLen))
	if err != nil {
		return ChainPartition{}, fmt.Errorf("chain partition public key: %w", err)
	}

	return ChainPartition{
		RollbackIndexLocation: d.header.RollbackIndexLocation,
		PartitionName:         bytesAsString(name),
		PublicKey:             publicKey,
		Flags:                 d.header.Flags,
	}, nil
}
