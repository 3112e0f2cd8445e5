package format

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// ChainPartitionHeader models a chain partition descriptor header, delegating
// verification of a partition to the key embedded in the descriptor body.
//
// Layout (big-endian, after the generic prefix):
//
//	0x10  u32       rollback_index_location
//	0x14  u32       partition_name_len
//	0x18  u32       public_key_len
//	0x1c  u32       flags
//	0x20  [60]byte  reserved
//
// Body: partition_name | public_key | padding. No NUL terminators.
type ChainPartitionHeader struct {
	Prefix
	RollbackIndexLocation uint32
	PartitionNameLen      uint32
	PublicKeyLen          uint32
	Flags                 uint32
}

const (
	chainRollbackOff  = PrefixSize
	chainPartNameOff  = chainRollbackOff + 4
	chainPublicKeyOff = chainPartNameOff + 4
	chainFlagsOff     = chainPublicKeyOff + 4
)

// HeaderSize implements Header.
func (h *ChainPartitionHeader) HeaderSize() int { return ChainPartitionHeaderSize }

// ValidateAndByteswap implements Header.
func (h *ChainPartitionHeader) ValidateAndByteswap(raw, contents []byte) error {
	p, err := validatePrefix(raw, TagChainPartition)
	if err != nil {
		return fmt.Errorf("chain partition: %w", err)
	}
	rollback, ok1 := buf.U32BE(raw, chainRollbackOff)
	partNameLen, ok2 := buf.U32BE(raw, chainPartNameOff)
	publicKeyLen, ok3 := buf.U32BE(raw, chainPublicKeyOff)
	flags, ok4 := buf.U32BE(raw, chainFlagsOff)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return fmt.Errorf("chain partition lengths: %w", ErrTruncated)
	}
	if err := checkBodyFits(p, len(contents), ChainPartitionHeaderSize-PrefixSize,
		uint64(partNameLen), uint64(publicKeyLen)); err != nil {
		return fmt.Errorf("chain partition: %w", err)
	}
	h.Prefix = p
	h.RollbackIndexLocation = rollback
	h.PartitionNameLen = partNameLen
	h.PublicKeyLen = publicKeyLen
	h.Flags = flags
	return nil
}
