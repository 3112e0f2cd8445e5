package descriptor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avbkit/avbkit/descriptor"
	"github.com/avbkit/avbkit/internal/format"
)

func TestParseChainPartition(t *testing.T) {
	publicKey := bytes.Repeat([]byte{0x11}, 1032)
	b := buildChainPartition(3, "vbmeta_system", publicKey)

	c, err := descriptor.ParseChainPartition(b)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), c.RollbackIndexLocation)
	assert.Equal(t, "vbmeta_system", c.PartitionName)
	assert.Equal(t, publicKey, c.PublicKey)
	assert.Equal(t, uint32(0), c.Flags)
	assert.Equal(t, descriptor.TagChainPartition, c.Tag())
}

func TestParseChainPartitionHeaderTooShort(t *testing.T) {
	b := buildChainPartition(0, "system", nil)

	_, err := descriptor.ParseChainPartition(b[:format.ChainPartitionHeaderSize-1])
	require.ErrorIs(t, err, descriptor.ErrInvalidHeader)
}

func TestParseChainPartitionTruncatedKey(t *testing.T) {
	b := buildChainPartition(0, "system", bytes.Repeat([]byte{0x22}, 64))

	_, err := descriptor.ParseChainPartition(b[:len(b)-16])
	require.ErrorIs(t, err, descriptor.ErrInvalidSize)
}

func TestParseChainPartitionInvalidUTF8Name(t *testing.T) {
	b := buildChainPartition(0, "vbme\xf0ta", nil)

	_, err := descriptor.ParseChainPartition(b)
	require.ErrorIs(t, err, descriptor.ErrInvalidUTF8)
}
