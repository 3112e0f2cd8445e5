package descriptor_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avbkit/avbkit/descriptor"
	"github.com/avbkit/avbkit/internal/format"
)

func TestAll(t *testing.T) {
	table := bytes.Join([][]byte{
		buildProperty([]byte("foo"), []byte("bar")),
		buildHash("boot", "sha256", []byte{1, 2}, bytes.Repeat([]byte{3}, 32), 0),
		buildKernelCmdline(0, []byte("ro")),
		buildChainPartition(1, "vbmeta_vendor", bytes.Repeat([]byte{4}, 64)),
		buildHashtree("system", "sha1", []byte{5}, bytes.Repeat([]byte{6}, 20)),
	}, nil)

	descs, err := descriptor.All(table)
	require.NoError(t, err)
	require.Len(t, descs, 5)

	prop, ok := descs[0].(descriptor.Property)
	require.True(t, ok)
	assert.Equal(t, "foo", prop.Key)

	hash, ok := descs[1].(descriptor.Hash)
	require.True(t, ok)
	assert.Equal(t, "boot", hash.PartitionName)

	cmdline, ok := descs[2].(descriptor.KernelCmdline)
	require.True(t, ok)
	assert.Equal(t, "ro", cmdline.Cmdline)

	chain, ok := descs[3].(descriptor.ChainPartition)
	require.True(t, ok)
	assert.Equal(t, "vbmeta_vendor", chain.PartitionName)

	tree, ok := descs[4].(descriptor.Hashtree)
	require.True(t, ok)
	assert.Equal(t, "system", tree.PartitionName)
}

func TestAllEmptyTable(t *testing.T) {
	descs, err := descriptor.All(nil)
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestAllUnknownTagPreserved(t *testing.T) {
	raw := buildUnknown(1<<32, []byte("future descriptor kind"))
	table := bytes.Join([][]byte{
		buildProperty([]byte("a"), []byte("b")),
		raw,
		buildProperty([]byte("c"), []byte("d")),
	}, nil)

	descs, err := descriptor.All(table)
	require.NoError(t, err)
	require.Len(t, descs, 3)

	u, ok := descs[1].(descriptor.Unknown)
	require.True(t, ok)
	assert.Equal(t, uint64(1<<32), u.RawTag)
	assert.Equal(t, raw, u.Contents)
	assert.Equal(t, "unknown(4294967296)", u.Tag().String())
}

func TestAllTruncatedPrefix(t *testing.T) {
	table := buildProperty([]byte("foo"), []byte("bar"))

	_, err := descriptor.All(table[:format.PrefixSize-1])
	require.ErrorIs(t, err, descriptor.ErrInvalidHeader)
}

func TestAllDescriptorExtendsPastTable(t *testing.T) {
	table := buildProperty([]byte("fooba"), []byte("bar"))

	// The walker trusts nothing: a descriptor whose declared extent runs
	// past the table is a truncation even when the cut lands in padding.
	_, err := descriptor.All(table[:len(table)-1])
	require.ErrorIs(t, err, descriptor.ErrInvalidSize)
}

func TestAllMisalignedLength(t *testing.T) {
	table := buildProperty([]byte("foo"), []byte("bar"))
	binary.BigEndian.PutUint64(table[8:], uint64(len(table)-format.PrefixSize-1))

	_, err := descriptor.All(table)
	require.ErrorIs(t, err, descriptor.ErrInvalidContents)
}

func TestAllBadDescriptorAbortsWalk(t *testing.T) {
	bad := buildProperty([]byte{0xff, 0xfe}, []byte("bar"))
	table := bytes.Join([][]byte{
		buildProperty([]byte("ok"), []byte("fine")),
		bad,
	}, nil)

	_, err := descriptor.All(table)
	require.ErrorIs(t, err, descriptor.ErrInvalidUTF8)
}

func TestAllOversizedDeclaredLength(t *testing.T) {
	table := buildProperty([]byte("foo"), []byte("bar"))
	binary.BigEndian.PutUint64(table[8:], ^uint64(0)&^7)

	_, err := descriptor.All(table)
	require.Error(t, err)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "property", descriptor.TagProperty.String())
	assert.Equal(t, "hashtree", descriptor.TagHashtree.String())
	assert.Equal(t, "hash", descriptor.TagHash.String())
	assert.Equal(t, "kernel cmdline", descriptor.TagKernelCmdline.String())
	assert.Equal(t, "chain partition", descriptor.TagChainPartition.String())
}
