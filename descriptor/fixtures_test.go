package descriptor_test

import (
	"encoding/binary"

	"github.com/avbkit/avbkit/internal/format"
)

// Fixture builders assembling wire-format descriptors, big-endian throughout.
// Bodies are padded to the 8-byte boundary the format requires.

func align8(n int) int { return (n + 7) &^ 7 }

func putPrefix(b []byte, tag uint64, nbf int) {
	binary.BigEndian.PutUint64(b[0:], tag)
	binary.BigEndian.PutUint64(b[8:], uint64(nbf))
}

func buildProperty(key, value []byte) []byte {
	nbf := align8(format.PropertyHeaderSize - format.PrefixSize + len(key) + len(value) + 2)
	b := make([]byte, format.PrefixSize+nbf)
	putPrefix(b, format.TagProperty, nbf)
	binary.BigEndian.PutUint64(b[16:], uint64(len(key)))
	binary.BigEndian.PutUint64(b[24:], uint64(len(value)))
	copy(b[format.PropertyHeaderSize:], key)
	copy(b[format.PropertyHeaderSize+len(key)+1:], value)
	return b
}

func buildHash(partition, algorithm string, salt, digest []byte, flags uint32) []byte {
	fixed := format.HashHeaderSize - format.PrefixSize
	nbf := align8(fixed + len(partition) + len(salt) + len(digest))
	b := make([]byte, format.PrefixSize+nbf)
	putPrefix(b, format.TagHash, nbf)
	binary.BigEndian.PutUint64(b[16:], 0x100000) // image_size
	copy(b[24:24+format.HashAlgorithmSize], algorithm)
	binary.BigEndian.PutUint32(b[56:], uint32(len(partition)))
	binary.BigEndian.PutUint32(b[60:], uint32(len(salt)))
	binary.BigEndian.PutUint32(b[64:], uint32(len(digest)))
	binary.BigEndian.PutUint32(b[68:], flags)
	off := format.HashHeaderSize
	off += copy(b[off:], partition)
	off += copy(b[off:], salt)
	copy(b[off:], digest)
	return b
}

func buildHashtree(partition, algorithm string, salt, rootDigest []byte) []byte {
	fixed := format.HashtreeHeaderSize - format.PrefixSize
	nbf := align8(fixed + len(partition) + len(salt) + len(rootDigest))
	b := make([]byte, format.PrefixSize+nbf)
	putPrefix(b, format.TagHashtree, nbf)
	binary.BigEndian.PutUint32(b[16:], 1)          // dm_verity_version
	binary.BigEndian.PutUint64(b[20:], 0x4000000)  // image_size
	binary.BigEndian.PutUint64(b[28:], 0x4000000)  // tree_offset
	binary.BigEndian.PutUint64(b[36:], 0x21000)    // tree_size
	binary.BigEndian.PutUint32(b[44:], 4096)       // data_block_size
	binary.BigEndian.PutUint32(b[48:], 4096)       // hash_block_size
	binary.BigEndian.PutUint32(b[52:], 2)          // fec_num_roots
	binary.BigEndian.PutUint64(b[56:], 0x4021000)  // fec_offset
	binary.BigEndian.PutUint64(b[64:], 0x33000)    // fec_size
	copy(b[72:72+format.HashAlgorithmSize], algorithm)
	binary.BigEndian.PutUint32(b[104:], uint32(len(partition)))
	binary.BigEndian.PutUint32(b[108:], uint32(len(salt)))
	binary.BigEndian.PutUint32(b[112:], uint32(len(rootDigest)))
	binary.BigEndian.PutUint32(b[116:], 0) // flags
	off := format.HashtreeHeaderSize
	off += copy(b[off:], partition)
	off += copy(b[off:], salt)
	copy(b[off:], rootDigest)
	return b
}

func buildKernelCmdline(flags uint32, cmdline []byte) []byte {
	fixed := format.KernelCmdlineHeaderSize - format.PrefixSize
	nbf := align8(fixed + len(cmdline))
	b := make([]byte, format.PrefixSize+nbf)
	putPrefix(b, format.TagKernelCmdline, nbf)
	binary.BigEndian.PutUint32(b[16:], flags)
	binary.BigEndian.PutUint32(b[20:], uint32(len(cmdline)))
	copy(b[format.KernelCmdlineHeaderSize:], cmdline)
	return b
}

func buildChainPartition(rollbackLoc uint32, partition string, publicKey []byte) []byte {
	fixed := format.ChainPartitionHeaderSize - format.PrefixSize
	nbf := align8(fixed + len(partition) + len(publicKey))
	b := make([]byte, format.PrefixSize+nbf)
	putPrefix(b, format.TagChainPartition, nbf)
	binary.BigEndian.PutUint32(b[16:], rollbackLoc)
	binary.BigEndian.PutUint32(b[20:], uint32(len(partition)))
	binary.BigEndian.PutUint32(b[24:], uint32(len(publicKey)))
	binary.BigEndian.PutUint32(b[28:], 0) // flags
	off := format.ChainPartitionHeaderSize
	off += copy(b[off:], partition)
	copy(b[off:], publicKey)
	return b
}

func buildUnknown(tag uint64, body []byte) []byte {
	nbf := align8(len(body))
	b := make([]byte, format.PrefixSize+nbf)
	putPrefix(b, tag, nbf)
	copy(b[format.PrefixSize:], body)
	return b
}
