package buf

import "encoding/binary"

// Descriptor wire data is big-endian throughout.

// U32BE reads a big-endian uint32 at off. Returns ok = false when b is too short.
func U32BE(b []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(b) {
		return 0, false
	}
	return binary.BigEndian.Uint32(b[off:]), true
}

// U64BE reads a big-endian uint64 at off. Returns ok = false when b is too short.
func U64BE(b []byte, off int) (uint64, bool) {
	if off < 0 || off+8 > len(b) {
		return 0, false
	}
	return binary.BigEndian.Uint64(b[off:]), true
}

// PutU32BE writes v at off in big-endian order. Callers guarantee bounds;
// only fixture builders write descriptor bytes.
func PutU32BE(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// PutU64BE writes v at off in big-endian order.
func PutU64BE(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(b[off:off+8], v)
}
