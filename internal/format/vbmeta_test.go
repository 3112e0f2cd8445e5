package format

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildVBMetaBytes assembles a minimal structurally valid vbmeta image with
// the given auxiliary block payload placed at descriptors_offset 0.
func buildVBMetaBytes(authSize, auxSize uint64, descriptors []byte) []byte {
	b := make([]byte, VBMetaHeaderSize+int(authSize)+int(auxSize))
	copy(b, VBMetaMagic)
	binary.BigEndian.PutUint32(b[vbmetaVersionMajorOff:], 1)
	binary.BigEndian.PutUint32(b[vbmetaVersionMinorOff:], 0)
	binary.BigEndian.PutUint64(b[vbmetaAuthSizeOff:], authSize)
	binary.BigEndian.PutUint64(b[vbmetaAuxSizeOff:], auxSize)
	binary.BigEndian.PutUint64(b[vbmetaDescOffOff:], 0)
	binary.BigEndian.PutUint64(b[vbmetaDescSizeOff:], uint64(len(descriptors)))
	copy(b[vbmetaReleaseOff:], "avbtool 1.3.0\x00")
	copy(b[VBMetaHeaderSize+int(authSize):], descriptors)
	return b
}

func TestParseVBMetaHeader(t *testing.T) {
	b := buildVBMetaBytes(64, 128, []byte("payload"))

	h, err := ParseVBMetaHeader(b)
	if err != nil {
		t.Fatalf("ParseVBMetaHeader: %v", err)
	}
	if h.AuthenticationDataBlockSize != 64 || h.AuxiliaryDataBlockSize != 128 {
		t.Fatalf("block sizes = %d/%d", h.AuthenticationDataBlockSize, h.AuxiliaryDataBlockSize)
	}
	if h.AuxiliaryBlockOffset() != VBMetaHeaderSize+64 {
		t.Fatalf("aux offset = %d", h.AuxiliaryBlockOffset())
	}
	if h.DescriptorsSize != 7 {
		t.Fatalf("descriptors size = %d", h.DescriptorsSize)
	}
}

func TestParseVBMetaHeaderBadMagic(t *testing.T) {
	b := buildVBMetaBytes(64, 64, nil)
	copy(b, "XXXX")

	if _, err := ParseVBMetaHeader(b); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestParseVBMetaHeaderShort(t *testing.T) {
	if _, err := ParseVBMetaHeader(make([]byte, VBMetaHeaderSize-1)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParseVBMetaHeaderMisalignedBlocks(t *testing.T) {
	b := buildVBMetaBytes(64, 128, nil)
	binary.BigEndian.PutUint64(b[vbmetaAuthSizeOff:], 63)

	if _, err := ParseVBMetaHeader(b); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestParseVBMetaHeaderBlocksPastImage(t *testing.T) {
	b := buildVBMetaBytes(64, 128, nil)
	binary.BigEndian.PutUint64(b[vbmetaAuxSizeOff:], 4096)

	if _, err := ParseVBMetaHeader(b); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParseVBMetaHeaderDescriptorsOutsideAux(t *testing.T) {
	b := buildVBMetaBytes(64, 128, nil)
	binary.BigEndian.PutUint64(b[vbmetaDescOffOff:], 64)
	binary.BigEndian.PutUint64(b[vbmetaDescSizeOff:], 128)

	if _, err := ParseVBMetaHeader(b); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
