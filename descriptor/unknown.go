package descriptor

// Unknown preserves a descriptor whose tag this package does not recognize.
// Newer format revisions may add descriptor kinds; a verifier is expected to
// skip them rather than reject the image. Contents aliases the buffer the
// table was walked from.
type Unknown struct {
	// RawTag is the unrecognized tag value.
	RawTag uint64
	// Contents is the full descriptor range, header included.
	Contents []byte
}

// Tag implements Descriptor.
func (u Unknown) Tag() Tag { return Tag(u.RawTag) }
