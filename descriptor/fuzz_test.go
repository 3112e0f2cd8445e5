package descriptor_test

import (
	"bytes"
	"testing"

	"github.com/avbkit/avbkit/descriptor"
)

// Parsing is total: any byte sequence of any length must produce a typed
// error or a view, never a panic or an out-of-bounds read.

func FuzzAll(f *testing.F) {
	f.Add([]byte{})
	f.Add(buildProperty([]byte("foo"), []byte("bar")))
	f.Add(buildHash("boot", "sha256", []byte{1}, bytes.Repeat([]byte{2}, 32), 0))
	f.Add(buildKernelCmdline(0, []byte("ro")))
	f.Add(buildChainPartition(0, "system", bytes.Repeat([]byte{3}, 64)))
	f.Add(buildHashtree("system", "sha1", []byte{4}, bytes.Repeat([]byte{5}, 20)))
	f.Add(buildUnknown(99, []byte("xyz")))
	f.Add(bytes.Repeat([]byte{0xff}, 64))

	f.Fuzz(func(t *testing.T, data []byte) {
		descs, err := descriptor.All(data)
		if err != nil {
			return
		}
		for _, d := range descs {
			_ = d.Tag().String()
		}
	})
}

func FuzzParseProperty(f *testing.F) {
	seed := buildProperty([]byte("foo"), []byte("bar"))
	f.Add(seed)
	for i := 1; i < len(seed); i += 7 {
		f.Add(seed[:i])
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := descriptor.ParseProperty(data)
		if err != nil {
			return
		}
		// A successful parse must hand back internally consistent views.
		if p.KeyWithNul[len(p.KeyWithNul)-1] != 0 {
			t.Fatal("key view not NUL terminated")
		}
		if p.ValueWithNul[len(p.ValueWithNul)-1] != 0 {
			t.Fatal("value view not NUL terminated")
		}
		if p.Key != string(p.KeyWithNul[:len(p.KeyWithNul)-1]) {
			t.Fatal("key views disagree")
		}
	})
}

func FuzzParseHash(f *testing.F) {
	f.Add(buildHash("boot", "sha256", []byte{1, 2}, bytes.Repeat([]byte{3}, 32), 0))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := descriptor.ParseHash(data)
		if err != nil {
			return
		}
		if len(h.Salt) > len(data) || len(h.Digest) > len(data) {
			t.Fatal("view longer than input")
		}
	})
}
