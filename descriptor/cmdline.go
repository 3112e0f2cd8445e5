package descriptor

import (
	"fmt"
	"unicode/utf8"

	"github.com/avbkit/avbkit/internal/format"
)

// Kernel cmdline descriptor flags. The two "use only if" flags are mutually
// exclusive selectors evaluated against the image's hashtree state.
const (
	KernelCmdlineUseOnlyIfHashtreeNotDisabled uint32 = 1 << 0
	KernelCmdlineUseOnlyIfHashtreeDisabled    uint32 = 1 << 1
)

// KernelCmdline is a view over a kernel cmdline descriptor: a command line
// fragment to append when the descriptor's flag condition holds. Cmdline
// aliases the buffer the descriptor was parsed from.
type KernelCmdline struct {
	// Flags selects when the fragment applies.
	Flags uint32
	// Cmdline is the UTF-8 command line fragment. Length-delimited on the
	// wire, no NUL terminator.
	Cmdline string
}

// Tag implements Descriptor.
func (KernelCmdline) Tag() Tag { return TagKernelCmdline }

// ParseKernelCmdline extracts a KernelCmdline from the given descriptor
// contents, header through body, in raw big-endian wire format.
func ParseKernelCmdline(contents []byte) (KernelCmdline, error) {
	d, err := parseDescriptor[format.KernelCmdlineHeader](contents)
	if err != nil {
		return KernelCmdline{}, fmt.Errorf("kernel cmdline: %w", err)
	}

	cmdline, _, err := splitBody(d.body, uint64(d.header.CmdlineLength))
	if err != nil {
		return KernelCmdline{}, fmt.Errorf("kernel cmdline: %w", err)
	}
	if !utf8.Valid(cmdline) {
		return KernelCmdline{}, fmt.Errorf("kernel cmdline: %w", ErrInvalidUTF8)
	}

	return KernelCmdline{
		Flags:   d.header.Flags,
		Cmdline: bytesAsString(cmdline),
	}, nil
}
