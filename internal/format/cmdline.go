package format

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
)

// KernelCmdlineHeader models a kernel cmdline descriptor header.
//
// Layout (big-endian, after the generic prefix):
//
//	0x10  u32  flags
//	0x14  u32  kernel_cmdline_length
//
// Body: cmdline UTF-8 bytes (length-delimited, no NUL) | padding.
type KernelCmdlineHeader struct {
	Prefix
	Flags         uint32
	CmdlineLength uint32
}

// HeaderSize implements Header.
func (h *KernelCmdlineHeader) HeaderSize() int { return KernelCmdlineHeaderSize }

// ValidateAndByteswap implements Header.
func (h *KernelCmdlineHeader) ValidateAndByteswap(raw, contents []byte) error {
	p, err := validatePrefix(raw, TagKernelCmdline)
	if err != nil {
		return fmt.Errorf("kernel cmdline: %w", err)
	}
	flags, ok := buf.U32BE(raw, PrefixSize)
	if !ok {
		return fmt.Errorf("kernel cmdline flags: %w", ErrTruncated)
	}
	length, ok := buf.U32BE(raw, PrefixSize+4)
	if !ok {
		return fmt.Errorf("kernel cmdline length: %w", ErrTruncated)
	}
	if err := checkBodyFits(p, len(contents), KernelCmdlineHeaderSize-PrefixSize, uint64(length)); err != nil {
		return fmt.Errorf("kernel cmdline: %w", err)
	}
	h.Prefix = p
	h.Flags = flags
	h.CmdlineLength = length
	return nil
}
