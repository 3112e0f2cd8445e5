package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avbkit/avbkit/descriptor"
	"github.com/avbkit/avbkit/internal/format"
)

func TestParseKernelCmdline(t *testing.T) {
	cmdline := []byte("dm=\"1 vroot none ro 1,0 5159992 verity 1\"")
	b := buildKernelCmdline(descriptor.KernelCmdlineUseOnlyIfHashtreeNotDisabled, cmdline)

	c, err := descriptor.ParseKernelCmdline(b)
	require.NoError(t, err)

	assert.Equal(t, descriptor.KernelCmdlineUseOnlyIfHashtreeNotDisabled, c.Flags)
	assert.Equal(t, string(cmdline), c.Cmdline)
	assert.Equal(t, descriptor.TagKernelCmdline, c.Tag())
}

func TestParseKernelCmdlineEmpty(t *testing.T) {
	b := buildKernelCmdline(0, nil)

	c, err := descriptor.ParseKernelCmdline(b)
	require.NoError(t, err)
	assert.Equal(t, "", c.Cmdline)
}

func TestParseKernelCmdlineHeaderTooShort(t *testing.T) {
	b := buildKernelCmdline(0, []byte("x"))

	_, err := descriptor.ParseKernelCmdline(b[:format.KernelCmdlineHeaderSize-1])
	require.ErrorIs(t, err, descriptor.ErrInvalidHeader)
}

func TestParseKernelCmdlineInvalidUTF8(t *testing.T) {
	b := buildKernelCmdline(0, []byte{'r', 'o', 0x80})

	_, err := descriptor.ParseKernelCmdline(b)
	require.ErrorIs(t, err, descriptor.ErrInvalidUTF8)
}

func TestParseKernelCmdlineLengthBeyondBody(t *testing.T) {
	b := buildKernelCmdline(0, []byte("console=ttyS0"))

	_, err := descriptor.ParseKernelCmdline(b[:len(b)-8])
	require.ErrorIs(t, err, descriptor.ErrInvalidSize)
}
