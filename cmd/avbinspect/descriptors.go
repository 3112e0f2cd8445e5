package main

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/avbkit/avbkit/descriptor"
	"github.com/avbkit/avbkit/vbmeta"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDescriptorsCmd())
}

func newDescriptorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "descriptors <image>",
		Aliases: []string{"descs"},
		Short:   "List the descriptors in a vbmeta image",
		Long: `The descriptors command walks the image's descriptor table and prints
each descriptor with its typed fields.

Example:
  avbinspect descriptors vbmeta.img
  avbinspect descriptors vbmeta.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescriptors(args[0])
		},
	}
}

func runDescriptors(path string) error {
	f, err := vbmeta.Open(path, vbmeta.OpenOptions{})
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	descs, err := f.Image().Descriptors()
	if err != nil {
		return fmt.Errorf("walk descriptors: %w", err)
	}

	if jsonOut {
		out := make([]map[string]any, 0, len(descs))
		for _, d := range descs {
			out = append(out, descriptorJSON(d))
		}
		return printJSON(out)
	}

	for i, d := range descs {
		printInfo("[%d] %s\n", i, d.Tag())
		printDescriptor(d)
	}
	return nil
}

func printDescriptor(d descriptor.Descriptor) {
	switch v := d.(type) {
	case descriptor.Property:
		if utf8.Valid(v.Value()) {
			printInfo("    %s = %q\n", v.Key, v.Value())
		} else {
			printInfo("    %s = <%d bytes>\n", v.Key, len(v.Value()))
		}
	case descriptor.Hash:
		printInfo("    partition:  %s\n", v.PartitionName)
		printInfo("    algorithm:  %s\n", v.Algorithm)
		printInfo("    image size: %d\n", v.ImageSize)
		printInfo("    salt:       %s\n", hex.EncodeToString(v.Salt))
		printInfo("    digest:     %s\n", hex.EncodeToString(v.Digest))
	case descriptor.Hashtree:
		printInfo("    partition:   %s\n", v.PartitionName)
		printInfo("    algorithm:   %s\n", v.Algorithm)
		printInfo("    image size:  %d\n", v.ImageSize)
		printInfo("    tree:        offset %d, size %d\n", v.TreeOffset, v.TreeSize)
		printInfo("    blocks:      data %d, hash %d\n", v.DataBlockSize, v.HashBlockSize)
		if v.FECSize > 0 {
			printInfo("    fec:         offset %d, size %d, roots %d\n",
				v.FECOffset, v.FECSize, v.FECNumRoots)
		}
		printInfo("    root digest: %s\n", hex.EncodeToString(v.RootDigest))
	case descriptor.KernelCmdline:
		printInfo("    flags:   %#x\n", v.Flags)
		printInfo("    cmdline: %q\n", v.Cmdline)
	case descriptor.ChainPartition:
		printInfo("    partition:         %s\n", v.PartitionName)
		printInfo("    rollback location: %d\n", v.RollbackIndexLocation)
		printInfo("    public key:        <%d bytes>\n", len(v.PublicKey))
	case descriptor.Unknown:
		printInfo("    tag %d, %d bytes\n", v.RawTag, len(v.Contents))
	}
}

func descriptorJSON(d descriptor.Descriptor) map[string]any {
	switch v := d.(type) {
	case descriptor.Property:
		return map[string]any{
			"type":  "property",
			"key":   v.Key,
			"value": string(v.Value()),
		}
	case descriptor.Hash:
		return map[string]any{
			"type":       "hash",
			"partition":  v.PartitionName,
			"algorithm":  v.Algorithm,
			"image_size": v.ImageSize,
			"salt":       hex.EncodeToString(v.Salt),
			"digest":     hex.EncodeToString(v.Digest),
			"flags":      v.Flags,
		}
	case descriptor.Hashtree:
		return map[string]any{
			"type":            "hashtree",
			"partition":       v.PartitionName,
			"algorithm":       v.Algorithm,
			"image_size":      v.ImageSize,
			"tree_offset":     v.TreeOffset,
			"tree_size":       v.TreeSize,
			"data_block_size": v.DataBlockSize,
			"hash_block_size": v.HashBlockSize,
			"fec_num_roots":   v.FECNumRoots,
			"fec_offset":      v.FECOffset,
			"fec_size":        v.FECSize,
			"root_digest":     hex.EncodeToString(v.RootDigest),
			"flags":           v.Flags,
		}
	case descriptor.KernelCmdline:
		return map[string]any{
			"type":    "kernel_cmdline",
			"flags":   v.Flags,
			"cmdline": v.Cmdline,
		}
	case descriptor.ChainPartition:
		return map[string]any{
			"type":              "chain_partition",
			"partition":         v.PartitionName,
			"rollback_location": v.RollbackIndexLocation,
			"public_key_bytes":  len(v.PublicKey),
			"flags":             v.Flags,
		}
	case descriptor.Unknown:
		return map[string]any{
			"type":  "unknown",
			"tag":   v.RawTag,
			"bytes": len(v.Contents),
		}
	default:
		return map[string]any{"type": d.Tag().String()}
	}
}
