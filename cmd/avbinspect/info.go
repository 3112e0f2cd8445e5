package main

import (
	"fmt"

	"github.com/avbkit/avbkit/vbmeta"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Validate a vbmeta header and report image metadata",
		Long: `The info command structurally validates a vbmeta image and displays
header metadata: required libavb version, block sizes, rollback index,
flags, and the release string.

Example:
  avbinspect info vbmeta.img
  avbinspect info vbmeta.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

type imageInfo struct {
	File                  string `json:"file"`
	RequiredVersionMajor  uint32 `json:"required_version_major"`
	RequiredVersionMinor  uint32 `json:"required_version_minor"`
	Size                  int    `json:"size"`
	RollbackIndex         uint64 `json:"rollback_index"`
	RollbackIndexLocation uint32 `json:"rollback_index_location"`
	Flags                 uint32 `json:"flags"`
	ReleaseString         string `json:"release_string"`
	DescriptorCount       int    `json:"descriptor_count"`
}

func runInfo(path string) error {
	f, err := vbmeta.Open(path, vbmeta.OpenOptions{})
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img := f.Image()
	descs, err := img.Descriptors()
	if err != nil {
		return fmt.Errorf("walk descriptors: %w", err)
	}

	major, minor := img.RequiredVersion()
	info := imageInfo{
		File:                  path,
		RequiredVersionMajor:  major,
		RequiredVersionMinor:  minor,
		Size:                  img.Size(),
		RollbackIndex:         img.RollbackIndex(),
		RollbackIndexLocation: img.RollbackIndexLocation(),
		Flags:                 img.Flags(),
		ReleaseString:         img.ReleaseString(),
		DescriptorCount:       len(descs),
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("Image: %s\n", info.File)
	printInfo("  Required libavb version: %d.%d\n", major, minor)
	printInfo("  Image size:              %d bytes\n", info.Size)
	printInfo("  Rollback index:          %d (location %d)\n",
		info.RollbackIndex, info.RollbackIndexLocation)
	printInfo("  Flags:                   %#x\n", info.Flags)
	printInfo("  Release string:          %q\n", info.ReleaseString)
	printInfo("  Descriptors:             %d\n", info.DescriptorCount)
	return nil
}
