package main

import (
	"fmt"
	"os"

	"github.com/avbkit/avbkit/vbmeta"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetPropCmd())
}

func newGetPropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "getprop <image> <key>",
		Short: "Print the value of a property descriptor",
		Long: `The getprop command looks up a property descriptor by key and prints its
value bytes to stdout.

Example:
  avbinspect getprop vbmeta.img com.android.build.boot.os_version`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGetProp(args[0], args[1])
		},
	}
}

func runGetProp(path, key string) error {
	f, err := vbmeta.Open(path, vbmeta.OpenOptions{})
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	value, err := f.Image().PropertyValue(key)
	if err != nil {
		return err
	}
	// value aliases the read-only mapping; never append to it.
	if _, err := os.Stdout.Write(value); err != nil {
		return err
	}
	_, err = os.Stdout.Write([]byte{'\n'})
	return err
}
