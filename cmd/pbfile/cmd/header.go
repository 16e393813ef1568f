package cmd

import (
	"fmt"
	"io"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/spf13/cobra"

	"github.com/fjordstone/pbfile/pkg/codec"
)

// headerCmd represents the header command
var headerCmd = &cobra.Command{
	Use:   "header <file>",
	Short: "Print a container file's magic and version",
	Long: `Print a container file's magic number and format version without
validating them, for identifying files of unknown kind.

Example:
  pbfile header db.manifest`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		file, err := vfs.Default.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer file.Close()

		buf := make([]byte, codec.HeaderLength)
		if _, err := io.ReadFull(file, buf); err != nil {
			return fmt.Errorf("reading header of %s: %w", path, err)
		}
		magic, version, err := codec.ParseHeader(buf)
		if err != nil {
			return err
		}

		fmt.Printf("magic:   %q\n", magic)
		fmt.Printf("version: %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
}
