package cmd

import (
	"fmt"
	"io"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/spf13/cobra"

	"github.com/fjordstone/pbfile/pkg/container"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Validate every record checksum in a container file",
	Long: `Walk a container file from the header to the end, validating the
magic, version, and every record's checksum.

Example:
  pbfile verify db.manifest --magic manifest`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		magic, err := resolveMagic(cmd)
		if err != nil {
			return err
		}
		path := args[0]

		file, err := vfs.Default.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		r := container.NewReader(file, path)
		defer r.Close()

		if err := r.Init(magic); err != nil {
			return err
		}
		records := 0
		for {
			_, err := r.ReadNextBytes()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			records++
		}

		fmt.Printf("%s: ok, %d record(s)\n", path, records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
