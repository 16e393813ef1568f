package cmd

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/spf13/cobra"

	"github.com/fjordstone/pbfile/pkg/container"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print each record of a container file",
	Long: `Print the offset, size, and a truncated hex preview of every record
in a container file. Payloads are validated but not decoded, so no
message schema is needed.

Example:
  pbfile dump db.manifest --magic manifest --max-bytes 64`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		magic, err := resolveMagic(cmd)
		if err != nil {
			return err
		}
		maxBytes, _ := cmd.Flags().GetInt("max-bytes")
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
		for i := 0; ; i++ {
			offset := r.Offset()
			payload, err := r.ReadNextBytes()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			preview := payload
			suffix := ""
			if len(preview) > maxBytes {
				preview = preview[:maxBytes]
				suffix = "..."
			}
			fmt.Printf("record %d: offset=%d size=%d payload=%s%s\n",
				i, offset, len(payload), hex.EncodeToString(preview), suffix)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().Int("max-bytes", 32, "Maximum payload bytes to print per record")
	rootCmd.AddCommand(dumpCmd)
}
