package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/spf13/cobra"

	"github.com/fjordstone/pbfile/pkg/container"
	"github.com/fjordstone/pbfile/pkg/pbutil"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <out> <in>...",
	Short: "Pack files into a new container file",
	Long: `Write each input file's bytes as one record of a new container file,
published atomically at the output path.

Example:
  pbfile pack db.manifest --magic manifest rec1.bin rec2.bin`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		magic, err := resolveMagic(cmd)
		if err != nil {
			return err
		}
		out, inputs := args[0], args[1:]

		sync := pbutil.NoSync
		if durable, _ := cmd.Flags().GetBool("sync"); durable {
			sync = pbutil.Sync
		}

		err = pbutil.WriteContainerToPath(vfs.Default, out, magic, sync, func(w *container.Writer) error {
			for _, in := range inputs {
				payload, err := os.ReadFile(in)
				if err != nil {
					return fmt.Errorf("reading %s: %w", in, err)
				}
				if err := w.AppendBytes(payload); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s: wrote %d record(s)\n", out, len(inputs))
		return nil
	},
}

func init() {
	packCmd.Flags().Bool("sync", true, "Durably sync the container before publishing")
	rootCmd.AddCommand(packCmd)
}
