/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fjordstone/pbfile/pkg/codec"
	"github.com/fjordstone/pbfile/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pbfile",
	Short: "Inspect and write protobuf container files",
	Long: `pbfile inspects and writes protobuf container files: durable,
integrity-checked files holding a magic+version header followed by
length-prefixed, CRC32C-checksummed records.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file with named magics")
	rootCmd.PersistentFlags().String("magic", "", "8-byte magic number identifying the file kind")
	rootCmd.PersistentFlags().String("kind", "", "Named file kind, resolved to a magic via the config file")
}

// resolveMagic returns the magic to validate against, from --magic
// directly or from --kind via the config file.
func resolveMagic(cmd *cobra.Command) (string, error) {
	magic, _ := cmd.Flags().GetString("magic")
	kind, _ := cmd.Flags().GetString("kind")

	switch {
	case magic != "" && kind != "":
		return "", fmt.Errorf("--magic and --kind are mutually exclusive")
	case magic != "":
		if len(magic) != codec.MagicLength {
			return "", fmt.Errorf("magic number must be exactly %d bytes, got %d", codec.MagicLength, len(magic))
		}
		return magic, nil
	case kind != "":
		cfg, err := loadConfig(cmd)
		if err != nil {
			return "", err
		}
		return cfg.Magic(kind)
	default:
		return "", fmt.Errorf("either --magic or --kind is required")
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if !config.ConfigExists(path) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}
