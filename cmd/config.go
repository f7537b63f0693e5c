package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration in effect: built-in defaults overlaid by --config
(or ~/.dugout/config.yaml). Use --write to save it as a starting point for edits.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&configWrite, "write", "w", "", "write the effective config to this path")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if configWrite != "" {
		if err := cfg.WriteYAML(configWrite); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", configWrite)
		return nil
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	return nil
}
