package cmd

import (
	"fmt"

	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Writes the built-in configuration to a file so it can be edited.

The file is written as TOML when the path ends in .toml and as JSON otherwise.
Existing files are never overwritten.

Examples:
  interview-coach init
  interview-coach init ./coach.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if len(args) > 0 {
		path = args[0]
	}

	path, err = config.InitConfig(path)
	if err != nil {
		err = fmt.Errorf("failed to initialize config: %w", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return err
}
