package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the effective configuration to a file",
	Long: `Write the configuration the other commands would use, including any
--config file and --difficulty preset, as YAML.

The default path is ~/.snake/configs/snake.yaml, which is read on startup.

Examples:
  snake config
  snake config --difficulty hard --force
  snake config ./configs/snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
}

func runConfig(_ *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	path := config.DefaultPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no home directory, pass a path")
	}

	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
