package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
)

var (
	flagConfigWrite bool
	flagConfigCheck string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print, install or check the runner tuning",
	Long: `Print the built-in runner tuning as YAML.

With --write, the defaults are saved to ~/.trenches/configs/runner.yaml,
which "trenches play" picks up ahead of the built-in values. With --check,
a tuning file is parsed and validated without starting the game.

Examples:
  trenches config > my-runner.yaml
  trenches config --write
  trenches config --check ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Install the defaults as the user config")
	configCmd.Flags().StringVar(&flagConfigCheck, "check", "", "Validate a runner config file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	switch {
	case flagConfigCheck != "":
		cfg, err := config.LoadRunner(flagConfigCheck)
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid: %d lanes, speed %.0f to %.0f\n",
			flagConfigCheck, cfg.Player.LaneCount, cfg.World.InitialSpeed, cfg.World.MaxSpeed)
		return nil

	case flagConfigWrite:
		path := config.UserRunnerConfigPath()
		if path == "" {
			return fmt.Errorf("cannot locate home directory")
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, config.DefaultRunnerYAML(), 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	_, err := os.Stdout.Write(config.DefaultRunnerYAML())
	return err
}
