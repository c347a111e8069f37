package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the embedded default config as YAML. Save it to
~/.arcade/configs/flappy.yaml or pass it with --config to customize the game.

With --resolved, prints the config 'play' would use after applying
--config and --difficulty.

Examples:
  flappy config > ~/.arcade/configs/flappy.yaml
  flappy config --resolved --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the resolved config instead of the defaults")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagResolved {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}
	if preset, ok := config.ParseDifficulty(flagDifficulty); ok {
		config.ApplyFlappyPreset(&cfg, preset)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
