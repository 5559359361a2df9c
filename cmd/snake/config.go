package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-tui/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the file search and flag overrides,
as YAML. With --defaults the embedded default file is printed instead,
which is a good starting point for ~/.snake/snake.yaml.

Examples:
  snake config
  snake config --difficulty hard
  snake config --defaults > ~/.snake/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(cmd *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
