// arcade hosts educational mini-games in the terminal, over SSH and in the browser.
//
// Usage:
//
//	arcade list              - List game kinds and available content
//	arcade menu              - Start menu to pick games interactively
//	arcade sort <content>    - Play a Speed Sorting game
//	arcade maze <content>    - Host a Maze Chase game for the browser runtime
//	arcade serve             - Start SSH (and optionally web) servers
//	arcade scores [game]     - Show the results of a game
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.arcade/configs, ./configs)
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--fps <rate>        - Set tick rate (default: 20)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagLogLevel string

	// appConfig is loaded before any command runs.
	appConfig config.ArcadeConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Edu Arcade - Learning games in your terminal",
	Long: `Edu Arcade hosts educational mini-games: Speed Sorting runs right in the
terminal, Maze Chase runs a game engine in the browser while the terminal keeps score.

Available commands:
  list     - Show game kinds and content
  menu     - Interactive game picker menu
  sort     - Play a Speed Sorting game directly
  maze     - Host a Maze Chase game
  serve    - Start SSH server for remote play
  scores   - View results

Examples:
  arcade list
  arcade sort animals
  arcade sort ./content/sorting/fruits.yaml
  arcade maze capitals
  arcade serve --ssh :2222 --web :8080
  arcade scores speed-sorting`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (empty = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(mazeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.TUI.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.TUI.LogLevel = flagLogLevel
	}
	appConfig = cfg
	return nil
}
