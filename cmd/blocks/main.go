// blocks is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blocks play [game]       - Play (default: tetris)
//	blocks play --raw        - Play on the raw terminal without Bubble Tea
//	blocks scores [game]     - Show high scores
//	blocks list              - List available games
//	blocks config            - Print the default configuration
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.blocks/scores.db)
//	--log <path>        - Append diagnostics to this file (empty: off)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/registry"

	// Import games to register them
	_ "github.com/vovakirdan/tui-blocks/internal/games/tetris"
)

const defaultGame = "tetris"

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Falling blocks in your terminal",
	Long: `Blocks is a falling-block puzzle game played directly in the terminal.

Available commands:
  play     - Play a game
  scores   - View high scores
  list     - Show all available games
  config   - Print the default configuration

Examples:
  blocks play
  blocks play --difficulty hard
  blocks play --raw --seed 42
  blocks scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Append diagnostic log to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// gameArg returns the game named on the command line or the default one.
func gameArg(args []string) (string, error) {
	id := defaultGame
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown game %q (run 'blocks list' to see available games)", id)
	}
	return id, nil
}
