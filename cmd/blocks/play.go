package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/logging"
	rawterm "github.com/vovakirdan/tui-blocks/internal/platform/term"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRaw        bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without an argument the tetris game is started.

Controls:
  Left/A/H      - Move left
  Right/D/L     - Move right
  Down/S/J      - Soft drop
  Up/W/K/Z/X/Space - Rotate
  P             - Pause
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Slow start, speeds up every 50 pieces
  normal - Default start, speeds up every 50 pieces
  hard   - Fast start, speeds up every 50 pieces
  fixed  - No progression, stays at the configured speed

Examples:
  blocks play
  blocks play --difficulty easy
  blocks play --config ./my-tetris.yaml
  blocks play --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRaw, "raw", false, "Drive the terminal directly instead of through Bubble Tea")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logPath, err := storage.ExpandHome(flagLogPath)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Open(logPath, flagLogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID, registry.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.DefaultConfig()
	rc.TickInterval = cfg.TickInterval()
	rc.Seed = seed
	if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}

	// Scores are optional, the game still works without them
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var final core.GameState
	if flagRaw {
		final, err = playRaw(cmd, game, store, logger, rc)
	} else {
		final, err = tui.Run(game, tui.Options{Config: rc, Store: store, Logger: logger})
	}
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Final score: %d\n", final.Score)
	return nil
}

// loadGameConfig resolves the YAML config and applies the difficulty flag.
func loadGameConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}

	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "":
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyTetrisPreset(&cfg, preset)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return cfg.Normalize(), nil
}

// playRaw runs the game on the raw terminal, saving every finished game.
func playRaw(cmd *cobra.Command, game registry.Game, store *storage.Store, logger *log.Logger, rc core.RuntimeConfig) (core.GameState, error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rawterm.Run(ctx, game, os.Stdin, os.Stdout, rawterm.Options{
		Config: rc,
		Title:  game.Title(),
		Logger: logger,
		OnGameOver: func(state core.GameState) {
			if store == nil || state.Score <= 0 {
				return
			}
			_, err := store.SaveResult(storage.Result{
				GameID: game.ID(),
				Score:  state.Score,
				Lines:  state.Lines,
				Pieces: state.Pieces,
				Level:  state.Level,
				Seed:   rc.Seed,
			})
			if err != nil {
				logger.Error("save score", "error", err)
			}
		},
	})
}
