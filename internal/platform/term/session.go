// Package term runs a game directly on a raw terminal: keys are read byte by
// byte on a background goroutine and frames are blitted with cursor
// positioning, one simulation tick per loop iteration.
package term

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/input"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/render"
)

// Options configures a raw terminal session.
type Options struct {
	// Config is passed to Reset. A zero TickInterval means
	// core.DefaultTickInterval.
	Config core.RuntimeConfig

	// Title prefixes the score in the terminal window title.
	Title string

	Logger *log.Logger

	// OnGameOver is called once each time a game ends.
	OnGameOver func(core.GameState)
}

// sizer is implemented by games that know how much screen they need.
type sizer interface {
	Size() (width, height int)
}

// busy is implemented by games that cannot take input on some ticks.
type busy interface {
	Busy() bool
}

// nextAction pops one queued action unless the game is busy, in which case
// the queue is left untouched for a later tick.
func nextAction(game registry.Game, queue *input.Queue) core.Action {
	if b, ok := game.(busy); ok && b.Busy() {
		return core.ActionNone
	}
	action, _ := queue.TryPop()
	return action
}

// Run plays game until the user quits, input fails, ctx is cancelled or the
// output fails. When in is a terminal it is switched to raw mode and restored
// on every exit path, panics included. The final game state is returned along
// with any output error.
func Run(ctx context.Context, game registry.Game, in io.Reader, out io.Writer, opts Options) (core.GameState, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Config.TickInterval <= 0 {
		opts.Config.TickInterval = core.DefaultTickInterval
	}

	if f, ok := in.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		saved, err := xterm.MakeRaw(fd)
		if err != nil {
			return core.GameState{}, fmt.Errorf("term: enable raw mode: %w", err)
		}
		defer func() {
			if err := xterm.Restore(fd, saved); err != nil {
				logger.Error("restore terminal", "error", err)
			}
		}()
	}

	width, height := opts.Config.ScreenW, opts.Config.ScreenH
	if s, ok := game.(sizer); ok {
		width, height = s.Size()
	}
	screen := core.NewScreen(width, height)

	sink := render.NewANSISink(out, opts.Title)
	if err := sink.Enter(); err != nil {
		return core.GameState{}, fmt.Errorf("term: %w", err)
	}
	defer func() {
		//nolint:errcheck // Best-effort, the terminal may already be gone
		sink.Leave(height)
	}()

	queue := input.NewQueue()
	var stop input.Signal
	go func() {
		err := input.Listen(in, queue, &stop)
		logger.Debug("input reader stopped", "reason", err)
	}()

	game.Reset(opts.Config)
	logger.Info("session started", "game", game.ID(), "tick", opts.Config.TickInterval)

	state, err := loop(ctx, game, queue, &stop, sink, screen, opts)
	if err != nil {
		logger.Error("session aborted", "error", err)
		return state, err
	}
	logger.Info("session finished", "score", state.Score)
	return state, nil
}

// loop steps the game once per tick until stopped.
func loop(ctx context.Context, game registry.Game, queue *input.Queue, stop *input.Signal,
	sink render.Sink, screen *core.Screen, opts Options,
) (core.GameState, error) {
	ticker := time.NewTicker(opts.Config.TickInterval)
	defer ticker.Stop()

	state := game.State()
	over := state.GameOver
	for {
		select {
		case <-ctx.Done():
			return state, nil
		case <-ticker.C:
		}
		if stop.Raised() {
			return state, nil
		}

		state = game.Step(core.FrameOf(nextAction(game, queue))).State

		if state.GameOver && !over && opts.OnGameOver != nil {
			opts.OnGameOver(state)
		}
		over = state.GameOver

		game.Render(screen)
		if err := sink.Present(screen, render.Origin, state.Score); err != nil {
			return state, fmt.Errorf("term: %w", err)
		}
	}
}
