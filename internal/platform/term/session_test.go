package term

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/input"
)

// fakeGame ends once it has received `want` actions.
type fakeGame struct {
	want    int
	actions []core.Action
	steps   int
	resets  int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.actions = nil
	g.steps = 0
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	if !g.over() {
		for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionDown, core.ActionRotate} {
			if in.Has(a) {
				g.actions = append(g.actions, a)
			}
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "#A#")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: len(g.actions) * 25, GameOver: g.over()}
}

func (g *fakeGame) Size() (int, int) { return 3, 1 }

func (g *fakeGame) over() bool { return g.want > 0 && len(g.actions) >= g.want }

type failAfter struct {
	n int
}

func (w *failAfter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("terminal gone")
	}
	w.n--
	return len(p), nil
}

func testOptions() Options {
	return Options{Config: core.RuntimeConfig{TickInterval: time.Millisecond}, Title: "fake"}
}

type runResult struct {
	state core.GameState
	err   error
}

func TestRunQuitKey(t *testing.T) {
	var out bytes.Buffer
	g := &fakeGame{}

	_, err := Run(context.Background(), g, strings.NewReader("q"), &out, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, g.resets)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, ansi.HideCursor), "cursor hidden on entry")
	assert.Contains(t, got, ansi.ShowCursor, "cursor restored on exit")
}

func TestRunAppliesActionsInOrder(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	g := &fakeGame{want: 3}
	gameOvers := 0
	over := make(chan struct{})

	opts := testOptions()
	opts.OnGameOver = func(s core.GameState) {
		gameOvers++
		if gameOvers == 1 {
			close(over)
		}
	}

	done := make(chan runResult, 1)
	go func() {
		state, err := Run(context.Background(), g, pr, &out, opts)
		done <- runResult{state, err}
	}()

	_, err := pw.Write([]byte("a\x1b[Cs"))
	require.NoError(t, err)

	select {
	case <-over:
	case <-time.After(5 * time.Second):
		t.Fatal("game never ended")
	}
	// Let a few more ticks pass with the game already over
	time.Sleep(10 * time.Millisecond)

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, []core.Action{core.ActionLeft, core.ActionRight, core.ActionDown}, g.actions)
	assert.Equal(t, 1, gameOvers, "game over reported once")
	assert.True(t, res.state.GameOver)
	assert.Equal(t, 75, res.state.Score)
	assert.Contains(t, out.String(), ansi.SetWindowTitle("fake - Score: 75"))
}

func TestRunSinkFailureAborts(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	// Enter succeeds, the first frame fails
	_, err := Run(context.Background(), &fakeGame{}, pr, &failAfter{n: 1}, testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
}

func TestRunCancelledContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Run(ctx, &fakeGame{}, pr, &out, testOptions())
	assert.NoError(t, err)
}

func TestRunInputErrorActsAsQuit(t *testing.T) {
	var out bytes.Buffer
	// EOF with no quit key
	_, err := Run(context.Background(), &fakeGame{}, strings.NewReader(""), &out, testOptions())
	assert.NoError(t, err)
}

// stallGame is busy for the first `stall` steps.
type stallGame struct {
	fakeGame
	stall int
}

func (g *stallGame) Busy() bool { return g.stall > 0 }

func (g *stallGame) Step(in core.InputFrame) core.StepResult {
	if g.stall > 0 {
		g.stall--
	}
	return g.fakeGame.Step(in)
}

func TestNextActionWaitsWhileBusy(t *testing.T) {
	q := input.NewQueue()
	q.Push(core.ActionLeft)
	q.Push(core.ActionRotate)

	g := &stallGame{stall: 2}
	for i := 0; i < 2; i++ {
		a := nextAction(g, q)
		assert.Equal(t, core.ActionNone, a, "step %d", i)
		g.Step(core.FrameOf(a))
	}
	assert.Equal(t, 2, q.Len(), "queued keys kept while busy")
	assert.Empty(t, g.actions)

	for i := 0; i < 3; i++ {
		g.Step(core.FrameOf(nextAction(g, q)))
	}
	assert.Equal(t, []core.Action{core.ActionLeft, core.ActionRotate}, g.actions)
	assert.Zero(t, q.Len())
}

func TestNextActionWithoutBusy(t *testing.T) {
	q := input.NewQueue()
	q.Push(core.ActionDown)
	assert.Equal(t, core.ActionDown, nextAction(&fakeGame{}, q))
	assert.Equal(t, core.ActionNone, nextAction(&fakeGame{}, q))
}
