package tetris

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// Phase is the state machine position of the active piece.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLineClearing
	PhaseGameOver
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLineClearing:
		return "line_clearing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// latch gates rotation so that a held key rotates only once.
type latch bool

const (
	latchArmed    latch = true
	latchDisarmed latch = false
)

// Game implements the falling-block game. All mutable state lives here and
// is touched only by the goroutine calling Step and Render.
type Game struct {
	cfg      config.TetrisConfig
	schedule *config.SpeedSchedule
	logger   *log.Logger
	rng      *rand.Rand

	field *Field

	// Active piece
	current  Variant
	rotation Rotation
	pos      Pos
	rotate   latch

	phase        Phase
	paused       bool
	tick         uint64 // Total ticks since reset
	speedCounter int    // Ticks since last force-down
	speed        int    // Ticks per force-down
	pieces       int
	lines        int
	score        int

	// Rows marked clearing, drained when clearTicks reaches the delay
	completed  []int
	clearTicks int
}

// New creates a game from the given options. A zero Config selects the
// built-in defaults and a nil Logger discards all records.
func New(opts registry.Options) *Game {
	cfg := opts.Config
	if cfg == (config.TetrisConfig{}) {
		cfg = config.DefaultTetrisConfig()
	}
	cfg = cfg.Normalize()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		cfg:      cfg,
		schedule: config.NewSpeedSchedule(cfg.Difficulty),
		logger:   logger.WithPrefix(ID),
	}
}

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.field = NewField(g.cfg.Field.Width, g.cfg.Field.Height)
	g.tick = 0
	g.speedCounter = 0
	g.speed = g.schedule.Initial()
	g.pieces = 0
	g.lines = 0
	g.score = 0
	g.paused = false
	g.completed = nil
	g.clearTicks = 0

	g.logger.Info("game started", "seed", cfg.Seed,
		"width", g.field.Width(), "height", g.field.Height(), "speed", g.speed)
	g.spawn()
}

// Step advances the game by one tick, consuming at most the given input.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.phase == PhaseGameOver {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63()})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && g.phase != PhaseGameOver {
		g.paused = !g.paused
	}

	if g.phase == PhaseGameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	// Completed lines stay visible for a while before they collapse
	if g.phase == PhaseLineClearing {
		g.clearTicks++
		if g.clearTicks >= g.cfg.Timing.ClearDelayTicks {
			g.finishClear()
		}
		return core.StepResult{State: g.State()}
	}

	// Timing
	g.speedCounter = (g.speedCounter + 1) % g.cfg.Timing.TickCeiling
	forceDown := g.speedCounter >= g.speed
	if forceDown {
		g.speedCounter = 0
	}

	// Input
	g.processInput(input)

	// Gravity
	if forceDown {
		g.forceDown()
	}

	return core.StepResult{State: g.State()}
}

// processInput applies movement and rotation that fit.
func (g *Game) processInput(input core.InputFrame) {
	if input.Has(core.ActionLeft) && g.fits(g.rotation, g.pos.Add(-1, 0)) {
		g.pos.X--
	}
	if input.Has(core.ActionRight) && g.fits(g.rotation, g.pos.Add(1, 0)) {
		g.pos.X++
	}
	if input.Has(core.ActionDown) && g.fits(g.rotation, g.pos.Add(0, 1)) {
		g.pos.Y++
	}

	if !input.Has(core.ActionRotate) {
		g.rotate = latchArmed
		return
	}
	if g.rotate == latchArmed && g.fits(g.rotation.Next(), g.pos) {
		g.rotation = g.rotation.Next()
		g.rotate = latchDisarmed
	}
}

// forceDown moves the piece one row down or locks it in place.
func (g *Game) forceDown() {
	if g.fits(g.rotation, g.pos.Add(0, 1)) {
		g.pos.Y++
		return
	}
	g.lockPiece()
}

// lockPiece stamps the active piece, scores it and starts the next one.
func (g *Game) lockPiece() {
	g.field.Lock(g.current, g.rotation, g.pos)

	g.pieces++
	if next := g.schedule.Next(g.speed, g.pieces); next != g.speed {
		g.speed = next
		g.logger.Info("speed up", "pieces", g.pieces, "speed", g.speed)
	}

	rows := g.field.MarkCompleted(g.pos.Y)
	gained := LockScore(g.cfg.Scoring.LockPoints, g.cfg.Scoring.LineBonus, len(rows), g.cfg.Scoring.MaxLineCount)
	g.score += gained
	g.lines += len(rows)
	g.logger.Debug("piece locked", "variant", g.current, "x", g.pos.X, "y", g.pos.Y,
		"lines", len(rows), "points", gained)

	if len(rows) == 0 {
		g.spawn()
		return
	}

	g.completed = rows
	g.clearTicks = 0
	g.phase = PhaseLineClearing
	if g.cfg.Timing.ClearDelayTicks == 0 {
		g.finishClear()
	}
}

// finishClear drains the completed-lines buffer and spawns the next piece.
func (g *Game) finishClear() {
	g.field.Compact(g.completed)
	g.logger.Info("lines cleared", "rows", g.completed, "total", g.lines)
	g.completed = nil
	g.clearTicks = 0
	g.spawn()
}

// spawn places a random piece at the top center, ending the game if it
// does not fit.
func (g *Game) spawn() {
	g.phase = PhaseSpawning
	g.place(Variant(g.rng.Intn(VariantCount)))
}

// place makes v the active piece at the spawn pose.
func (g *Game) place(v Variant) {
	g.current = v
	g.rotation = 0
	g.pos = Pos{X: g.field.Width() / 2, Y: 0}
	g.rotate = latchArmed

	if !g.fits(g.rotation, g.pos) {
		g.phase = PhaseGameOver
		g.logger.Info("game over", "score", g.score, "pieces", g.pieces, "lines", g.lines)
		return
	}
	g.phase = PhaseFalling
}

func (g *Game) fits(r Rotation, pos Pos) bool {
	return g.field.Fits(g.current, r, pos)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
		Lines:    g.lines,
		Pieces:   g.pieces,
		Level:    g.Level(),
	}
}

// Busy reports whether the game is between pieces and would discard input.
// Callers holding queued actions should keep them until Busy is false.
func (g *Game) Busy() bool {
	return g.phase == PhaseLineClearing
}

// Level returns the 1-based difficulty level shown in the HUD.
func (g *Game) Level() int {
	return g.schedule.Level(g.pieces)
}
