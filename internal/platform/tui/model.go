package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/input"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginLeft(2)

// Options configures a Bubble Tea session.
type Options struct {
	Config core.RuntimeConfig
	Store  *storage.Store // May be nil, scores are then not saved
	Logger *log.Logger
}

// sizer is implemented by games that know how much screen they need.
type sizer interface {
	Size() (width, height int)
}

// busy is implemented by games that cannot take input on some ticks.
type busy interface {
	Busy() bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	queue  *input.Queue
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	state    core.GameState
	quitting bool
	saved    bool // Whether the current game over has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = core.DefaultTickInterval
	}
	if s, ok := game.(sizer); ok {
		cfg.ScreenW, cfg.ScreenH = s.Size()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		queue:  input.NewQueue(),
		store:  opts.Store,
		logger: logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action bound to a key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.queue.Push(action)
	}
	return m, nil
}

// handleTick runs one simulation tick with at most one queued action.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Keys pressed while the game is busy wait in the queue
	action := core.ActionNone
	if b, ok := m.game.(busy); !ok || !b.Busy() {
		action, _ = m.queue.TryPop()
	}
	m.state = m.game.Step(core.FrameOf(action)).State

	switch {
	case m.state.GameOver && !m.saved:
		m.saveResult()
		m.saved = true
	case !m.state.GameOver:
		m.saved = false
	}

	return m, tickCmd(m.config.TickInterval)
}

// saveResult records a finished game. Storage failures are logged only.
func (m Model) saveResult() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	_, err := m.store.SaveResult(storage.Result{
		GameID: m.game.ID(),
		Score:  m.state.Score,
		Lines:  m.state.Lines,
		Pieces: m.state.Pieces,
		Level:  m.state.Level,
		Seed:   m.config.Seed,
	})
	if err != nil {
		m.logger.Error("save score", "error", err)
		return
	}
	m.logger.Info("score saved", "score", m.state.Score)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program and returns the final game state.
func Run(game registry.Game, opts Options) (core.GameState, error) {
	p := tea.NewProgram(NewModel(game, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if m, ok := final.(Model); ok {
		return m.State(), nil
	}
	return core.GameState{}, nil
}
