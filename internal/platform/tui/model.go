package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cylitris/internal/config"
	"github.com/vovakirdan/cylitris/internal/core"
	"github.com/vovakirdan/cylitris/internal/registry"
	"github.com/vovakirdan/cylitris/internal/storage"
)

// configured is implemented by games that expose their loaded config.
type configured interface {
	Config() config.CylinderConfig
}

// sized is implemented by games that know their minimum screen size.
type sized interface {
	MinSize() (w, h int)
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRenderer styles output for a specific terminal (an SSH session).
func WithRenderer(lr *lipgloss.Renderer) ModelOption {
	return func(m *Model) { m.lr = lr }
}

// WithModelClock replaces the system clock used for input timing and
// run durations.
func WithModelClock(c core.Clock) ModelOption {
	return func(m *Model) { m.clock = c }
}

// Model is the Bubble Tea model for playing one game.
// It journals every finished run to the store.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	lr       *lipgloss.Renderer
	renderer *ScreenRenderer
	store    *storage.Store
	logger   *log.Logger
	clock    core.Clock
	config   core.RuntimeConfig

	keys       KeyMap
	help       help.Model
	hold       HoldDetector
	inputFrame core.InputFrame
	gameState  core.GameState

	runStart   time.Time
	runDone    bool // current run already journaled
	quitting   bool
	backToMenu bool
}

// NewModel creates a play model and starts the first run.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		store:      store,
		logger:     log.New(io.Discard),
		clock:      core.SystemClock{},
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		hold:       NewHoldDetector(DefaultReleaseAfter),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.renderer = NewScreenRenderer(m.lr)
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, cfg.ScreenH)

	m.startRun()
	return m
}

// startRun resets the game with the current runtime config.
func (m *Model) startRun() {
	m.layoutScreen()
	rc := m.config
	rc.ScreenH = m.screen.Height()
	m.game.Reset(rc)

	m.gameState = m.game.State()
	m.beginRun()
	if c, ok := m.game.(configured); ok {
		m.hold.SetReleaseAfter(c.Config().ReleaseAfter())
	}
}

func (m *Model) beginRun() {
	m.runStart = m.clock.Now()
	m.runDone = false
	m.hold.Reset()
	m.logger.Info("run started", "game", m.game.ID(), "seed", m.config.Seed)
}

// finishRun journals the current run once. Runs that never placed a
// piece are not recorded.
func (m *Model) finishRun(reason string) {
	if m.runDone {
		return
	}
	m.runDone = true

	duration := m.clock.Now().Sub(m.runStart)
	m.logger.Info("run ended",
		"game", m.game.ID(),
		"reason", reason,
		"pieces", m.gameState.Pieces,
		"rows", m.gameState.Rows,
		"duration", duration.Round(time.Second),
	)

	if m.store == nil || m.gameState.Pieces == 0 {
		return
	}
	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:    m.game.ID(),
		Pieces:    m.gameState.Pieces,
		Rows:      m.gameState.Rows,
		Duration:  duration,
		EndReason: reason,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "id", id)
}

// Init starts the tick loop. The run itself was started by NewModel.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layoutScreen()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRun(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.gameState.Paused || m.gameState.GameOver {
			m.finishRun(storage.EndQuit)
			m.backToMenu = true
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.SoftDrop):
		m.inputFrame.Set(m.hold.Press(m.clock.Now()))

	default:
		m.inputFrame.Set(m.keys.Action(msg))
	}

	return m, nil
}

// handleTick runs one simulation step with the actions gathered since
// the previous tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	m.inputFrame.Set(m.hold.Poll(now))

	restart := m.inputFrame.Has(core.ActionRestart)
	if restart {
		m.finishRun(storage.EndRestart)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if restart {
		m.beginRun()
	}
	m.handleEvents(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) handleEvents(events []core.Event) {
	for _, ev := range events {
		switch ev.Type {
		case core.EventPiecePlaced:
			m.logger.Debug("piece placed", "seed", ev.Seed)
		case core.EventRowsCleared:
			m.logger.Debug("rows cleared", "rows", ev.Rows, "total", m.gameState.Rows)
		case core.EventToppedOut:
			m.finishRun(storage.EndToppedOut)
		}
	}
}

// layoutScreen sizes the game screen, keeping rows for the help footer
// when the game still fits without them.
func (m *Model) layoutScreen() {
	h := m.config.ScreenH
	if m.showFooter() {
		h -= m.footerHeight()
	}
	if m.screen.Width() != m.config.ScreenW || m.screen.Height() != h {
		m.screen.Resize(m.config.ScreenW, h)
	}
}

func (m *Model) showFooter() bool {
	s, ok := m.game.(sized)
	if !ok {
		return false
	}
	_, minH := s.MinSize()
	return m.config.ScreenH-m.footerHeight() >= minH
}

func (m *Model) footerHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	n := 1
	for _, col := range m.keys.FullHelp() {
		n = max(n, len(col))
	}
	return n
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.layoutScreen()
	m.game.Render(m.screen)
	out := m.renderer.Render(m.screen)

	if m.screen.Height() < m.config.ScreenH {
		helpStyle := m.renderer.lr.NewStyle().Foreground(lipgloss.Color("241"))
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// State returns the latest game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, WithLogger(logger))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
