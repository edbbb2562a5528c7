// Package cylinder adapts the cylindrical falling-block engine to the
// platform: it maps actions onto engine operations, samples the clock
// once per frame and draws the grid in one of two projections.
package cylinder

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/cylitris/internal/config"
	"github.com/vovakirdan/cylitris/internal/core"
	"github.com/vovakirdan/cylitris/internal/games/cylinder/engine"
	"github.com/vovakirdan/cylitris/internal/registry"
)

// Registered game IDs. Both play the same game; they differ only in the
// view they start with.
const (
	IDCylinder = "cylinder"
	IDUnrolled = "cylinder_unrolled"
)

// pieceStream is the PCG stream for piece selection.
const pieceStream = 0x5851f42d4c957f2d

// Settings chosen on the command line, applied by Reset.
var (
	configPath   string
	speedPreset  config.SpeedPreset
	viewOverride string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetSpeedPreset sets the gravity speed preset.
func SetSpeedPreset(preset config.SpeedPreset) {
	speedPreset = preset
}

// SetView forces the starting view ("cylinder" or "unrolled").
// The empty string uses the game ID and the config file.
func SetView(mode string) {
	viewOverride = mode
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the system clock.
func WithClock(c core.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithConfig uses cfg instead of loading the config file.
func WithConfig(cfg config.CylinderConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgFixed = true
	}
}

// Game implements registry.Game for the cylinder.
type Game struct {
	id       string
	clock    core.Clock
	cfg      config.CylinderConfig
	cfgFixed bool

	engine *engine.Engine
	seed   uint64 // piece source seed, reused on restart
	view   string
	frame  uint64

	paused   bool
	tooSmall bool
	halted   bool // gravity timer stopped since haltedAt
	haltedAt time.Time
}

// New creates a game that starts in the cylinder view.
func New(opts ...Option) *Game {
	return newGame(IDCylinder, opts)
}

// NewUnrolled creates a game that starts in the unrolled view.
func NewUnrolled(opts ...Option) *Game {
	return newGame(IDUnrolled, opts)
}

func newGame(id string, opts []Option) *Game {
	g := &Game{
		id:    id,
		clock: core.SystemClock{},
		cfg:   config.DefaultCylinderConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func init() {
	registry.Register(IDCylinder, func() registry.Game {
		return New()
	})
	registry.Register(IDUnrolled, func() registry.Game {
		return NewUnrolled()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.id == IDUnrolled {
		return "Cylinder (Unrolled)"
	}
	return "Cylinder"
}

// Config returns the configuration in effect.
func (g *Game) Config() config.CylinderConfig {
	return g.cfg
}

// Reset loads configuration and starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgFixed {
		loaded, err := config.LoadCylinder(configPath)
		if err != nil {
			loaded = config.DefaultCylinderConfig()
		}
		if speedPreset != "" {
			config.ApplySpeedPreset(&loaded, speedPreset)
		}
		g.cfg = loaded
	}

	now := g.clock.Now()
	g.frame = 0
	g.paused = false
	g.view = g.startView()
	g.tooSmall = !g.fits(cfg.ScreenW, cfg.ScreenH)
	g.halted = g.tooSmall
	g.haltedAt = now

	g.seed = uint64(cfg.Seed)
	g.engine = engine.New(engineSettings(g.cfg), g.pieceSource(), now)
}

// pieceSource returns a fresh generator for the run's seed, so every run
// with the same seed deals the same pieces.
func (g *Game) pieceSource() engine.Source {
	return rand.New(rand.NewPCG(g.seed, g.seed^pieceStream))
}

func (g *Game) startView() string {
	switch {
	case viewOverride == config.ViewCylinder || viewOverride == config.ViewUnrolled:
		return viewOverride
	case g.id == IDUnrolled:
		return config.ViewUnrolled
	case g.cfg.View.Mode == config.ViewUnrolled:
		return config.ViewUnrolled
	default:
		return config.ViewCylinder
	}
}

func engineSettings(cfg config.CylinderConfig) engine.Settings {
	return engine.Settings{
		Width:          cfg.Grid.Width,
		Height:         cfg.Grid.Height,
		FallInterval:   cfg.FallInterval(),
		SoftDropFactor: cfg.Timing.SoftDropFactor,
		Smoothing:      float32(cfg.Timing.SlideSmoothing),
		SpawnRow:       cfg.Gameplay.SpawnRow,
		TopOut:         cfg.Gameplay.TopOut,
	}
}

// Step applies the frame's actions in arrival order, then advances
// gravity unless the game is paused or the window is too small.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++
	now := g.clock.Now()

	for _, a := range in.Actions {
		g.apply(a, now)
	}

	g.updateHalt(now)
	if !g.halted {
		g.engine.Tick(now)
	}

	return core.StepResult{
		State:  g.State(),
		Events: g.engine.DrainEvents(),
	}
}

func (g *Game) apply(a core.Action, now time.Time) {
	switch a {
	case core.ActionPause:
		if !g.engine.ToppedOut() {
			g.paused = !g.paused
		}
		return
	case core.ActionRestart:
		g.engine.Restart(g.pieceSource(), now)
		g.paused = false
		g.halted = false
		return
	case core.ActionToggleView:
		g.ToggleView()
		return
	case core.ActionSoftDropStart:
		g.engine.SetSoftDrop(true)
		return
	case core.ActionSoftDropEnd:
		g.engine.SetSoftDrop(false)
		return
	}

	if g.paused || g.tooSmall {
		return
	}

	switch a {
	case core.ActionLeft:
		g.engine.MoveHorizontal(-1)
	case core.ActionRight:
		g.engine.MoveHorizontal(1)
	case core.ActionRotate:
		g.engine.Rotate()
	case core.ActionHardDrop:
		g.engine.HardDrop()
	}
}

// updateHalt stops the gravity timer while halted and gives the halted
// time back when play resumes.
func (g *Game) updateHalt(now time.Time) {
	halted := g.paused || g.tooSmall
	switch {
	case halted && !g.halted:
		g.halted = true
		g.haltedAt = now
	case !halted && g.halted:
		g.halted = false
		g.engine.Shift(now.Sub(g.haltedAt))
	}
}

// ToggleView switches between the cylinder and unrolled projections.
func (g *Game) ToggleView() {
	if g.view == config.ViewUnrolled {
		g.view = config.ViewCylinder
	} else {
		g.view = config.ViewUnrolled
	}
}

// View returns the current projection name.
func (g *Game) View() string {
	return g.view
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	stats := g.engine.Stats()
	return core.GameState{
		Pieces:   stats.Pieces,
		Rows:     stats.Rows,
		GameOver: g.engine.ToppedOut(),
		Paused:   g.paused,
	}
}
