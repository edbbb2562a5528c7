package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cylitris/internal/config"
	"github.com/vovakirdan/cylitris/internal/core"
	"github.com/vovakirdan/cylitris/internal/games/cylinder"
	"github.com/vovakirdan/cylitris/internal/storage"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

type harness struct {
	model Model
	clock *core.ManualClock
	store *storage.Store
	game  *cylinder.Game
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clk := core.NewManualClock(start)
	cfg := config.DefaultCylinderConfig()
	cfg.Input.ReleaseAfterMs = 300
	game := cylinder.New(cylinder.WithClock(clk), cylinder.WithConfig(cfg))

	m := NewModel(game, store,
		core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7},
		WithModelClock(clk),
	)
	return &harness{model: m, clock: clk, store: store, game: game}
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	h.model = m
	return cmd
}

func (h *harness) tick(t *testing.T, d time.Duration) {
	t.Helper()
	h.clock.Advance(d)
	h.send(t, TickMsg(h.clock.Now()))
}

func TestKeyMapActions(t *testing.T) {
	k := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{runes("x"), core.ActionRotate},
		{keySpace, core.ActionHardDrop},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionToggleView},
		{runes("p"), core.ActionPause},
		{runes("r"), core.ActionRestart},
		{keyDown, core.ActionNone},
		{runes("q"), core.ActionNone},
		{runes("y"), core.ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, k.Action(tt.msg), "key %q", tt.msg.String())
	}
}

func TestModelHardDrop(t *testing.T) {
	h := newHarness(t)

	h.send(t, keySpace)
	h.tick(t, 16*time.Millisecond)

	assert.Equal(t, 1, h.model.State().Pieces)
	assert.Equal(t, 1, h.game.Snapshot().Pieces)
}

func TestModelSoftDropHold(t *testing.T) {
	h := newHarness(t)

	h.send(t, keyDown)
	h.tick(t, 16*time.Millisecond)
	assert.True(t, h.game.Snapshot().SoftDrop)

	// repeats keep it held
	for i := 0; i < 5; i++ {
		h.clock.Advance(100 * time.Millisecond)
		h.send(t, keyDown)
		h.tick(t, 0)
		assert.True(t, h.game.Snapshot().SoftDrop, "repeat %d", i)
	}

	h.tick(t, 300*time.Millisecond)
	assert.False(t, h.game.Snapshot().SoftDrop, "released after the quiet period")
	assert.Equal(t, 500*time.Millisecond, h.game.Snapshot().Interval)
}

func TestModelQuitJournalsRun(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 3; i++ {
		h.send(t, keySpace)
		h.tick(t, 16*time.Millisecond)
	}
	h.clock.Advance(2 * time.Second)

	cmd := h.send(t, runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, h.model.IsQuitting())
	assert.Empty(t, h.model.View())

	runs, err := h.store.RecentRuns(cylinder.IDCylinder, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, storage.EndQuit, runs[0].EndReason)
	assert.Equal(t, 3, runs[0].Pieces)
	assert.Equal(t, 2*time.Second, runs[0].Duration)
}

func TestModelEmptyRunNotJournaled(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 16*time.Millisecond)
	h.send(t, runes("q"))

	runs, err := h.store.RecentRuns(cylinder.IDCylinder, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestModelRestartJournalsRun(t *testing.T) {
	h := newHarness(t)

	h.send(t, keySpace)
	h.tick(t, 16*time.Millisecond)
	h.send(t, runes("r"))
	h.tick(t, 16*time.Millisecond)

	assert.Equal(t, 0, h.model.State().Pieces)

	runs, err := h.store.RecentRuns(cylinder.IDCylinder, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, storage.EndRestart, runs[0].EndReason)

	// the new run is journaled separately
	h.send(t, keySpace)
	h.tick(t, 16*time.Millisecond)
	h.send(t, runes("q"))
	runs, _ = h.store.RecentRuns(cylinder.IDCylinder, 10)
	assert.Len(t, runs, 2)
}

func TestModelTopOutJournalsOnce(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 200 && !h.model.State().GameOver; i++ {
		h.send(t, keySpace)
		h.tick(t, 16*time.Millisecond)
	}
	require.True(t, h.model.State().GameOver)

	// leaving after the run ended must not record it again
	h.send(t, keyEsc)
	assert.True(t, h.model.BackToMenu())

	runs, err := h.store.RecentRuns(cylinder.IDCylinder, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, storage.EndToppedOut, runs[0].EndReason)
	assert.Equal(t, h.model.State().Pieces, runs[0].Pieces)
}

func TestModelEscPausesThenLeaves(t *testing.T) {
	h := newHarness(t)

	h.send(t, keyEsc)
	h.tick(t, 16*time.Millisecond)
	assert.True(t, h.model.State().Paused)
	assert.False(t, h.model.BackToMenu())

	h.send(t, keyEsc)
	assert.True(t, h.model.BackToMenu())
}

func TestModelView(t *testing.T) {
	h := newHarness(t)
	h.tick(t, 16*time.Millisecond)

	out := h.model.View()
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 30, "game rows plus the help footer")
	assert.Contains(t, out, "Cylinder")
	assert.Contains(t, lines[len(lines)-1], "drop")

	// no room for the footer on a short terminal
	h.send(t, tea.WindowSizeMsg{Width: 80, Height: 25})
	lines = strings.Split(h.model.View(), "\n")
	assert.Len(t, lines, 25)
	assert.NotContains(t, h.model.View(), "Window too small")
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Hex(core.RGBA{R: 1, A: 1}))
	assert.Equal(t, "#000000", Hex(core.RGBA{R: 1, G: 1, B: 1, A: 0}))
	assert.Equal(t, "#808080", Hex(core.RGBA{R: 1, G: 1, B: 1, A: 0.5}))
	assert.Equal(t, "#ffffff", Hex(core.RGBA{R: 2, G: 2, B: 2, A: 1}), "clamped")
}

func TestScreenRendererKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorAccent)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "xyz")

	out := NewScreenRenderer(nil).Render(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[0], "cd")
	assert.Equal(t, "xyz   ", lines[1], "uncolored runs are written as is")
}
