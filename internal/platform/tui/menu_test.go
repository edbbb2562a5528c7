package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cylitris/internal/core"
	"github.com/vovakirdan/cylitris/internal/games/cylinder"
	"github.com/vovakirdan/cylitris/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm, cmd
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)

	view := m.View()
	assert.Contains(t, view, "Cylinder")
	assert.Contains(t, view, "Cylinder (Unrolled)")

	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	require.NotNil(t, m.Selected())
	assert.Equal(t, cylinder.IDUnrolled, m.Selected().GameID, "cursor stops at the last item")
}

func TestMenuRunBoardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)
	tab, _ := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, tab.WantsRunBoard())
	assert.Nil(t, tab.Selected())

	quit, _ := updateMenu(t, m, runes("q"))
	assert.True(t, quit.IsQuitting())
	assert.Empty(t, quit.View())
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}, nil)
	m, _ = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	cfg := m.Config()
	assert.Equal(t, 120, cfg.ScreenW)
	assert.Equal(t, 40, cfg.ScreenH)
	assert.Equal(t, 30, cfg.TickRate)
}

func TestMenuShowsBest(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveRun(storage.RunRecord{GameID: cylinder.IDCylinder, Pieces: 20, Rows: 4, EndReason: storage.EndToppedOut})
	require.NoError(t, err)

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)
	assert.Contains(t, m.View(), "best 4 rows")
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "abcd", centerText("abcd", 3))
}

func TestRunBoard(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		_, err := store.SaveRun(storage.RunRecord{
			GameID:    cylinder.IDCylinder,
			Pieces:    10 * i,
			Rows:      i,
			Duration:  time.Duration(i) * time.Minute,
			EndReason: storage.EndToppedOut,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	m := NewRunBoardModel(store, 100, 30, nil)
	require.Len(t, m.games, 2)
	assert.Equal(t, cylinder.IDCylinder, m.games[0].ID)
	assert.Len(t, m.runs, 3)
	assert.Equal(t, 30, m.runs[0].Pieces, "newest first")
	assert.Equal(t, "3 runs  •  60 pieces  •  6 rows  •  best 3  •  6:00 played", m.totalsLine())

	view := m.View()
	assert.Contains(t, view, "RUNS - Cylinder")
	assert.Contains(t, view, "topped out")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunBoardModel)
	assert.Equal(t, cylinder.IDUnrolled, m.games[m.gameCursor].ID)
	assert.Empty(t, m.runs)
	assert.Equal(t, "No runs yet", m.totalsLine())
	assert.Contains(t, m.View(), "No runs recorded yet")

	// wraps around both ways
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunBoardModel)
	assert.Equal(t, 0, m.gameCursor)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(RunBoardModel)
	assert.Equal(t, 1, m.gameCursor)

	next, _ = m.Update(keyEsc)
	m = next.(RunBoardModel)
	assert.True(t, m.IsGoingBack())
	assert.False(t, m.IsQuitting())
}

func TestRunBoardWithoutStore(t *testing.T) {
	m := NewRunBoardModel(nil, 60, 20, nil)
	assert.False(t, m.showSidebar)
	assert.True(t, strings.Contains(m.View(), "Run journal unavailable"))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61*time.Second + 400*time.Millisecond, "1:01"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
