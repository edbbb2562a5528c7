package registry

import (
	"testing"

	"github.com/vovakirdan/cylitris/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return &stubGame{id: "test_b"} })
	Register("test_a", func() Game { return &stubGame{id: "test_a"} })

	if !Exists("test_a") {
		t.Fatal("test_a should exist")
	}
	if Exists("test_missing") {
		t.Error("test_missing should not exist")
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("ID() = %q, want test_a", g.ID())
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "test_a" || info.ID == "test_b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "test_a" || ids[1] != "test_b" {
		t.Errorf("List() not sorted: %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
}
