// Package registry maps game IDs to factories. Game packages register
// their modes from init(), and the platform instantiates them by ID
// without importing any game package directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cylitris/internal/core"
)

// Game is what the platform drives every frame.
// Implementations are pure logic: no Bubble Tea, no I/O, no global time.
type Game interface {
	// ID returns the stable identifier used on the command line and in
	// the run journal (e.g. "cylinder").
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts a fresh run.
	Reset(cfg core.RuntimeConfig)

	// Step consumes one frame of input and advances the simulation.
	// Events produced during the frame are returned with the state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State returns counters and flags for the current run.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory.
// Panics if the ID is empty or already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
