// Package registry maps game ids to factories. Games register from init()
// so frontends can create them by id without importing their packages.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

// Game is the interface the frontends drive. Games contain pure logic with
// no Bubble Tea dependency; the platform owns input mapping, timing and
// rendering to the terminal.
type Game interface {
	// ID returns the registry id (e.g., "runner"). Local run history is
	// stored under it.
	ID() string

	// Title returns the display name.
	Title() string

	// Reset starts a new run sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by in.Delta and reports the state and
	// events of this tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create instantiates the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
