package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second requested from the host (default 60)
	Seed     int64 // RNG seed for spawn rolls and scenery
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the coarse status the platform needs from a game.
type GameState struct {
	Score    int  // Floored score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the run is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Events raised during the tick, in the order they happened.
	Events []Event
}

// EventKind tags a discrete occurrence inside a tick.
type EventKind int

const (
	EventCollected EventKind = iota
	EventSlowed
	EventHit
	EventMilestone
	EventNewBest
	EventGameOver
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventCollected:
		return "collected"
	case EventSlowed:
		return "slowed"
	case EventHit:
		return "hit"
	case EventMilestone:
		return "milestone"
	case EventNewBest:
		return "new_best"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is one occurrence raised by the simulation. Value carries the
// kind-specific number (milestone threshold, final score) and Label carries
// a name (collectible type) or a quip.
type Event struct {
	Kind  EventKind
	Label string
	Value int
	Quip  string
}
