package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the session has ended (quit or time limit)
	Paused   bool // Whether the game is paused
}

// EventKind identifies a side effect produced by a simulation tick.
type EventKind int

const (
	EventNone   EventKind = iota
	EventPickup           // A collectible was picked up
	EventSpawn            // A collectible was spawned
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "Pickup"
	case EventSpawn:
		return "Spawn"
	default:
		return "None"
	}
}

// Event is a fire-and-forget notification for platform collaborators
// (audio, logging). Games never wait on how an event is handled.
type Event struct {
	Kind   EventKind
	ID     uint64 // Collectible ID the event refers to
	Pos    Vec2   // World position where it happened
	Reward int    // Score delta caused by the event
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Pickups returns the number of pickup events in this result.
func (r StepResult) Pickups() int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == EventPickup {
			n++
		}
	}
	return n
}
