package session

import "time"

// State represents the current timer mode.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventType defines the type of timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
)

// Event represents a timer update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	At        time.Time
}
