package animation

// Phase is one step of the breathing cycle.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold
	PhaseExhale
	PhaseRest
)

// Instruction returns the prompt shown for the phase.
func (phase Phase) Instruction() string {
	switch phase {
	case PhaseInhale:
		return "Breathe in"
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Breathe out"
	case PhaseRest:
		return "Rest"
	default:
		return ""
	}
}

// Frame is one rendered moment of the breathing circle.
type Frame struct {
	Phase    Phase
	Progress float64 // 0..1 within the phase
	Scale    float64 // circle size relative to its maximum
}

const (
	minScale = 0.35
	maxScale = 1.0
)
