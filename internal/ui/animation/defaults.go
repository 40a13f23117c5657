package animation

import "time"

// DefaultConfig returns the standard 4-4-6-2 breathing cycle.
func DefaultConfig() Config {
	return Config{
		Inhale:        4 * time.Second,
		Hold:          4 * time.Second,
		Exhale:        6 * time.Second,
		Rest:          2 * time.Second,
		FrameInterval: 50 * time.Millisecond,
	}
}

// GentleConfig returns a slower cycle without the hold, for the
// reduced-stimulus preference.
func GentleConfig() Config {
	return Config{
		Inhale:        5 * time.Second,
		Exhale:        7 * time.Second,
		Rest:          3 * time.Second,
		FrameInterval: 80 * time.Millisecond,
	}
}
