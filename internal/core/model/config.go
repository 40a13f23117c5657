package model

import "time"

// SessionConfig contains runtime settings for the focus-session timer.
type SessionConfig struct {
	Duration time.Duration
}

// TrackerConfig contains runtime settings for the engagement tracker.
type TrackerConfig struct {
	Page              string
	FlushInterval     time.Duration
	ReminderGap       time.Duration
	RemindersEnabled  bool
	IdleAfter         time.Duration
	IdleCheckInterval time.Duration
}
