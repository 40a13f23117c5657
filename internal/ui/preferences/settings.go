package preferences

import (
	"time"

	"mindhaven/internal/core/model"
)

// Theme names accepted by the preference store.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings defines editable user preferences plus the small scalar
// values the app round-trips verbatim (last mood, draft, reminder time).
type Settings struct {
	Theme        string
	GentleMode   bool
	HighContrast bool

	SessionLength    time.Duration
	RemindersEnabled bool
	ReminderGap      time.Duration
	Autostart        bool

	APIBaseURL string
	CSRFToken  string

	LastMood         string
	LastMoodTime     time.Time
	LastReminderTime int64 // epoch millis
	CheckinDraft     string
}

// DefaultSettings returns default settings for MindHaven.
func DefaultSettings() Settings {
	return Settings{
		Theme:            ThemeLight,
		SessionLength:    25 * time.Minute,
		RemindersEnabled: true,
		ReminderGap:      2 * time.Hour,
		APIBaseURL:       "https://wellness.example.org",
	}
}

// SessionConfig converts settings to the focus timer configuration.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{Duration: settings.SessionLength}
}

// TrackerConfig converts settings to the engagement tracker configuration.
func (settings Settings) TrackerConfig(page string) model.TrackerConfig {
	return model.TrackerConfig{
		Page:              page,
		FlushInterval:     time.Minute,
		ReminderGap:       settings.ReminderGap,
		RemindersEnabled:  settings.RemindersEnabled,
		IdleAfter:         5 * time.Minute,
		IdleCheckInterval: 5 * time.Second,
	}
}
