package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mindhaven/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// yamlSettings mirrors the client-side key names of the web app for the
// preference values it round-trips verbatim; app-level settings use
// snake_case keys.
type yamlSettings struct {
	Theme        string `yaml:"theme"`
	GentleMode   bool   `yaml:"gentleMode"`
	HighContrast bool   `yaml:"highContrast"`

	SessionLengthMinutes int    `yaml:"session_length_minutes"`
	RemindersEnabled     *bool  `yaml:"reminders_enabled"`
	ReminderGapMinutes   int    `yaml:"reminder_gap_minutes"`
	Autostart            bool   `yaml:"autostart"`
	APIBaseURL           string `yaml:"api_base_url"`
	CSRFToken            string `yaml:"api_csrf_token"`

	LastMood         string `yaml:"lastMood"`
	LastMoodTime     string `yaml:"lastMoodTime"`
	LastReminderTime int64  `yaml:"lastReminderTime"`
	CheckinDraft     string `yaml:"checkinDraft"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	remindersEnabled := settings.RemindersEnabled
	fileData := yamlSettings{
		Theme:                settings.Theme,
		GentleMode:           settings.GentleMode,
		HighContrast:         settings.HighContrast,
		SessionLengthMinutes: int(settings.SessionLength / time.Minute),
		RemindersEnabled:     &remindersEnabled,
		ReminderGapMinutes:   int(settings.ReminderGap / time.Minute),
		Autostart:            settings.Autostart,
		APIBaseURL:           settings.APIBaseURL,
		CSRFToken:            settings.CSRFToken,
		LastMood:             settings.LastMood,
		LastReminderTime:     settings.LastReminderTime,
		CheckinDraft:         settings.CheckinDraft,
	}
	if !settings.LastMoodTime.IsZero() {
		fileData.LastMoodTime = settings.LastMoodTime.UTC().Format(time.RFC3339)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Theme == preferences.ThemeDark || fileData.Theme == preferences.ThemeLight {
		settings.Theme = fileData.Theme
	}
	settings.GentleMode = fileData.GentleMode
	settings.HighContrast = fileData.HighContrast

	if fileData.SessionLengthMinutes > 0 {
		settings.SessionLength = time.Duration(fileData.SessionLengthMinutes) * time.Minute
	}
	if fileData.RemindersEnabled != nil {
		settings.RemindersEnabled = *fileData.RemindersEnabled
	}
	if fileData.ReminderGapMinutes > 0 {
		settings.ReminderGap = time.Duration(fileData.ReminderGapMinutes) * time.Minute
	}
	settings.Autostart = fileData.Autostart

	if fileData.APIBaseURL != "" {
		settings.APIBaseURL = fileData.APIBaseURL
	}
	settings.CSRFToken = fileData.CSRFToken

	settings.LastMood = fileData.LastMood
	if fileData.LastMoodTime != "" {
		if parsed, err := time.Parse(time.RFC3339, fileData.LastMoodTime); err == nil {
			settings.LastMoodTime = parsed
		}
	}
	settings.LastReminderTime = fileData.LastReminderTime
	settings.CheckinDraft = fileData.CheckinDraft
}
