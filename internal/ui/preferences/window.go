package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	onCancel func()

	themeSelect   *widget.Select
	gentle        *widget.Check
	highContrast  *widget.Check
	sessionLength *widget.Entry
	reminders     *widget.Check
	reminderGap   *widget.Entry
	autostart     *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("MindHaven Settings")

	themeSelect := widget.NewSelect([]string{"Light", "Dark"}, nil)

	gentle := widget.NewCheck("Gentle mode (fewer sounds and popups)", nil)
	highContrast := widget.NewCheck("High contrast", nil)

	sessionLength := widget.NewEntry()
	reminders := widget.NewCheck("Check-in reminders", nil)
	reminderGap := widget.NewEntry()

	autostart := widget.NewCheck("Start with the system", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Theme"), themeSelect),
		gentle,
		highContrast,
		widget.NewLabelWithStyle("Sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Session length"), sessionLength, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Reminders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		reminders,
		container.NewHBox(widget.NewLabel("Remind at most every"), reminderGap, widget.NewLabel("min")),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 460))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		themeSelect:   themeSelect,
		gentle:        gentle,
		highContrast:  highContrast,
		sessionLength: sessionLength,
		reminders:     reminders,
		reminderGap:   reminderGap,
		autostart:     autostart,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	if settings.Theme == ThemeDark {
		prefs.themeSelect.SetSelected("Dark")
	} else {
		prefs.themeSelect.SetSelected("Light")
	}
	prefs.gentle.SetChecked(settings.GentleMode)
	prefs.highContrast.SetChecked(settings.HighContrast)
	prefs.sessionLength.SetText(fmt.Sprintf("%d", int(settings.SessionLength.Minutes())))
	prefs.reminders.SetChecked(settings.RemindersEnabled)
	prefs.reminderGap.SetText(fmt.Sprintf("%d", int(settings.ReminderGap.Minutes())))
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.Theme = ThemeLight
	if prefs.themeSelect.Selected == "Dark" {
		settings.Theme = ThemeDark
	}
	settings.GentleMode = prefs.gentle.Checked
	settings.HighContrast = prefs.highContrast.Checked

	if minutes, ok := parsePositiveInt(prefs.sessionLength.Text); ok {
		settings.SessionLength = time.Duration(minutes) * time.Minute
	}
	settings.RemindersEnabled = prefs.reminders.Checked
	if minutes, ok := parsePositiveInt(prefs.reminderGap.Text); ok {
		settings.ReminderGap = time.Duration(minutes) * time.Minute
	}
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
