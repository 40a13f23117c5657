package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen          func()
	OnCheckIn       func()
	OnToggleSession func()
	OnSnoozeFor     func(time.Duration)
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	openItem    *fyne.MenuItem
	checkInItem *fyne.MenuItem
	sessionItem *fyne.MenuItem
	snoozeFor   *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.openItem = fyne.NewMenuItem("Open MindHaven", func() {
		if manager.callbacks.OnOpen != nil {
			manager.callbacks.OnOpen()
		}
	})

	manager.checkInItem = fyne.NewMenuItem("Check in now", func() {
		if manager.callbacks.OnCheckIn != nil {
			manager.callbacks.OnCheckIn()
		}
	})

	manager.sessionItem = fyne.NewMenuItem("Start session", func() {
		if manager.callbacks.OnToggleSession != nil {
			manager.callbacks.OnToggleSession()
		}
	})

	manager.snoozeFor = fyne.NewMenuItem("Snooze reminders for...", nil)
	manager.snoozeFor.ChildMenu = fyne.NewMenu("", fyne.NewMenuItem("30 minutes", func() {
		if manager.callbacks.OnSnoozeFor != nil {
			manager.callbacks.OnSnoozeFor(30 * time.Minute)
		}
	}), fyne.NewMenuItem("1 hour", func() {
		if manager.callbacks.OnSnoozeFor != nil {
			manager.callbacks.OnSnoozeFor(time.Hour)
		}
	}), fyne.NewMenuItem("2 hours", func() {
		if manager.callbacks.OnSnoozeFor != nil {
			manager.callbacks.OnSnoozeFor(2 * time.Hour)
		}
	}), fyne.NewMenuItem("Until tomorrow", func() {
		if manager.callbacks.OnSnoozeFor != nil {
			manager.callbacks.OnSnoozeFor(16 * time.Hour)
		}
	}))

	manager.prefsItem = fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetSessionRunning flips the session item between start and pause.
func (manager *Manager) SetSessionRunning(running bool) {
	manager.running = running
	if running {
		manager.sessionItem.Label = "Pause session"
	} else {
		manager.sessionItem.Label = "Start session"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("MindHaven",
			manager.statusItem,
			manager.openItem,
			manager.checkInItem,
			manager.sessionItem,
			manager.snoozeFor,
			manager.prefsItem,
			manager.quitItem,
		))
	}
}
