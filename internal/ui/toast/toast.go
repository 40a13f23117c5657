// Package toast shows transient in-window notices. It is the single
// place the application pops messages from, so every surface shows
// them the same way.
package toast

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mindhaven/internal/notify"
)

const defaultDuration = 3 * time.Second

// Manager shows one toast at a time on a window. A new toast replaces
// the one currently visible.
type Manager struct {
	window   fyne.Window
	duration time.Duration

	current *widget.PopUp
}

// NewManager creates a toast manager for the window.
func NewManager(window fyne.Window) *Manager {
	return &Manager{window: window, duration: defaultDuration}
}

// Show displays the notice near the bottom of the window and hides it
// after a few seconds. Must be called from the Fyne goroutine.
func (manager *Manager) Show(notice notify.Notice) {
	if manager.current != nil {
		manager.current.Hide()
		manager.current = nil
	}

	title := widget.NewLabelWithStyle(notice.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	body := widget.NewLabelWithStyle(notice.Body, fyne.TextAlignCenter, fyne.TextStyle{})
	popup := widget.NewPopUp(container.NewVBox(title, body), manager.window.Canvas())

	canvasSize := manager.window.Canvas().Size()
	popupSize := popup.MinSize()
	popup.ShowAtPosition(fyne.NewPos(
		(canvasSize.Width-popupSize.Width)/2,
		canvasSize.Height-popupSize.Height-20,
	))
	manager.current = popup

	time.AfterFunc(manager.duration, func() {
		fyne.Do(func() {
			if manager.current == popup {
				popup.Hide()
				manager.current = nil
			}
		})
	})
}
