// Package sessionview renders the focus session timer.
package sessionview

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"mindhaven/internal/core/session"
)

// Callbacks connect the view's buttons to the timer.
type Callbacks struct {
	OnStart func()
	OnPause func()
	OnReset func()
}

// View is the session timer page. All methods must be called from the
// Fyne goroutine.
type View struct {
	callbacks Callbacks

	remaining *canvas.Text
	status    *widget.Label
	progress  *widget.ProgressBar
	toggle    *widget.Button
	state     session.State

	content fyne.CanvasObject
}

// NewView builds the timer page in the idle state.
func NewView(callbacks Callbacks) *View {
	view := &View{callbacks: callbacks}

	view.remaining = canvas.NewText(session.FormatRemaining(0), theme.Color(theme.ColorNameForeground))
	view.remaining.TextSize = 64
	view.remaining.TextStyle = fyne.TextStyle{Monospace: true}
	view.remaining.Alignment = fyne.TextAlignCenter

	view.status = widget.NewLabelWithStyle("Ready", fyne.TextAlignCenter, fyne.TextStyle{})
	view.progress = widget.NewProgressBar()

	view.toggle = widget.NewButton("Start", view.onToggle)
	view.toggle.Importance = widget.HighImportance
	reset := widget.NewButton("Reset", func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})

	view.content = container.NewVBox(
		widget.NewLabelWithStyle("Focus Session", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		view.remaining,
		view.status,
		view.progress,
		container.NewHBox(widget.NewLabel(""), view.toggle, reset),
	)
	return view
}

// Content returns the page for embedding in the main window.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// SetRemaining updates the countdown text and progress fill.
func (view *View) SetRemaining(remaining, total time.Duration) {
	view.remaining.Text = session.FormatRemaining(remaining)
	view.remaining.Refresh()
	if total > 0 {
		view.progress.SetValue(1 - float64(remaining)/float64(total))
	}
}

// SetState adjusts the status label and toggle button for the state.
func (view *View) SetState(state session.State) {
	view.state = state
	switch state {
	case session.StateRunning:
		view.status.SetText("Session in progress")
		view.toggle.SetText("Pause")
	case session.StatePaused:
		view.status.SetText("Paused")
		view.toggle.SetText("Resume")
	case session.StateCompleted:
		view.status.SetText("Session complete, well done")
		view.toggle.SetText("Start")
	default:
		view.status.SetText("Ready")
		view.toggle.SetText("Start")
	}
}

func (view *View) onToggle() {
	if view.state == session.StateRunning {
		if view.callbacks.OnPause != nil {
			view.callbacks.OnPause()
		}
		return
	}
	if view.callbacks.OnStart != nil {
		view.callbacks.OnStart()
	}
}
