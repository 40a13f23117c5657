// Package breathing renders the guided breathing exercise.
package breathing

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"mindhaven/internal/ui/animation"
)

const (
	areaSize       float32 = 260
	circleDiameter float32 = 200
)

// View is the breathing exercise page. The animation runs on its own
// goroutine and repaints through fyne.Do.
type View struct {
	engine      *animation.Engine
	circle      *canvas.Circle
	instruction *widget.Label
	toggle      *widget.Button
	running     bool
	gentle      bool

	content fyne.CanvasObject
}

// NewView builds the breathing page in the stopped state.
func NewView() *View {
	view := &View{}

	view.circle = canvas.NewCircle(theme.Color(theme.ColorNamePrimary))
	area := container.NewWithoutLayout(view.circle)
	area.Resize(fyne.NewSize(areaSize, areaSize))

	view.instruction = widget.NewLabelWithStyle("Press start when you are ready",
		fyne.TextAlignCenter, fyne.TextStyle{})
	view.toggle = widget.NewButton("Start breathing", view.onToggle)

	view.engine = animation.New(animation.DefaultConfig(), func(frame animation.Frame) {
		fyne.Do(func() { view.applyFrame(frame) })
	})
	view.applyFrame(animation.Frame{Phase: animation.PhaseRest, Scale: 0.35})

	view.content = container.NewVBox(
		widget.NewLabelWithStyle("Breathing Exercise", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewCenter(area),
		view.instruction,
		container.NewCenter(view.toggle),
	)
	return view
}

// Content returns the page for embedding in the main window.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// SetGentle switches between the standard and the slower no-hold
// cycle. A running exercise restarts with the new cycle.
func (view *View) SetGentle(gentle bool) {
	view.gentle = gentle
	config := animation.DefaultConfig()
	if gentle {
		config = animation.GentleConfig()
	}
	view.engine.UpdateConfig(config)
	if view.running {
		view.engine.Start(context.Background())
	}
}

// Stop halts the exercise, for when the page is hidden.
func (view *View) Stop() {
	if !view.running {
		return
	}
	view.running = false
	view.engine.Stop()
	view.toggle.SetText("Start breathing")
	view.instruction.SetText("Press start when you are ready")
}

func (view *View) onToggle() {
	if view.running {
		view.Stop()
		return
	}
	view.running = true
	view.toggle.SetText("Stop")
	view.engine.Start(context.Background())
}

func (view *View) applyFrame(frame animation.Frame) {
	diameter := circleDiameter * float32(frame.Scale)
	offset := (areaSize - diameter) / 2
	view.circle.Resize(fyne.NewSize(diameter, diameter))
	view.circle.Move(fyne.NewPos(offset, offset))
	view.circle.Refresh()
	if view.running {
		view.instruction.SetText(frame.Phase.Instruction())
	}
}
