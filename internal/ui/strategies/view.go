// Package strategies renders the coping strategy browser.
package strategies

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mindhaven/internal/core/model"
)

const anyOption = "Any"

// Fetcher loads and updates strategies, usually the API client.
type Fetcher interface {
	Strategies(ctx context.Context, filter model.StrategyFilter) ([]model.Strategy, error)
	MarkStrategyTried(ctx context.Context, id int64) error
}

// Callbacks surface outcomes that belong to the application shell.
type Callbacks struct {
	OnError func(err error)
	OnTried func(strategy model.Strategy)
}

var durationOptions = []string{anyOption, "5 minutes", "10 minutes", "15 minutes", "30 minutes"}

// View is the strategies page. Refresh runs network calls on a
// background goroutine and repaints through fyne.Do.
type View struct {
	fetcher   Fetcher
	callbacks Callbacks

	typeSelect     *widget.Select
	emotionSelect  *widget.Select
	durationSelect *widget.Select
	status         *widget.Label
	list           *fyne.Container

	content fyne.CanvasObject
}

// NewView builds the strategies page. Call Refresh to load results.
func NewView(fetcher Fetcher, callbacks Callbacks) *View {
	view := &View{fetcher: fetcher, callbacks: callbacks}

	typeOptions := []string{anyOption}
	for _, strategyType := range model.StrategyTypes() {
		typeOptions = append(typeOptions, strategyType.Label())
	}
	emotionOptions := []string{anyOption}
	for _, emotion := range model.Emotions() {
		emotionOptions = append(emotionOptions, emotion.Label())
	}

	view.typeSelect = widget.NewSelect(typeOptions, func(string) { view.Refresh() })
	view.typeSelect.PlaceHolder = "Type"
	view.emotionSelect = widget.NewSelect(emotionOptions, func(string) { view.Refresh() })
	view.emotionSelect.PlaceHolder = "Emotion"
	view.durationSelect = widget.NewSelect(durationOptions, func(string) { view.Refresh() })
	view.durationSelect.PlaceHolder = "Time available"

	view.status = widget.NewLabel("")
	view.list = container.NewVBox()

	filters := container.NewHBox(view.typeSelect, view.emotionSelect, view.durationSelect,
		widget.NewButton("Refresh", view.Refresh))

	view.content = container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Coping Strategies", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			filters,
			view.status,
		),
		nil, nil, nil,
		container.NewVScroll(view.list),
	)
	return view
}

// Content returns the page for embedding in the main window.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Filter returns the currently selected filter values.
func (view *View) Filter() model.StrategyFilter {
	var filter model.StrategyFilter
	for _, strategyType := range model.StrategyTypes() {
		if strategyType.Label() == view.typeSelect.Selected {
			filter.Type = strategyType
		}
	}
	for _, emotion := range model.Emotions() {
		if emotion.Label() == view.emotionSelect.Selected {
			filter.Emotion = emotion
		}
	}
	if selected := view.durationSelect.Selected; selected != "" && selected != anyOption {
		fmt.Sscanf(selected, "%d", &filter.MaxMinutes)
	}
	return filter
}

// Refresh reloads the list using the current filter.
func (view *View) Refresh() {
	filter := view.Filter()
	view.status.SetText("Loading…")

	go func() {
		results, err := view.fetcher.Strategies(context.Background(), filter)
		fyne.Do(func() {
			if err != nil {
				view.status.SetText("Could not load strategies")
				if view.callbacks.OnError != nil {
					view.callbacks.OnError(err)
				}
				return
			}
			view.showResults(results)
		})
	}()
}

func (view *View) showResults(results []model.Strategy) {
	view.list.RemoveAll()
	if len(results) == 0 {
		view.status.SetText("No strategies match these filters")
		return
	}
	view.status.SetText(fmt.Sprintf("%d strategies", len(results)))
	for _, strategy := range results {
		view.list.Add(view.card(strategy))
	}
	view.list.Refresh()
}

func (view *View) card(strategy model.Strategy) fyne.CanvasObject {
	meta := fmt.Sprintf("%s · %d min · difficulty %d/5",
		strategy.Type.Label(), strategy.EstimatedMinutes, strategy.Difficulty)
	if len(strategy.TargetEmotions) > 0 {
		var labels []string
		for _, emotion := range strategy.TargetEmotions {
			labels = append(labels, emotion.Label())
		}
		meta += " · helps with " + strings.Join(labels, ", ")
	}

	description := widget.NewLabel(strategy.Description)
	description.Wrapping = fyne.TextWrapWord

	tried := widget.NewButton("I tried this", nil)
	if strategy.Tried {
		tried.SetText("Tried")
		tried.Disable()
	}
	tried.OnTapped = func() { view.markTried(strategy, tried) }

	return widget.NewCard(strategy.Name, meta, container.NewVBox(description, container.NewHBox(tried)))
}

func (view *View) markTried(strategy model.Strategy, button *widget.Button) {
	button.Disable()
	go func() {
		err := view.fetcher.MarkStrategyTried(context.Background(), strategy.ID)
		fyne.Do(func() {
			if err != nil {
				button.Enable()
				if view.callbacks.OnError != nil {
					view.callbacks.OnError(err)
				}
				return
			}
			button.SetText("Tried")
			if view.callbacks.OnTried != nil {
				view.callbacks.OnTried(strategy)
			}
		})
	}()
}
