// Package checkin implements the mood check-in form.
package checkin

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"mindhaven/internal/core/model"
)

// Callbacks connect the form to persistence and submission.
type Callbacks struct {
	// OnSubmit receives a validated check-in. The form clears itself
	// only when Clear is called back, so failed submissions keep the
	// user's input.
	OnSubmit func(model.CheckIn)

	// OnDraftChange receives the serialized form state on every edit.
	OnDraftChange func(draft string)
}

// Form is the check-in page. All methods must be called from the Fyne
// goroutine.
type Form struct {
	callbacks Callbacks

	emotion        *widget.Select
	intensity      *widget.Slider
	intensityLabel *widget.Label
	secondary      *widget.CheckGroup
	symptoms       *widget.CheckGroup
	note           *widget.Entry
	errorLabel     *widget.Label

	restoring bool
	content   fyne.CanvasObject
}

// NewForm builds an empty check-in form.
func NewForm(callbacks Callbacks) *Form {
	form := &Form{callbacks: callbacks}

	var emotionLabels []string
	for _, emotion := range model.Emotions() {
		emotionLabels = append(emotionLabels, emotion.Label())
	}

	form.emotion = widget.NewSelect(emotionLabels, func(string) { form.onEdit() })
	form.emotion.PlaceHolder = "How are you feeling?"

	form.intensity = widget.NewSlider(1, 5)
	form.intensity.Step = 1
	form.intensity.SetValue(3)
	form.intensityLabel = widget.NewLabel(model.Intensity(3).Label())
	form.intensity.OnChanged = func(value float64) {
		form.intensityLabel.SetText(model.Intensity(value).Label())
		form.onEdit()
	}

	form.secondary = widget.NewCheckGroup(emotionLabels, func([]string) { form.onEdit() })
	form.secondary.Horizontal = true

	form.symptoms = widget.NewCheckGroup(model.PhysicalSymptoms, func([]string) { form.onEdit() })
	form.symptoms.Horizontal = true

	form.note = widget.NewMultiLineEntry()
	form.note.SetPlaceHolder("Anything you want to note down (optional)")
	form.note.OnChanged = func(string) { form.onEdit() }

	form.errorLabel = widget.NewLabel("")
	form.errorLabel.Importance = widget.DangerImportance
	form.errorLabel.Hide()

	submit := widget.NewButton("Save check-in", form.onSubmit)
	submit.Importance = widget.HighImportance

	form.content = container.NewVBox(
		widget.NewLabelWithStyle("Mood Check-in", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form.emotion,
		container.NewBorder(nil, nil, widget.NewLabel("Intensity"), form.intensityLabel, form.intensity),
		widget.NewLabel("Also feeling"),
		form.secondary,
		widget.NewLabel("Physical sensations"),
		form.symptoms,
		form.note,
		form.errorLabel,
		submit,
	)
	return form
}

// Content returns the page for embedding in the main window.
func (form *Form) Content() fyne.CanvasObject {
	return form.content
}

// SetSubmitHandler installs the submit callback. Allows the handler to
// be wired after the rest of the application is constructed.
func (form *Form) SetSubmitHandler(handler func(model.CheckIn)) {
	form.callbacks.OnSubmit = handler
}

// Clear resets the form after a successful submission.
func (form *Form) Clear() {
	form.restoring = true
	form.emotion.ClearSelected()
	form.intensity.SetValue(3)
	form.secondary.SetSelected(nil)
	form.symptoms.SetSelected(nil)
	form.note.SetText("")
	form.errorLabel.Hide()
	form.restoring = false
	if form.callbacks.OnDraftChange != nil {
		form.callbacks.OnDraftChange("")
	}
}

// RestoreDraft fills the form from a serialized draft. Unknown or
// malformed values are ignored.
func (form *Form) RestoreDraft(draft string) {
	values, err := url.ParseQuery(draft)
	if err != nil || len(values) == 0 {
		return
	}

	form.restoring = true
	defer func() { form.restoring = false }()

	if emotion := model.Emotion(values.Get("emotion")); emotion.Valid() {
		form.emotion.SetSelected(emotion.Label())
	}
	if intensity, err := strconv.Atoi(values.Get("intensity")); err == nil && model.Intensity(intensity).Valid() {
		form.intensity.SetValue(float64(intensity))
		form.intensityLabel.SetText(model.Intensity(intensity).Label())
	}
	form.secondary.SetSelected(labelsFor(values["secondary"]))
	form.symptoms.SetSelected(values["symptom"])
	form.note.SetText(values.Get("note"))
}

func labelsFor(names []string) []string {
	var labels []string
	for _, name := range names {
		if emotion := model.Emotion(name); emotion.Valid() {
			labels = append(labels, emotion.Label())
		}
	}
	return labels
}

func (form *Form) onEdit() {
	if form.restoring {
		return
	}
	form.errorLabel.Hide()
	if form.callbacks.OnDraftChange != nil {
		form.callbacks.OnDraftChange(form.draft())
	}
}

func (form *Form) draft() string {
	values := url.Values{}
	if emotion, ok := form.selectedEmotion(); ok {
		values.Set("emotion", string(emotion))
	}
	values.Set("intensity", strconv.Itoa(int(form.intensity.Value)))
	for _, emotion := range emotionsFor(form.secondary.Selected) {
		values.Add("secondary", string(emotion))
	}
	for _, symptom := range form.symptoms.Selected {
		values.Add("symptom", symptom)
	}
	if form.note.Text != "" {
		values.Set("note", form.note.Text)
	}
	return values.Encode()
}

func (form *Form) selectedEmotion() (model.Emotion, bool) {
	for _, emotion := range model.Emotions() {
		if emotion.Label() == form.emotion.Selected {
			return emotion, true
		}
	}
	return "", false
}

func emotionsFor(labels []string) []model.Emotion {
	var emotions []model.Emotion
	for _, label := range labels {
		for _, emotion := range model.Emotions() {
			if emotion.Label() == label {
				emotions = append(emotions, emotion)
			}
		}
	}
	return emotions
}

func (form *Form) onSubmit() {
	emotion, ok := form.selectedEmotion()
	if !ok {
		form.showError("Please choose how you are feeling")
		return
	}
	intensity := model.Intensity(form.intensity.Value)
	if !intensity.Valid() {
		form.showError(fmt.Sprintf("Intensity must be between %d and %d", model.IntensityVeryLow, model.IntensityVeryHigh))
		return
	}

	checkIn := model.CheckIn{
		ClientID:          uuid.NewString(),
		Emotion:           emotion,
		SecondaryEmotions: emotionsFor(form.secondary.Selected),
		Intensity:         intensity,
		PhysicalSymptoms:  form.symptoms.Selected,
		Note:              form.note.Text,
		Page:              "checkin",
		CreatedAt:         time.Now().UTC(),
	}
	if form.callbacks.OnSubmit != nil {
		form.callbacks.OnSubmit(checkIn)
	}
}

func (form *Form) showError(message string) {
	form.errorLabel.SetText(message)
	form.errorLabel.Show()
}
