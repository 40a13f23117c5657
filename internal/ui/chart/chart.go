// Package chart draws the mood history bar chart from canvas
// primitives.
package chart

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"mindhaven/internal/core/model"
	"mindhaven/internal/storage"
)

const (
	chartHeight float32 = 160
	barWidth    float32 = 24
	barGap      float32 = 10
)

// IntensityBars renders recent check-ins as one bar per entry, oldest
// on the left, bar height proportional to intensity.
func IntensityBars(records []storage.CheckInRecord) fyne.CanvasObject {
	if len(records) == 0 {
		return widget.NewLabelWithStyle("No check-ins yet", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	}

	area := container.NewWithoutLayout()
	x := barGap
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		height := chartHeight * float32(record.Intensity) / float32(model.IntensityVeryHigh)

		bar := canvas.NewRectangle(barColor(record.Intensity))
		bar.Resize(fyne.NewSize(barWidth, height))
		bar.Move(fyne.NewPos(x, chartHeight-height))
		area.Add(bar)

		label := canvas.NewText(record.CreatedAt.Format("01/02"), theme.Color(theme.ColorNameForeground))
		label.TextSize = 10
		label.Alignment = fyne.TextAlignCenter
		label.Resize(fyne.NewSize(barWidth, 14))
		label.Move(fyne.NewPos(x, chartHeight+4))
		area.Add(label)

		x += barWidth + barGap
	}
	area.Resize(fyne.NewSize(x, chartHeight+20))
	return area
}

func barColor(intensity model.Intensity) color.Color {
	switch {
	case intensity >= model.IntensityHigh:
		return color.NRGBA{R: 0xe5, G: 0x73, B: 0x73, A: 0xff}
	case intensity <= model.IntensityLow:
		return color.NRGBA{R: 0x81, G: 0xc7, B: 0x84, A: 0xff}
	default:
		return color.NRGBA{R: 0xff, G: 0xb7, B: 0x4d, A: 0xff}
	}
}
