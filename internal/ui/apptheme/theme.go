// Package apptheme forces the user's chosen theme variant and applies
// the high-contrast accessibility override.
package apptheme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type forcedVariant struct {
	base         fyne.Theme
	variant      fyne.ThemeVariant
	highContrast bool
}

// New returns a theme locked to dark or light, optionally with
// high-contrast foreground/background colors.
func New(dark, highContrast bool) fyne.Theme {
	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	return &forcedVariant{
		base:         theme.DefaultTheme(),
		variant:      variant,
		highContrast: highContrast,
	}
}

func (forced *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if forced.highContrast {
		switch name {
		case theme.ColorNameForeground:
			if forced.variant == theme.VariantDark {
				return color.White
			}
			return color.Black
		case theme.ColorNameBackground:
			if forced.variant == theme.VariantDark {
				return color.Black
			}
			return color.White
		}
	}
	return forced.base.Color(name, forced.variant)
}

func (forced *forcedVariant) Icon(name fyne.ThemeIconName) fyne.Resource {
	return forced.base.Icon(name)
}

func (forced *forcedVariant) Font(style fyne.TextStyle) fyne.Resource {
	return forced.base.Font(style)
}

func (forced *forcedVariant) Size(name fyne.ThemeSizeName) float32 {
	return forced.base.Size(name)
}
