package desktop

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/iwvelando/loan-calc/pkg/constants"
)

const (
	themeDark  = "dark"
	themeLight = "light"
)

// variantTheme pins the default theme to one variant regardless of the
// operating system setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newVariantTheme(name string) *variantTheme {
	variant := theme.VariantLight
	if name == themeDark {
		variant = theme.VariantDark
	}
	return &variantTheme{Theme: theme.DefaultTheme(), variant: variant}
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

// Name returns "dark" or "light".
func (t *variantTheme) Name() string {
	if t.variant == theme.VariantDark {
		return themeDark
	}
	return themeLight
}

// normalizeTheme maps anything but "dark" to the default theme.
func normalizeTheme(name string) string {
	if name == themeDark || name == themeLight {
		return name
	}
	return constants.DefaultTheme
}
