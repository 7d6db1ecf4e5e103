package components

import (
	"image/color"
	"strings"

	"doc-formatter/internal/fonts"
	"doc-formatter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const hexColorPrefix = "hex:"

// HexColorName encodes an arbitrary "#rrggbb" colour as a theme colour name
// that EditorTheme resolves. An empty hex maps to the foreground colour.
func HexColorName(hex string) fyne.ThemeColorName {
	if hex == "" {
		return theme.ColorNameForeground
	}
	return fyne.ThemeColorName(hexColorPrefix + hex)
}

// EditorTheme scopes the document font, text size and background colour to
// the editor area without touching the rest of the window.
type EditorTheme struct {
	base       fyne.Theme
	faces      fonts.Faces
	textSize   float32
	background color.Color
}

func NewEditorTheme(base fyne.Theme) *EditorTheme {
	return &EditorTheme{
		base:     base,
		textSize: models.DefaultFontSize,
	}
}

// WithFont returns a copy using faces at size points.
func (et *EditorTheme) WithFont(faces fonts.Faces, size int) *EditorTheme {
	next := *et
	next.faces = faces
	next.textSize = float32(size)
	return &next
}

// WithBackground returns a copy painting the editor background with c.
func (et *EditorTheme) WithBackground(c color.Color) *EditorTheme {
	next := *et
	next.background = c
	return &next
}

func (et *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if hex, ok := strings.CutPrefix(string(name), hexColorPrefix); ok {
		if c, err := models.ParseColorHex(hex); err == nil {
			return c
		}
		return et.base.Color(theme.ColorNameForeground, variant)
	}

	if et.background != nil {
		switch name {
		case theme.ColorNameInputBackground, theme.ColorNameBackground:
			return et.background
		}
	}
	return et.base.Color(name, variant)
}

func (et *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	switch {
	case style.Monospace || style.Symbol:
		return et.base.Font(style)
	case et.faces.Monospace:
		style.Monospace = true
		return et.base.Font(style)
	case style.Bold && et.faces.Bold != nil:
		return et.faces.Bold
	case style.Bold:
		return et.base.Font(style)
	case et.faces.Regular != nil:
		return et.faces.Regular
	default:
		return et.base.Font(style)
	}
}

func (et *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return et.base.Icon(name)
}

func (et *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return et.textSize
	}
	return et.base.Size(name)
}
