package components

import (
	"image/color"

	"doc-formatter/internal/fonts"
	"doc-formatter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Editor is the document area: an editable text entry above a read-only
// pane that renders the buffer with its style tags applied.
type Editor struct {
	container  *container.ThemeOverride
	entry      *widget.Entry
	formatted  *widget.RichText
	background *canvas.Rectangle
	splitView  *container.Split
	theme      *EditorTheme

	changeHandler func(string)
}

// NewEditor creates a new editor component
func NewEditor() *Editor {
	editor := &Editor{
		theme: NewEditorTheme(theme.DefaultTheme()),
	}
	editor.createComponents()
	editor.buildLayout()
	editor.setupEventHandlers()
	return editor
}

func (e *Editor) createComponents() {
	e.entry = widget.NewMultiLineEntry()
	e.entry.Wrapping = fyne.TextWrapWord
	e.entry.SetPlaceHolder("Start typing...")

	e.formatted = widget.NewRichText()
	e.formatted.Wrapping = fyne.TextWrapWord

	e.background = canvas.NewRectangle(color.Transparent)
}

func (e *Editor) buildLayout() {
	formattedArea := container.NewStack(
		e.background,
		container.NewScroll(e.formatted),
	)

	e.splitView = container.NewVSplit(
		e.entry,
		container.NewBorder(widget.NewLabel("Formatted"), nil, nil, nil, formattedArea),
	)
	e.splitView.SetOffset(0.6)

	e.container = container.NewThemeOverride(e.splitView, e.theme)
}

func (e *Editor) setupEventHandlers() {
	e.entry.OnChanged = func(text string) {
		if e.changeHandler != nil {
			e.changeHandler(text)
		}
	}
}

// SetChangeHandler sets the handler called with the full text after each edit
func (e *Editor) SetChangeHandler(handler func(string)) {
	e.changeHandler = handler
}

// SetText replaces the whole buffer
func (e *Editor) SetText(text string) {
	e.entry.SetText(text)
}

// Text returns the current buffer
func (e *Editor) Text() string {
	return e.entry.Text
}

// Selection returns the active selection in rune offsets.
func (e *Editor) Selection() models.Selection {
	text := e.entry.Text
	cursor := models.CursorOffset(text, e.entry.CursorRow, e.entry.CursorColumn)
	return models.LocateSelection(text, cursor, e.entry.SelectedText())
}

// RenderStyled redraws the formatted pane from styled spans
func (e *Editor) RenderStyled(spans []models.Span) {
	segments := make([]widget.RichTextSegment, 0, len(spans))
	for _, span := range spans {
		segments = append(segments, &widget.TextSegment{
			Text: span.Text,
			Style: widget.RichTextStyle{
				Inline:    true,
				ColorName: HexColorName(span.Foreground),
				SizeName:  theme.SizeNameText,
				TextStyle: fyne.TextStyle{Bold: span.Bold},
			},
		})
	}

	e.formatted.Segments = segments
	e.formatted.Refresh()
}

// ApplyFont sets the font family faces and size for the whole editor
func (e *Editor) ApplyFont(faces fonts.Faces, size int) {
	e.theme = e.theme.WithFont(faces, size)
	e.applyTheme()
}

// ApplyBackground paints the whole editor background
func (e *Editor) ApplyBackground(c color.Color) {
	e.theme = e.theme.WithBackground(c)
	e.background.FillColor = c
	e.background.Refresh()
	e.applyTheme()
}

func (e *Editor) applyTheme() {
	e.container.Theme = e.theme
	e.container.Refresh()
}

// Focus moves keyboard focus into the text entry
func (e *Editor) Focus(c fyne.Canvas) {
	if c != nil {
		c.Focus(e.entry)
	}
}

// GetContainer returns the editor container
func (e *Editor) GetContainer() fyne.CanvasObject {
	return e.container
}
