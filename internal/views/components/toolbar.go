package components

import (
	"strconv"

	"doc-formatter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the formatting controls above the editor
type Toolbar struct {
	container        *fyne.Container
	fontSelect       *widget.Select
	sizeSelect       *widget.Select
	boldButton       *widget.Button
	textColorButton  *widget.Button
	backgroundButton *widget.Button

	// Event handlers
	fontChangeHandler func(string)
	sizeChangeHandler func(string)
	boldHandler       func()
	textColorHandler  func()
	backgroundHandler func()

	// suppress keeps programmatic selection changes from reaching handlers
	suppress bool
}

// NewToolbar creates a toolbar offering the given font families
func NewToolbar(families []string) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(families)
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents(families []string) {
	t.fontSelect = widget.NewSelect(families, nil)
	t.fontSelect.PlaceHolder = "Font"

	t.sizeSelect = widget.NewSelect(models.SizeOptions(), nil)
	t.sizeSelect.PlaceHolder = "Size"

	t.boldButton = widget.NewButton("B", nil)
	t.boldButton.Importance = widget.HighImportance

	t.textColorButton = widget.NewButton("Text Color", nil)
	t.backgroundButton = widget.NewButton("Background Color", nil)
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.fontSelect,
		t.sizeSelect,
		widget.NewSeparator(),
		t.boldButton,
		widget.NewSeparator(),
		t.textColorButton,
		t.backgroundButton,
	)
}

func (t *Toolbar) setupEventHandlers() {
	t.fontSelect.OnChanged = func(family string) {
		if t.suppress || t.fontChangeHandler == nil {
			return
		}
		t.fontChangeHandler(family)
	}

	t.sizeSelect.OnChanged = func(size string) {
		if t.suppress || t.sizeChangeHandler == nil {
			return
		}
		t.sizeChangeHandler(size)
	}

	t.boldButton.OnTapped = func() {
		if t.boldHandler != nil {
			t.boldHandler()
		}
	}

	t.textColorButton.OnTapped = func() {
		if t.textColorHandler != nil {
			t.textColorHandler()
		}
	}

	t.backgroundButton.OnTapped = func() {
		if t.backgroundHandler != nil {
			t.backgroundHandler()
		}
	}
}

// Event handler setters

func (t *Toolbar) SetFontChangeHandler(handler func(string)) {
	t.fontChangeHandler = handler
}

func (t *Toolbar) SetSizeChangeHandler(handler func(string)) {
	t.sizeChangeHandler = handler
}

func (t *Toolbar) SetBoldHandler(handler func()) {
	t.boldHandler = handler
}

func (t *Toolbar) SetTextColorHandler(handler func()) {
	t.textColorHandler = handler
}

func (t *Toolbar) SetBackgroundHandler(handler func()) {
	t.backgroundHandler = handler
}

// ShowFont reflects the active font in the selectors without firing handlers
func (t *Toolbar) ShowFont(settings models.FontSettings) {
	t.suppress = true
	defer func() { t.suppress = false }()

	t.fontSelect.SetSelected(settings.Family)
	t.sizeSelect.SetSelected(strconv.Itoa(settings.Size))
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
