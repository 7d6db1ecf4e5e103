package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const footerText = "© 2024. Document formatting program."

// StatusBar displays the last action's outcome and the program footer
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	fileLabel   *widget.Label
	footerLabel *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.fileLabel = widget.NewLabel("Untitled")
	sb.footerLabel = widget.NewLabelWithStyle(footerText, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewVBox(
		container.NewHBox(
			sb.statusLabel,
			widget.NewSeparator(),
			sb.fileLabel,
		),
		sb.footerLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetFile shows the document name
func (sb *StatusBar) SetFile(name string) {
	sb.fileLabel.SetText(name)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
