package controllers

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"doc-formatter/internal/logger"
	"doc-formatter/internal/models"
	"doc-formatter/internal/services"
	"doc-formatter/internal/views"
)

const (
	controllerComponent = "MainController"
	titleSuffix         = "Document Formatter"
	defaultSaveName     = "untitled.txt"
	operationTimeout    = 30 * time.Second

	aboutTitle   = "About"
	aboutMessage = "Document formatting program.\n\n" +
		"Edit plain text documents with font, bold and color styling,\n" +
		"and normalise file names in a folder (spaces to underscores, lowercase).\n\n" +
		"Built with Go and Fyne."
)

// View is what the controller needs from the window. It is implemented by
// views.MainView.
type View interface {
	ShowError(title string, err error)
	ShowInfo(title, message string)
	ShowConfirm(title, message string, callback func(bool))
	ShowOpenDialog(callback func(path string, err error))
	ShowSaveDialog(defaultName string, callback func(path string, err error))
	ShowFolderDialog(callback func(path string, err error))
	ShowColorPicker(title string, callback func(color.Color))

	SetText(text string)
	Selection() models.Selection
	RenderStyled(spans []models.Span)
	SetEditorFont(settings models.FontSettings) error
	SetEditorBackground(c color.Color)

	SetWindowTitle(title string)
	SetDocumentName(name string)
	UpdateStatus(status string)
	Quit()
}

// MainController turns user commands into session, document and folder
// operations and reports every outcome back to the view. Errors never leave
// the controller.
type MainController struct {
	session   *models.Session
	documents *services.DocumentService
	formatter *services.FolderFormatter
	logger    logger.Logger

	view       View
	font       models.FontSettings
	background string

	// baseCtx bounds every file operation; cancelled on shutdown
	baseCtx context.Context
}

// NewMainController creates a new main controller
func NewMainController(
	session *models.Session,
	documents *services.DocumentService,
	formatter *services.FolderFormatter,
	log logger.Logger,
) *MainController {
	return &MainController{
		session:   session,
		documents: documents,
		formatter: formatter,
		logger:    log,
		font:      models.DefaultFontSettings(),
		baseCtx:   context.Background(),
	}
}

// SetBaseContext makes file operations stop once ctx is cancelled
func (mc *MainController) SetBaseContext(ctx context.Context) {
	mc.baseCtx = ctx
}

func (mc *MainController) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(mc.baseCtx, operationTimeout)
}

// SetView associates the view with this controller and pushes the initial state
func (mc *MainController) SetView(view View, font models.FontSettings) {
	mc.view = view
	mc.applyFont(font)
	mc.refresh()
}

// Actions returns the command handlers for views.MainView
func (mc *MainController) Actions() views.Actions {
	return views.Actions{
		New:             mc.NewDocument,
		Open:            mc.OpenDocument,
		Save:            mc.SaveDocument,
		SaveAs:          mc.SaveDocumentAs,
		Exit:            mc.Exit,
		FormatFolder:    mc.FormatFolder,
		About:           mc.ShowAbout,
		FontChange:      mc.ChangeFont,
		SizeChange:      mc.ChangeFontSize,
		ToggleBold:      mc.ToggleBold,
		TextColor:       mc.ChooseTextColor,
		BackgroundColor: mc.ChooseBackgroundColor,
		TextEdited:      mc.TextEdited,
	}
}

// Document commands

// NewDocument clears the buffer and unbinds the file. Unsaved edits are only
// discarded after confirmation.
func (mc *MainController) NewDocument() {
	if !mc.session.Modified() {
		mc.resetDocument()
		return
	}

	mc.view.ShowConfirm("New Document", "Discard unsaved changes?", func(confirmed bool) {
		if confirmed {
			mc.resetDocument()
		}
	})
}

func (mc *MainController) resetDocument() {
	mc.session.Reset()
	mc.view.SetText("")
	mc.refresh()
	mc.view.UpdateStatus("New document")
	mc.logger.Debug(controllerComponent, "new document", nil)
}

// OpenDocument asks for a text file and loads it into the editor
func (mc *MainController) OpenDocument() {
	mc.view.ShowOpenDialog(func(path string, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if path == "" {
			return
		}

		ctx, cancel := mc.operationContext()
		defer cancel()

		if err := mc.documents.Open(ctx, path); err != nil {
			mc.handleError("Open failed", err)
			return
		}

		mc.view.SetText(mc.session.Buffer())
		mc.refresh()
		mc.view.UpdateStatus(fmt.Sprintf("Opened %s", mc.session.DisplayName()))
	})
}

// SaveDocument writes to the bound file, or asks for one when there is none
func (mc *MainController) SaveDocument() {
	ctx, cancel := mc.operationContext()
	defer cancel()

	err := mc.documents.Save(ctx)
	switch {
	case errors.Is(err, services.ErrNoPath):
		mc.SaveDocumentAs()
	case err != nil:
		mc.handleError("Save failed", err)
	default:
		mc.refresh()
		mc.view.UpdateStatus(fmt.Sprintf("Saved %s", mc.session.DisplayName()))
	}
}

// SaveDocumentAs asks for a destination and writes the document there
func (mc *MainController) SaveDocumentAs() {
	mc.view.ShowSaveDialog(defaultSaveName, func(path string, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if path == "" {
			return
		}

		ctx, cancel := mc.operationContext()
		defer cancel()

		if err := mc.documents.SaveAs(ctx, path); err != nil {
			mc.handleError("Save failed", err)
			return
		}

		mc.refresh()
		mc.view.UpdateStatus(fmt.Sprintf("Saved %s", mc.session.DisplayName()))
	})
}

// TextEdited records an edit made in the editor
func (mc *MainController) TextEdited(text string) {
	wasModified := mc.session.Modified()
	if !mc.session.SetBuffer(text) {
		return
	}

	mc.renderStyled()
	if !wasModified {
		mc.updateTitle()
	}
}

// Exit quits, asking first when there are unsaved edits
func (mc *MainController) Exit() {
	if !mc.session.Modified() {
		mc.quit()
		return
	}

	mc.view.ShowConfirm("Exit", "Discard unsaved changes and exit?", func(confirmed bool) {
		if confirmed {
			mc.quit()
		}
	})
}

func (mc *MainController) quit() {
	mc.logger.Info(controllerComponent, "exit requested", nil)
	mc.view.Quit()
}

// ShowAbout displays program information
func (mc *MainController) ShowAbout() {
	mc.view.ShowInfo(aboutTitle, aboutMessage)
}

// Formatting commands

// ChangeFont applies a font family to the whole editor
func (mc *MainController) ChangeFont(family string) {
	next := mc.font
	next.Family = family
	mc.applyFont(next)
}

// ChangeFontSize applies a point size to the whole editor. Sizes outside
// MinFontSize..MaxFontSize are refused.
func (mc *MainController) ChangeFontSize(text string) {
	size, err := models.ParseSize(text)
	if err != nil {
		mc.logger.Warning(controllerComponent, "font size rejected", map[string]interface{}{
			"input": text,
			"error": err.Error(),
		})
		mc.view.UpdateStatus(fmt.Sprintf("Font size must be between %d and %d", models.MinFontSize, models.MaxFontSize))
		return
	}

	next := mc.font
	next.Size = size
	mc.applyFont(next)
}

func (mc *MainController) applyFont(settings models.FontSettings) {
	if err := mc.view.SetEditorFont(settings); err != nil {
		mc.handleError("Font change failed", err)
		return
	}
	mc.font = settings
	mc.logger.Debug(controllerComponent, "font applied", map[string]interface{}{
		"family": settings.Family,
		"size":   settings.Size,
	})
}

// Font returns the font currently applied to the editor
func (mc *MainController) Font() models.FontSettings {
	return mc.font
}

// ToggleBold flips bold over the selection; without a selection it does nothing
func (mc *MainController) ToggleBold() {
	if !mc.session.Tags().ToggleBold(mc.view.Selection()) {
		mc.view.UpdateStatus("Select text to make it bold")
		return
	}
	mc.renderStyled()
}

// ChooseTextColor colours the selection with a picked colour. The selection
// is taken before the picker opens.
func (mc *MainController) ChooseTextColor() {
	sel := mc.view.Selection()
	if sel.Empty() {
		mc.view.UpdateStatus("Select text to color it")
		return
	}

	mc.view.ShowColorPicker("Text Color", func(c color.Color) {
		hex, err := models.ColorHex(c)
		if err != nil {
			mc.logger.Debug(controllerComponent, "text color ignored", map[string]interface{}{"error": err.Error()})
			return
		}
		mc.session.Tags().SetColor(sel, hex)
		mc.renderStyled()
	})
}

// ChooseBackgroundColor paints the whole editor background with a picked colour
func (mc *MainController) ChooseBackgroundColor() {
	mc.view.ShowColorPicker("Background Color", func(c color.Color) {
		hex, err := models.ColorHex(c)
		if err != nil {
			mc.logger.Debug(controllerComponent, "background color ignored", map[string]interface{}{"error": err.Error()})
			return
		}
		mc.background = hex
		mc.view.SetEditorBackground(c)
	})
}

// Background returns the editor background as "#rrggbb", empty for the default
func (mc *MainController) Background() string {
	return mc.background
}

// Folder formatting

// FormatFolder asks for a folder, normalises its file names and reports the
// outcome in a single dialog.
func (mc *MainController) FormatFolder() {
	mc.view.ShowFolderDialog(func(path string, err error) {
		if err != nil {
			mc.handleError("Folder selection failed", err)
			return
		}
		if path == "" {
			return
		}
		mc.formatFolder(path)
	})
}

func (mc *MainController) formatFolder(path string) {
	ctx, cancel := mc.operationContext()
	defer cancel()

	report, err := mc.formatter.Format(ctx, path)
	if err != nil {
		mc.logger.Error(controllerComponent, err, map[string]interface{}{
			"dir":     path,
			"renamed": len(report.Renamed),
		})
		mc.view.ShowError("Error", fmt.Errorf("could not format folder: %w", err))
		return
	}

	mc.view.ShowInfo("Success", formatSummary(report))
	mc.view.UpdateStatus(fmt.Sprintf("Formatted %s", path))
}

func formatSummary(report *services.Report) string {
	summary := fmt.Sprintf("Folder '%s' formatted successfully.\n\nRenamed: %d\nAlready formatted: %d",
		report.Dir, len(report.Renamed), report.Unchanged)
	if len(report.Skipped) == 0 {
		return summary
	}

	summary += fmt.Sprintf("\nSkipped (name taken): %d", len(report.Skipped))
	for _, skipped := range report.Skipped {
		summary += fmt.Sprintf("\n  %s -> %s", skipped.From, skipped.To)
	}
	return summary
}

// View refresh

func (mc *MainController) refresh() {
	mc.renderStyled()
	mc.updateTitle()
}

func (mc *MainController) renderStyled() {
	mc.view.RenderStyled(mc.session.Tags().Spans(mc.session.Buffer()))
}

func (mc *MainController) updateTitle() {
	name := mc.session.DisplayName()
	if mc.session.Modified() {
		name += "*"
	}
	mc.view.SetWindowTitle(fmt.Sprintf("%s - %s", name, titleSuffix))
	mc.view.SetDocumentName(name)
}

// handleError logs err and shows it; the triggering action ends here
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error(controllerComponent, err, map[string]interface{}{"action": title})
	mc.view.ShowError(title, err)
}
