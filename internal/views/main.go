package views

import (
	"image/color"

	"doc-formatter/internal/fonts"
	"doc-formatter/internal/models"
	"doc-formatter/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const headerText = "Document Formatting Program"

// Actions are the user commands the view forwards to the controller.
type Actions struct {
	New             func()
	Open            func()
	Save            func()
	SaveAs          func()
	Exit            func()
	FormatFolder    func()
	About           func()
	FontChange      func(family string)
	SizeChange      func(size string)
	ToggleBold      func()
	TextColor       func()
	BackgroundColor func()
	TextEdited      func(text string)
}

// MainView is the single application window: menus, formatting toolbar,
// document editor and status bar.
type MainView struct {
	window        fyne.Window
	catalog       *fonts.Catalog
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	editor        *components.Editor
	statusBar     *components.StatusBar

	actions Actions
}

// NewMainView creates the main view inside window
func NewMainView(window fyne.Window, catalog *fonts.Catalog) *MainView {
	view := &MainView{
		window:  window,
		catalog: catalog,
	}

	view.initializeComponents()
	view.buildLayout()
	view.buildMenus()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar(mv.catalog.Families())
	mv.editor = components.NewEditor()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	header := widget.NewLabelWithStyle(headerText, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	topArea := container.NewVBox(
		header,
		mv.toolbar.GetContainer(),
		widget.NewSeparator(),
	)

	mv.mainContainer = container.NewBorder(
		topArea,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.editor.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenus() {
	exitItem := fyne.NewMenuItem("Exit", func() { mv.dispatch(mv.actions.Exit) })
	exitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", func() { mv.dispatch(mv.actions.New) }),
		fyne.NewMenuItem("Open...", func() { mv.dispatch(mv.actions.Open) }),
		fyne.NewMenuItem("Save", func() { mv.dispatch(mv.actions.Save) }),
		fyne.NewMenuItem("Save As...", func() { mv.dispatch(mv.actions.SaveAs) }),
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Format Folder...", func() { mv.dispatch(mv.actions.FormatFolder) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() { mv.dispatch(mv.actions.About) }),
	)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu, helpMenu))
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetFontChangeHandler(func(family string) {
		if mv.actions.FontChange != nil {
			mv.actions.FontChange(family)
		}
	})
	mv.toolbar.SetSizeChangeHandler(func(size string) {
		if mv.actions.SizeChange != nil {
			mv.actions.SizeChange(size)
		}
	})
	mv.toolbar.SetBoldHandler(func() { mv.dispatch(mv.actions.ToggleBold) })
	mv.toolbar.SetTextColorHandler(func() { mv.dispatch(mv.actions.TextColor) })
	mv.toolbar.SetBackgroundHandler(func() { mv.dispatch(mv.actions.BackgroundColor) })

	mv.editor.SetChangeHandler(func(text string) {
		if mv.actions.TextEdited != nil {
			mv.actions.TextEdited(text)
		}
	})
}

func (mv *MainView) dispatch(action func()) {
	if action != nil {
		action()
	}
}

// SetActions connects the view's commands to their handlers
func (mv *MainView) SetActions(actions Actions) {
	mv.actions = actions
}

// Dialogs

// ShowError displays an error dialog. The dialog carries the error text;
// title is kept for the status bar.
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(title)
		dialog.ShowError(err, mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// ShowOpenDialog asks for a text file to open. The callback receives an empty
// path when the user cancels.
func (mv *MainView) ShowOpenDialog(callback func(path string, err error)) {
	fyne.Do(func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				callback("", err)
				return
			}
			if reader == nil {
				callback("", nil)
				return
			}
			path := reader.URI().Path()
			reader.Close()
			callback(path, nil)
		}, mv.window)
		d.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
		d.Show()
	})
}

// ShowSaveDialog asks for a destination file. The chosen file is released
// before the callback runs so the caller can write it by path.
func (mv *MainView) ShowSaveDialog(defaultName string, callback func(path string, err error)) {
	fyne.Do(func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				callback("", err)
				return
			}
			if writer == nil {
				callback("", nil)
				return
			}
			path := writer.URI().Path()
			writer.Close()
			callback(path, nil)
		}, mv.window)
		d.SetFileName(defaultName)
		d.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
		d.Show()
	})
}

// ShowFolderDialog asks for a directory
func (mv *MainView) ShowFolderDialog(callback func(path string, err error)) {
	fyne.Do(func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				callback("", err)
				return
			}
			if uri == nil {
				callback("", nil)
				return
			}
			callback(uri.Path(), nil)
		}, mv.window)
	})
}

// ShowColorPicker asks for a colour; the callback only runs on a choice
func (mv *MainView) ShowColorPicker(title string, callback func(color.Color)) {
	fyne.Do(func() {
		picker := dialog.NewColorPicker(title, "Choose a color", callback, mv.window)
		picker.Advanced = true
		picker.Show()
	})
}

// Editor state

// SetText replaces the editor buffer
func (mv *MainView) SetText(text string) {
	fyne.Do(func() {
		mv.editor.SetText(text)
	})
}

// Selection returns the editor's active selection
func (mv *MainView) Selection() models.Selection {
	return mv.editor.Selection()
}

// RenderStyled redraws the formatted pane
func (mv *MainView) RenderStyled(spans []models.Span) {
	fyne.Do(func() {
		mv.editor.RenderStyled(spans)
	})
}

// SetEditorFont applies a font family and size to the whole editor
func (mv *MainView) SetEditorFont(settings models.FontSettings) error {
	faces, err := mv.catalog.Faces(settings.Family)
	if err != nil {
		return err
	}

	fyne.Do(func() {
		mv.editor.ApplyFont(faces, settings.Size)
		mv.toolbar.ShowFont(settings)
	})
	return nil
}

// SetEditorBackground paints the whole editor background
func (mv *MainView) SetEditorBackground(c color.Color) {
	fyne.Do(func() {
		mv.editor.ApplyBackground(c)
	})
}

// Window state

// SetWindowTitle updates the window title
func (mv *MainView) SetWindowTitle(title string) {
	fyne.Do(func() {
		mv.window.SetTitle(title)
	})
}

// SetDocumentName shows the document name in the status bar
func (mv *MainView) SetDocumentName(name string) {
	fyne.Do(func() {
		mv.statusBar.SetFile(name)
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// Show displays the view and focuses the editor
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
		mv.editor.Focus(mv.window.Canvas())
	})
}

// Quit ends the application
func (mv *MainView) Quit() {
	fyne.Do(func() {
		fyne.CurrentApp().Quit()
	})
}
