package main

import (
	"log"
	"os"
	"runtime"
	"sync/atomic"

	"doc-formatter/internal/controllers"
	"doc-formatter/internal/fonts"
	"doc-formatter/internal/logger"
	"doc-formatter/internal/models"
	"doc-formatter/internal/services"
	"doc-formatter/internal/shutdown"
	"doc-formatter/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Document Formatter"
	AppID      = "com.docformatter.doc-formatter"
	AppVersion = "1.0.0"

	appComponent = "Application"
)

var windowSize = fyne.NewSize(900, 700)

var _ controllers.View = (*views.MainView)(nil)

// Application wires the window, the MVC components and the shutdown sequence
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView

	session   *models.Session
	documents *services.DocumentService
	formatter *services.FolderFormatter
	catalog   *fonts.Catalog

	shutdown *shutdown.Manager
	stopped  atomic.Bool
}

func main() {
	application, err := NewApplication()
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}

// NewApplication builds the application and connects its components
func NewApplication() (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(windowSize)
	window.CenterOnScreen()
	window.SetMaster()

	logLevel := logger.ParseLevel(os.Getenv("LOG_LEVEL"), os.Getenv("DEBUG") == "1")
	appLogger := logger.NewConsoleLogger(logLevel)

	appLogger.Info(appComponent, "Application starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"log_level":  logLevel.String(),
	})

	catalog := fonts.Discover()
	appLogger.Debug(appComponent, "fonts discovered", map[string]interface{}{
		"families": len(catalog.Families()),
	})

	session := models.NewSession()
	documents := services.NewDocumentService(session, appLogger)
	formatter := services.NewFolderFormatter(appLogger)

	shutdownManager := shutdown.NewManager(appLogger)

	mainController := controllers.NewMainController(session, documents, formatter, appLogger)
	mainController.SetBaseContext(shutdownManager.Context())
	mainView := views.NewMainView(window, catalog)

	mainView.SetActions(mainController.Actions())
	mainController.SetView(mainView, models.FontSettings{
		Family: catalog.Preferred(models.DefaultFontFamily),
		Size:   models.DefaultFontSize,
	})

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		controller: mainController,
		view:       mainView,
		session:    session,
		documents:  documents,
		formatter:  formatter,
		catalog:    catalog,
		shutdown:   shutdownManager,
	}

	application.setupWindowEvents()
	application.setupGracefulShutdown()

	appLogger.Info(appComponent, "Application initialized successfully", map[string]interface{}{
		"components": []string{"models", "services", "controllers", "views"},
	})

	return application, nil
}

// Run shows the window and blocks until the application quits
func (a *Application) Run() error {
	a.logger.Info(appComponent, "Starting application UI", nil)

	a.view.Show()
	a.fyneApp.Run()

	a.stopped.Store(true)
	a.shutdown.Shutdown()
	return nil
}

func (a *Application) setupWindowEvents() {
	// Closing the window goes through the same unsaved-changes check as File > Exit
	a.window.SetCloseIntercept(func() {
		a.logger.Info(appComponent, "Window close requested", nil)
		a.controller.Exit()
	})

	a.window.SetOnClosed(func() {
		a.logger.Info(appComponent, "Window closed", map[string]interface{}{
			"unsaved": a.session.Modified(),
		})
	})
}

func (a *Application) setupGracefulShutdown() {
	a.shutdown.Register("ui", func() {
		if a.stopped.Load() {
			return
		}
		fyne.Do(a.fyneApp.Quit)
	})
	a.shutdown.Listen()
}
