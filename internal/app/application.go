package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"image-resizer/internal/config"
	"image-resizer/internal/controllers"
	"image-resizer/internal/debug/timing"
	"image-resizer/internal/gui"
	"image-resizer/internal/ipc"
	"image-resizer/internal/logger"
	"image-resizer/internal/pipeline"
	"image-resizer/internal/resize"
	"image-resizer/internal/shutdown"

	"fyne.io/fyne/v2"
)

const (
	AppName    = "Image Resizer"
	AppID      = "com.imageresizer.app"
	AppVersion = "1.0.0"
)

type Option func(*Application)

// WithRevealer replaces the platform folder opener.
func WithRevealer(r controllers.Revealer) Option {
	return func(a *Application) {
		a.revealer = r
	}
}

type Application struct {
	fyneApp     fyne.App
	window      fyne.Window
	cfg         *config.Config
	logger      logger.Logger
	destination string

	bus         *ipc.Bus
	coordinator *pipeline.Coordinator
	controller  *controllers.MainController
	guiManager  *gui.Manager
	handlers    *Handlers
	revealer    controllers.Revealer
	shutdown    *shutdown.Manager

	quitOnce sync.Once
}

// NewApplication wires the bus, the resize pipeline, the controller and the main window.
// Nothing runs until Start or Run is called.
func NewApplication(fyneApp fyne.App, cfg *config.Config, log logger.Logger, home string, opts ...Option) (*Application, error) {
	if fyneApp == nil {
		return nil, errors.New("fyne app is required")
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	a := &Application{
		fyneApp:     fyneApp,
		cfg:         cfg,
		logger:      log,
		destination: cfg.Destination(home),
		shutdown:    shutdown.NewManager(log, shutdown.DefaultStepTimeout),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.revealer == nil {
		a.revealer = gui.NewFolderRevealer(fyneApp)
	}

	resizer, err := resize.New(resize.Options{
		Engine:      cfg.Engine,
		Filter:      cfg.Filter,
		JPEGQuality: cfg.JPEGQuality,
	})
	if err != nil {
		return nil, fmt.Errorf("resize engine: %w", err)
	}

	cache, err := pipeline.NewOutputCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("output cache: %w", err)
	}

	tracker := timing.NewTracker()
	tracker.SetEnabled(cfg.IsDevelopment())

	a.bus = ipc.NewBus(ipc.DefaultBufferSize, log)
	a.coordinator = pipeline.NewCoordinator(resizer, cache, tracker, log)
	a.controller = controllers.NewMainController(a.bus, a.coordinator, a.revealer, a.destination, log)

	guiOpts := gui.Options{
		Development: cfg.IsDevelopment(),
		Destination: a.destination,
		Width:       cfg.WindowWidth,
		Height:      cfg.WindowHeight,
	}
	a.window = fyneApp.NewWindow(AppName)
	a.window.Resize(guiOpts.WindowSize())
	a.window.CenterOnScreen()
	a.window.SetMaster()

	a.guiManager = gui.NewManager(a.window, guiOpts, log)
	a.handlers = NewHandlers(fyneApp, a.guiManager, a.bus, a.coordinator, a.revealer, a.destination, log)

	a.guiManager.SetBrowseHandler(a.handlers.HandleBrowse)
	a.guiManager.SetResizeHandler(a.handlers.HandleResize)
	a.guiManager.SetDropHandler(a.handlers.HandleFileSelected)
	a.window.SetMainMenu(a.buildMenu())
	a.window.SetContent(a.guiManager.GetMainContainer())

	a.shutdown.Register("bus", a.bus.Shutdown)
	a.shutdown.Register("pipeline", a.coordinator.Cleanup)
	a.shutdown.Register("controller", a.controller.Shutdown)
	a.shutdown.Register("handlers", a.handlers.Shutdown)
	a.shutdown.Register("gui", a.guiManager.Shutdown)

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":     AppVersion,
		"mode":        string(cfg.Mode),
		"engine":      resizer.Name(),
		"destination": a.destination,
		"cache_size":  cfg.CacheSize,
	})

	return a, nil
}

func (a *Application) buildMenu() *fyne.MainMenu {
	return gui.BuildMainMenu(AppName, runtime.GOOS == "darwin", a.cfg.IsDevelopment(), gui.MenuActions{
		OpenImage:        a.handlers.HandleBrowse,
		OpenOutputFolder: a.handlers.HandleOpenOutputFolder,
		About: func() {
			gui.ShowAbout(a.fyneApp, AppName, AppVersion, a.coordinator.Engine())
		},
		ToggleDebugPanel: a.guiManager.ToggleDebugPanel,
		PerformanceReport: func() {
			a.guiManager.ShowInformation("Performance Report", a.coordinator.Timing().Report())
		},
		Quit: a.Quit,
	})
}

// Start connects the UI and controller roles to the bus.
func (a *Application) Start(ctx context.Context) error {
	if err := a.controller.Start(ctx); err != nil {
		return err
	}
	a.handlers.Subscribe(a.cfg.IsDevelopment())
	return nil
}

// Run starts the application and blocks in the Fyne event loop until the window closes.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.Quit()
	})

	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.Shutdown()
	return nil
}

// Shutdown stops every component without touching the Fyne loop.
func (a *Application) Shutdown() {
	a.shutdown.Shutdown()
}

// Quit shuts down the components and then stops the Fyne loop. Safe to call repeatedly
// and from any goroutine.
func (a *Application) Quit() {
	a.quitOnce.Do(func() {
		a.Shutdown()
		fyne.Do(a.fyneApp.Quit)
	})
}

func (a *Application) Destination() string {
	return a.destination
}

func (a *Application) Bus() *ipc.Bus {
	return a.bus
}

func (a *Application) GUI() *gui.Manager {
	return a.guiManager
}

func (a *Application) Handlers() *Handlers {
	return a.handlers
}
