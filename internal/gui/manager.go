package gui

import (
	"fmt"

	"image-resizer/internal/gui/components"
	"image-resizer/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

const (
	ProductionWidth  = 500
	DevelopmentWidth = 1000
	WindowHeight     = 700
)

type Options struct {
	Development bool
	Destination string
	Width       float32
	Height      float32
}

// WindowSize follows the mode unless explicit sizes are configured.
func (o Options) WindowSize() fyne.Size {
	width := float32(ProductionWidth)
	if o.Development {
		width = DevelopmentWidth
	}
	height := float32(WindowHeight)

	if o.Width > 0 {
		width = o.Width
	}
	if o.Height > 0 {
		height = o.Height
	}
	return fyne.NewSize(width, height)
}

// Manager owns the main window content. Every method is safe to call from any goroutine.
type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	opts       Options
	isShutdown bool

	form       *components.ResizeForm
	statusBar  *components.StatusBar
	debugPanel *components.DebugPanel
	content    *fyne.Container
}

func NewManager(window fyne.Window, opts Options, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	m := &Manager{
		window:     window,
		logger:     log,
		opts:       opts,
		form:       components.NewResizeForm(opts.Destination),
		statusBar:  components.NewStatusBar(),
		debugPanel: components.NewDebugPanel(),
	}
	m.debugPanel.SetVisible(opts.Development)

	m.content = container.NewBorder(
		m.form.GetContainer(),
		m.statusBar.GetContainer(),
		nil, nil,
		m.debugPanel.GetContainer(),
	)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"development": opts.Development,
		"window_size": fmt.Sprintf("%.0fx%.0f", opts.WindowSize().Width, opts.WindowSize().Height),
	})

	return m
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return m.content
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) Form() *components.ResizeForm {
	return m.form
}

func (m *Manager) StatusBar() *components.StatusBar {
	return m.statusBar
}

func (m *Manager) DebugPanel() *components.DebugPanel {
	return m.debugPanel
}

func (m *Manager) SetBrowseHandler(handler func()) {
	m.form.SetBrowseHandler(handler)
}

func (m *Manager) SetResizeHandler(handler func(path, width, height string)) {
	m.form.SetResizeHandler(func(path, width, height string) {
		m.logger.Debug("GUIManager", "resize requested", map[string]interface{}{
			"path":   path,
			"width":  width,
			"height": height,
		})
		handler(path, width, height)
	})
}

// SetDropHandler receives the first file dropped onto the window.
func (m *Manager) SetDropHandler(handler func(path string)) {
	m.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, u := range uris {
			if u.Scheme() == "file" {
				handler(u.Path())
				return
			}
		}
	})
}

func (m *Manager) SetImage(path string, width, height int, info string) {
	fyne.Do(func() {
		m.form.SetImagePath(path)
		if width > 0 && height > 0 {
			m.form.SetDimensions(width, height)
		}
	})
	m.statusBar.SetImageInfo(info)
}

// ResetStatus returns the status bar to its idle state.
func (m *Manager) ResetStatus() {
	m.statusBar.Reset()
}

func (m *Manager) SetBusy(busy bool) {
	fyne.Do(func() {
		m.form.SetBusy(busy)
	})
}

func (m *Manager) UpdateStatus(status string) {
	m.statusBar.SetStatus(status)
	m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
		"status": status,
	})
}

func (m *Manager) AppendDebug(line string) {
	if !m.opts.Development {
		return
	}
	m.debugPanel.Append(line)
}

func (m *Manager) ToggleDebugPanel() {
	fyne.Do(func() {
		m.debugPanel.Toggle()
	})
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) ShowInformation(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, m.window)
	})
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
