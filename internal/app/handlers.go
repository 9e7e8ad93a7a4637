package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"image-resizer/internal/controllers"
	"image-resizer/internal/gui"
	"image-resizer/internal/gui/components"
	"image-resizer/internal/ipc"
	"image-resizer/internal/logger"
	"image-resizer/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// ImageExtensions limits the file dialog to formats the resize engines decode.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

var ErrNoImage = errors.New("no image selected")

// Prober reads image dimensions without a full decode.
type Prober interface {
	Probe(path string) (models.ImageInfo, error)
}

// Handlers is the UI role: it turns form actions into image:resize messages and reflects
// image:done and image:failed back into the window.
type Handlers struct {
	fyneApp     fyne.App
	guiManager  *gui.Manager
	bus         *ipc.Bus
	prober      Prober
	revealer    controllers.Revealer
	destination string
	logger      logger.Logger

	mu            sync.Mutex
	pendingID     string
	unsubscribers []func()
}

func NewHandlers(fyneApp fyne.App, gm *gui.Manager, bus *ipc.Bus, prober Prober, revealer controllers.Revealer, destination string, log logger.Logger) *Handlers {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	return &Handlers{
		fyneApp:     fyneApp,
		guiManager:  gm,
		bus:         bus,
		prober:      prober,
		revealer:    revealer,
		destination: destination,
		logger:      log,
	}
}

// Subscribe listens for completion messages. In development every message is mirrored to
// the debug panel.
func (h *Handlers) Subscribe(development bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unsubscribers = append(h.unsubscribers,
		h.bus.Subscribe(ipc.TopicDone, h.onDone),
		h.bus.Subscribe(ipc.TopicFailed, h.onFailed),
	)

	if !development {
		return
	}
	for _, topic := range []string{ipc.TopicResize, ipc.TopicDone, ipc.TopicFailed} {
		h.unsubscribers = append(h.unsubscribers, h.bus.Subscribe(topic, h.onTraffic))
	}
}

func (h *Handlers) HandleBrowse() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("File Open Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		h.HandleFileSelected(path)
	}, h.guiManager.GetWindow())

	fileDialog.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
	fileDialog.Show()
}

// HandleFileSelected fills the form with the image path and its real dimensions. An image
// that cannot be probed is still accepted; the resize will report the problem.
func (h *Handlers) HandleFileSelected(path string) {
	if h.PendingID() == "" {
		h.guiManager.ResetStatus()
	}

	info, err := h.prober.Probe(path)
	if err != nil {
		h.logger.Warning("Handlers", "could not read image header", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		h.guiManager.SetImage(path, 0, 0, filepath.Base(path))
		return
	}

	h.guiManager.SetImage(path, info.Width, info.Height, info.String())
	h.logger.Debug("Handlers", "image selected", map[string]interface{}{
		"path":   path,
		"width":  info.Width,
		"height": info.Height,
		"format": info.Format,
	})
}

// HandleResize publishes a resize request. Dimensions are passed through as typed so the
// controller owns validation.
func (h *Handlers) HandleResize(path, width, height string) {
	path = strings.TrimSpace(path)
	if path == "" {
		h.guiManager.ShowError("Resize Error", ErrNoImage)
		return
	}

	req, err := models.NewResizeRequest(path, width, height)
	if err != nil {
		h.guiManager.ShowError("Resize Error", err)
		return
	}

	h.mu.Lock()
	h.pendingID = req.ID
	h.mu.Unlock()

	h.guiManager.SetBusy(true)
	h.guiManager.UpdateStatus(fmt.Sprintf("Resizing %s...", filepath.Base(path)))

	if !h.bus.Publish(ipc.Message{Topic: ipc.TopicResize, Request: &req}) {
		h.clearPending(req.ID)
		h.guiManager.SetBusy(false)
		h.guiManager.UpdateStatus(components.StatusReady)
		h.guiManager.ShowError("Resize Error", errors.New("resize request could not be queued"))
	}
}

func (h *Handlers) HandleOpenOutputFolder() {
	if err := h.revealer.Reveal(h.destination); err != nil {
		h.guiManager.ShowError("Open Folder Error", err)
	}
}

// PendingID is the id of the most recent request still awaiting an answer.
func (h *Handlers) PendingID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pendingID
}

func (h *Handlers) clearPending(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id == "" || id != h.pendingID {
		return false
	}
	h.pendingID = ""
	return true
}

func (h *Handlers) onDone(msg ipc.Message) {
	if msg.Result == nil || !h.clearPending(msg.ID()) {
		return
	}

	res := msg.Result
	h.guiManager.SetBusy(false)
	h.guiManager.UpdateStatus(fmt.Sprintf("Image resized to %dx%d", res.Width, res.Height))
	h.logger.Info("Handlers", "resize finished", map[string]interface{}{
		"id":     res.ID,
		"output": res.OutputPath,
		"cached": res.Cached,
	})
}

func (h *Handlers) onFailed(msg ipc.Message) {
	if msg.Result == nil || !h.clearPending(msg.ID()) {
		return
	}

	h.guiManager.SetBusy(false)
	h.guiManager.UpdateStatus("Resize failed: " + msg.Result.Reason())
	if msg.Result.Err != nil {
		h.guiManager.ShowError("Resize Failed", msg.Result.Err)
	}
}

func (h *Handlers) onTraffic(msg ipc.Message) {
	h.guiManager.AppendDebug(msg.String())
}

func (h *Handlers) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, unsubscribe := range h.unsubscribers {
		unsubscribe()
	}
	h.unsubscribers = nil
}
