package controllers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"image-resizer/internal/ipc"
	"image-resizer/internal/logger"
	"image-resizer/internal/models"

	"golang.org/x/sync/errgroup"
)

// Resizer performs one resize-and-persist operation.
type Resizer interface {
	Resize(ctx context.Context, req models.ResizeRequest) models.ResizeResult
}

// Revealer opens a directory in the platform file browser.
type Revealer interface {
	Reveal(dir string) error
}

// MainController owns filesystem access. It answers image:resize messages with image:done
// or image:failed and never touches the UI directly.
type MainController struct {
	bus         *ipc.Bus
	resizer     Resizer
	revealer    Revealer
	destination string
	logger      logger.Logger

	mu          sync.Mutex
	ctx         context.Context
	inflight    errgroup.Group
	unsubscribe func()
	started     bool
	closed      bool
}

func NewMainController(bus *ipc.Bus, resizer Resizer, revealer Revealer, destination string, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	return &MainController{
		bus:         bus,
		resizer:     resizer,
		revealer:    revealer,
		destination: destination,
		logger:      log,
	}
}

// Start subscribes to resize requests. Operations run under ctx.
func (mc *MainController) Start(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.closed {
		return errors.New("controller already shut down")
	}
	if mc.started {
		return errors.New("controller already started")
	}

	mc.ctx = ctx
	mc.started = true
	mc.unsubscribe = mc.bus.Subscribe(ipc.TopicResize, mc.handleResize)

	mc.logger.Info("Controller", "listening for resize requests", map[string]interface{}{
		"destination": mc.destination,
	})
	return nil
}

func (mc *MainController) Destination() string {
	return mc.destination
}

// handleResize returns immediately; each request runs on its own goroutine with no
// queueing against requests already in flight.
func (mc *MainController) handleResize(msg ipc.Message) {
	if msg.Request == nil {
		mc.logger.Warning("Controller", "resize message without request", nil)
		return
	}

	req := *msg.Request
	req.Destination = mc.destination

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.closed {
		mc.logger.Warning("Controller", "request ignored during shutdown", map[string]interface{}{"id": req.ID})
		return
	}

	ctx := mc.ctx
	mc.inflight.Go(func() error {
		defer mc.recoverResize(req)
		mc.process(ctx, req)
		return nil
	})
}

// recoverResize turns an engine panic into an image:failed answer for that request only.
func (mc *MainController) recoverResize(req models.ResizeRequest) {
	r := recover()
	if r == nil {
		return
	}

	err := fmt.Errorf("resize aborted: %v", r)
	mc.logger.Error("Controller", err, map[string]interface{}{
		"id":     req.ID,
		"source": req.ImagePath,
		"stack":  string(debug.Stack()),
	})

	result := models.Failed(req, err, 0)
	mc.bus.Publish(ipc.Message{Topic: ipc.TopicFailed, Result: &result})
}

func (mc *MainController) process(ctx context.Context, req models.ResizeRequest) {
	mc.logger.Debug("Controller", "resize started", map[string]interface{}{
		"id":     req.ID,
		"source": req.ImagePath,
		"width":  req.Width,
		"height": req.Height,
	})

	result := mc.resizer.Resize(ctx, req)

	if !result.Succeeded() {
		mc.logger.Error("Controller", result.Err, map[string]interface{}{
			"id":     req.ID,
			"source": req.ImagePath,
		})
		mc.bus.Publish(ipc.Message{Topic: ipc.TopicFailed, Result: &result})
		return
	}

	mc.bus.Publish(ipc.Message{Topic: ipc.TopicDone, Result: &result})

	if mc.revealer == nil {
		return
	}
	if err := mc.revealer.Reveal(mc.destination); err != nil {
		mc.logger.Warning("Controller", "could not open destination folder", map[string]interface{}{
			"dir":   mc.destination,
			"error": err.Error(),
		})
	}
}

// Shutdown stops taking requests and waits for running operations.
func (mc *MainController) Shutdown() {
	mc.mu.Lock()
	if mc.closed {
		mc.mu.Unlock()
		return
	}
	mc.closed = true
	if mc.unsubscribe != nil {
		mc.unsubscribe()
	}
	mc.mu.Unlock()

	_ = mc.inflight.Wait()
	mc.logger.Info("Controller", "shutdown complete", nil)
}
