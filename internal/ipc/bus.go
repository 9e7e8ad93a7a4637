package ipc

import (
	"fmt"
	"sync"
	"time"

	"image-resizer/internal/logger"
	"image-resizer/internal/models"
)

// Topics carried between the UI and the controller. Messages are one-way; replies are
// correlated by request id.
const (
	TopicResize = "image:resize"
	TopicDone   = "image:done"
	TopicFailed = "image:failed"
)

const DefaultBufferSize = 64

type Message struct {
	Topic     string
	Timestamp time.Time
	Request   *models.ResizeRequest
	Result    *models.ResizeResult
}

// ID returns the correlation id of whichever payload the message carries.
func (m Message) ID() string {
	switch {
	case m.Request != nil:
		return m.Request.ID
	case m.Result != nil:
		return m.Result.ID
	}
	return ""
}

func (m Message) String() string {
	return fmt.Sprintf("%s id=%s", m.Topic, m.ID())
}

type Handler func(Message)

// Bus is an asynchronous publish/subscribe channel. Publish never blocks the caller and
// every handler invocation runs on its own goroutine.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[uint64]Handler
	nextID      uint64
	closed      bool

	buffer   chan Message
	worker   sync.WaitGroup
	inflight sync.WaitGroup
	logger   logger.Logger
}

func NewBus(bufferSize int, log logger.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	bus := &Bus{
		subscribers: make(map[string]map[uint64]Handler),
		buffer:      make(chan Message, bufferSize),
		logger:      log,
	}

	bus.startWorker()
	return bus
}

// Publish queues msg and reports whether it was accepted. Messages are dropped when the
// buffer is full or the bus has been shut down.
func (b *Bus) Publish(msg Message) bool {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.logger.Warning("Bus", "publish after shutdown", map[string]interface{}{
			"topic": msg.Topic,
			"id":    msg.ID(),
		})
		return false
	}

	select {
	case b.buffer <- msg:
		return true
	default:
		b.logger.Warning("Bus", "buffer full, message dropped", map[string]interface{}{
			"topic": msg.Topic,
			"id":    msg.ID(),
		})
		return false
	}
}

// Subscribe registers handler for topic and returns a func that removes it.
func (b *Bus) Subscribe(topic string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[uint64]Handler)
	}
	b.subscribers[topic][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers[topic], id)
	}
}

// Shutdown delivers what is already queued, then waits for running handlers.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.buffer)
	b.mu.Unlock()

	b.worker.Wait()
	b.inflight.Wait()
}

func (b *Bus) startWorker() {
	b.worker.Add(1)
	go func() {
		defer b.worker.Done()
		for msg := range b.buffer {
			b.dispatch(msg)
		}
	}()
}

func (b *Bus) dispatch(msg Message) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subscribers[msg.Topic]))
	for _, h := range b.subscribers[msg.Topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("Bus", "no subscribers", map[string]interface{}{"topic": msg.Topic})
		return
	}

	for _, h := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Bus", fmt.Errorf("handler panic: %v", r), map[string]interface{}{
						"topic": msg.Topic,
						"id":    msg.ID(),
					})
				}
			}()
			h(msg)
		}(h)
	}
}
