package shutdown

import (
	"sync"
	"time"

	"image-resizer/internal/logger"
)

const DefaultStepTimeout = 10 * time.Second

type step struct {
	name string
	fn   func()
}

// Manager runs registered shutdown steps once, in reverse registration order, giving each
// step at most the configured timeout.
type Manager struct {
	mu      sync.Mutex
	steps   []step
	logger  logger.Logger
	timeout time.Duration
	done    chan struct{}
	once    sync.Once
}

func NewManager(log logger.Logger, timeout time.Duration) *Manager {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if timeout <= 0 {
		timeout = DefaultStepTimeout
	}

	return &Manager{
		logger:  log,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func (m *Manager) Register(name string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = append(m.steps, step{name: name, fn: fn})
}

func (m *Manager) Shutdown() {
	m.once.Do(m.run)
}

func (m *Manager) run() {
	defer close(m.done)

	m.mu.Lock()
	steps := make([]step, len(m.steps))
	copy(steps, m.steps)
	m.mu.Unlock()

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(steps),
	})

	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			s.fn()
		}()

		select {
		case <-finished:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": s.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": s.name,
				"timeout":   m.timeout.String(),
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Done is closed once every step has finished or timed out.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
