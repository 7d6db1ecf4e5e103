package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"doc-formatter/internal/logger"
)

const (
	managerComponent = "ShutdownManager"
	stepTimeout      = 10 * time.Second
)

type step struct {
	name string
	fn   func()
}

// Manager runs registered shutdown steps once, in reverse registration order,
// when a termination signal arrives or Shutdown is called.
type Manager struct {
	steps   []step
	logger  logger.Logger
	timeout time.Duration
	mu      sync.Mutex
	once    sync.Once
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:  log,
		timeout: stepTimeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register adds a named step to run on shutdown
func (m *Manager) Register(name string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = append(m.steps, step{name: name, fn: fn})
}

// Listen shuts down on SIGINT or SIGTERM until the manager is done
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			m.logger.Info(managerComponent, "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.done:
		}
	}()
}

// Shutdown runs every registered step. Later calls return immediately.
func (m *Manager) Shutdown() {
	m.once.Do(m.run)
}

func (m *Manager) run() {
	m.mu.Lock()
	steps := make([]step, len(m.steps))
	copy(steps, m.steps)
	m.mu.Unlock()

	m.logger.Info(managerComponent, "shutdown sequence initiated", map[string]interface{}{
		"steps": len(steps),
	})

	m.cancel()

	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			s.fn()
		}()

		select {
		case <-finished:
			m.logger.Debug(managerComponent, "shutdown step completed", map[string]interface{}{
				"step": s.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning(managerComponent, "shutdown step timeout", map[string]interface{}{
				"step": s.name,
			})
		}
	}

	close(m.done)
	m.logger.Info(managerComponent, "shutdown sequence completed", nil)
}

// Context is cancelled as soon as shutdown starts. Long-running operations
// derive from it so they stop before the UI goes away.
func (m *Manager) Context() context.Context {
	return m.ctx
}
