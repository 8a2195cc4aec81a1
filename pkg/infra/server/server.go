package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"sync"
	"syscall"
	"time"

	"github.com/kart-io/logger"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// DefaultShutdownTimeout bounds Stop when Run handles a signal.
const DefaultShutdownTimeout = 15 * time.Second

// Manager starts servers in order and stops them in reverse order.
type Manager struct {
	mu              sync.Mutex
	servers         []Runnable
	started         []Runnable
	shutdownTimeout time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithShutdownTimeout sets the graceful shutdown timeout used by Run.
func WithShutdownTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.shutdownTimeout = d
		}
	}
}

// WithServer adds a server to the manager.
func WithServer(s Runnable) Option {
	return func(m *Manager) {
		m.servers = append(m.servers, s)
	}
}

// NewManager creates a new server manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{shutdownTimeout: DefaultShutdownTimeout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddServer adds a server to the manager.
func (m *Manager) AddServer(s Runnable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers = append(m.servers, s)
}

// Start starts all servers. When one fails the already started ones are
// stopped again before the error is returned.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.started) > 0 {
		return fmt.Errorf("server manager already started")
	}

	for _, s := range m.servers {
		if err := s.Start(ctx); err != nil {
			m.stopLocked(ctx)
			return fmt.Errorf("failed to start server %s: %w", s.Name(), err)
		}
		m.started = append(m.started, s)
		logger.Infow("server started", "name", s.Name())
	}
	return nil
}

// Stop stops every started server in reverse start order.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopLocked(ctx)
}

func (m *Manager) stopLocked(ctx context.Context) error {
	var errs []error
	for i := len(m.started) - 1; i >= 0; i-- {
		s := m.started[i]
		if err := s.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop server %s: %w", s.Name(), err))
			continue
		}
		logger.Infow("server stopped", "name", s.Name())
	}
	m.started = nil
	return utilerrors.NewAggregate(errs)
}

// Run starts all servers and blocks until ctx is done, SIGINT or SIGTERM
// arrives, or a server fails. It then shuts everything down.
func (m *Manager) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := m.Start(ctx); err != nil {
		return err
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Server shutting down...")
	case runErr = <-m.failures():
		logger.Errorw("server failed", "error", runErr.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()

	return utilerrors.NewAggregate([]error{runErr, m.Stop(shutdownCtx)})
}

// failures merges the Failed channels of the started servers.
func (m *Manager) failures() <-chan error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cases []reflect.SelectCase
	for _, s := range m.started {
		if f, ok := s.(Failer); ok {
			cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(f.Failed())})
		}
	}

	out := make(chan error, 1)
	if len(cases) == 0 {
		return out
	}
	go func() {
		_, v, ok := reflect.Select(cases)
		if ok {
			out <- v.Interface().(error)
		}
	}()
	return out
}
