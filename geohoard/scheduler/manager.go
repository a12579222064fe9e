// Package scheduler runs the periodic game loops: stock rotation, income
// accrual and the meteor cycle. Each loop is a context-cancelled goroutine
// registered with a Manager that recovers panics and supports graceful
// shutdown, so one faulty cycle can never silently stop the game.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
)

// Manager owns all background game loops with lifecycle control.
type Manager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	processes map[string]*processInfo
	mu        sync.RWMutex
}

type processInfo struct {
	name        string
	cancel      context.CancelFunc
	description string
}

// NewManager creates a process manager rooted in a fresh context.
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		ctx:       ctx,
		cancel:    cancel,
		processes: make(map[string]*processInfo),
	}
}

// Start registers and launches a background loop under the given name.
func (m *Manager) Start(name, description string, fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.processes[name]; exists {
		slog.Warn("Process already exists, stopping existing one", slog.String("name", name))
		m.stopLocked(name)
	}

	processCtx, processCancel := context.WithCancel(m.ctx)
	m.processes[name] = &processInfo{
		name:        name,
		cancel:      processCancel,
		description: description,
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Background process panic",
					slog.String("process", name),
					slog.Any("panic", r))
			}
		}()

		logger.LogSystem("Starting background process",
			slog.String("process", name),
			slog.String("description", description))

		fn(processCtx)

		logger.LogSystem("Background process ended",
			slog.String("process", name))
	}()
}

// Stop cancels a single named loop.
func (m *Manager) Stop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(name)
}

func (m *Manager) stopLocked(name string) {
	if process, exists := m.processes[name]; exists {
		process.cancel()
		delete(m.processes, name)
		logger.LogSystem("Stopped background process", slog.String("process", name))
	}
}

// Shutdown cancels every loop and waits for them to finish.
func (m *Manager) Shutdown(timeout time.Duration) error {
	logger.LogSystem("Shutting down background processes",
		slog.Int("process_count", m.Count()))

	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.LogSystem("All background processes stopped gracefully")
		return nil
	case <-time.After(timeout):
		slog.Warn("Timeout waiting for background processes to stop",
			slog.Duration("timeout", timeout))
		return context.DeadlineExceeded
	}
}

// Count returns the number of registered loops.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.processes)
}

// Context returns the manager's root context.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// safeTick runs one cycle body, recovering a panic so the loop's timer keeps
// firing on later cycles.
func safeTick(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Scheduler tick panic",
				slog.String("process", name),
				slog.Any("panic", r))
		}
	}()
	fn()
}

// sleepCtx waits for d or until ctx is cancelled. Returns false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
