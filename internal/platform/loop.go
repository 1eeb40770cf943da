package platform

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// EventsLoop owns a backend and dispatches its events on the goroutine that
// calls PollEvents or RunForever. Windows are created against a live loop
// and are used from that same goroutine.
//
// Multiple loops in one process are fully isolated: each owns its own
// backend instance, and identities from different loops never compare equal.
type EventsLoop struct {
	backend Backend
	logger  *slog.Logger
	shared  *loopShared

	interrupted atomic.Bool
	dispatching bool

	live map[WindowID]struct{}
}

// loopShared is the part of the loop a proxy can reach from other
// goroutines. mu orders Wakeup against Close: a wakeup either observes the
// loop open and reaches the backend before Close tears it down, or observes
// it closed.
type loopShared struct {
	mu      sync.RWMutex
	closed  bool
	pending atomic.Bool
	backend Backend
}

// NewEventsLoop binds a loop to an opened backend. It does not fail.
func NewEventsLoop(backend Backend, logger *slog.Logger) *EventsLoop {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventsLoop{
		backend: backend,
		logger:  logger.With("backend", backend.Name()),
		shared:  &loopShared{backend: backend},
		live:    make(map[WindowID]struct{}),
	}
}

// Backend returns the backend name.
func (l *EventsLoop) Backend() string { return l.backend.Name() }

// CreateProxy returns a handle that can wake this loop from any goroutine.
func (l *EventsLoop) CreateProxy() *EventsLoopProxy {
	return &EventsLoopProxy{shared: l.shared}
}

// AvailableMonitors enumerates the display surfaces of the backend.
func (l *EventsLoop) AvailableMonitors() []Monitor {
	return l.backend.AvailableMonitors()
}

// PrimaryMonitor returns the backend's primary display surface.
func (l *EventsLoop) PrimaryMonitor() Monitor {
	return l.backend.PrimaryMonitor()
}

// Interrupt asks a running RunForever to return. It is idempotent and takes
// effect between event deliveries, never in the middle of a callback. It is
// safe to call from inside the callback or from another goroutine.
func (l *EventsLoop) Interrupt() {
	l.interrupted.Store(true)
	l.shared.poke()
}

// Closed reports whether Close has been called.
func (l *EventsLoop) Closed() bool {
	return l.shared.isClosed()
}

// PollEvents delivers every event that is already queued, oldest first, and
// returns without blocking.
func (l *EventsLoop) PollEvents(callback func(Event)) {
	if !l.enter("PollEvents") {
		return
	}
	defer l.leave()

	if l.shared.pending.Swap(false) {
		l.deliver(Awakened{})
		callback(Awakened{})
	}
	for !l.shared.isClosed() {
		ev, ok := l.backend.NextEvent()
		if !ok {
			return
		}
		l.deliver(ev)
		callback(ev)
	}
}

// RunForever dispatches events until the callback returns Break, Interrupt
// is called, or the loop is closed. Events that were not delivered when the
// loop stopped stay queued for the next dispatch call.
func (l *EventsLoop) RunForever(callback func(Event) ControlFlow) {
	if !l.enter("RunForever") {
		return
	}
	defer l.leave()
	defer l.interrupted.Store(false)

	l.logger.Debug("run loop started")
	for {
		if l.interrupted.Load() || l.shared.isClosed() {
			l.logger.Debug("run loop interrupted")
			return
		}

		if l.shared.pending.Swap(false) {
			l.deliver(Awakened{})
			if callback(Awakened{}) == Break {
				return
			}
			continue
		}

		if ev, ok := l.backend.NextEvent(); ok {
			l.deliver(ev)
			if callback(ev) == Break {
				l.logger.Debug("run loop stopped by callback")
				return
			}
			continue
		}

		// Interrupt and Wakeup both poke the backend, so a request made
		// after the checks above still ends this wait.
		l.backend.Wait()
	}
}

// Close ends the loop's lifecycle and releases the backend. Proxies report
// ErrEventsLoopClosed afterwards. Calling Close more than once is harmless.
func (l *EventsLoop) Close() error {
	if !l.shared.close() {
		return nil
	}
	l.logger.Info("events loop closed", "live_windows", len(l.live))
	return l.backend.Close()
}

// LiveWindows returns the number of windows created on this loop that have
// not reported Destroyed yet.
func (l *EventsLoop) LiveWindows() int {
	return len(l.live)
}

func (l *EventsLoop) enter(op string) bool {
	if l.shared.isClosed() {
		return false
	}
	if l.dispatching {
		l.logger.Warn("re-entrant dispatch ignored", "op", op)
		return false
	}
	l.dispatching = true
	return true
}

func (l *EventsLoop) leave() {
	l.dispatching = false
}

func (l *EventsLoop) register(id WindowID) bool {
	if _, dup := l.live[id]; dup {
		return false
	}
	l.live[id] = struct{}{}
	return true
}

func (l *EventsLoop) deliver(ev Event) {
	if d, ok := ev.(Destroyed); ok {
		delete(l.live, d.WindowID)
	}
	if l.logger.Enabled(context.Background(), slog.LevelDebug) {
		l.logger.Debug("dispatch", "event", EventName(ev))
	}
}

func (s *loopShared) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// poke wakes the backend unless the loop is already closed.
func (s *loopShared) poke() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.closed {
		s.backend.Wake()
	}
}

func (s *loopShared) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	return true
}
