package platform

// EventsLoopProxy wakes an EventsLoop from any goroutine. Copies share the
// same target loop.
type EventsLoopProxy struct {
	shared *loopShared
}

// Wakeup makes the loop dispatch an Awakened event. Every successful call is
// followed by at least one Awakened; rapid calls may coalesce into one. It
// returns ErrEventsLoopClosed if the loop has been closed.
func (p *EventsLoopProxy) Wakeup() error {
	s := p.shared
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrEventsLoopClosed
	}
	// Only the first of a burst reaches the backend; the loop clears the
	// flag before it dispatches Awakened, so later calls post again.
	if s.pending.CompareAndSwap(false, true) {
		s.backend.Wake()
	}
	return nil
}
