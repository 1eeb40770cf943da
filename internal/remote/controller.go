package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/winloop/internal/platform"
)

// ErrUnknownWindow is returned for a window ID the controller is not tracking.
var ErrUnknownWindow = errors.New("unknown window")

// Controller lets other goroutines act on windows owned by an events loop.
// Requests are queued, the loop is woken through its proxy, and the loop
// goroutine runs them when it dispatches Awakened.
//
// Track, Forget and Handle must be called on the loop goroutine; Do is safe
// from anywhere.
type Controller struct {
	loop   *platform.EventsLoop
	proxy  *platform.EventsLoopProxy
	logger *slog.Logger

	// windows is only touched on the loop goroutine.
	windows map[string]*platform.Window

	mu    sync.Mutex
	queue []*command
}

// Session is the view of the loop a queued command runs against.
type Session struct {
	c *Controller

	// synthesized collects events the command wants the application to see.
	synthesized []platform.Event
}

type command struct {
	name  string
	run   func(*Session) (any, error)
	reply chan result
}

type result struct {
	value any
	err   error
}

func NewController(loop *platform.EventsLoop, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		loop:    loop,
		proxy:   loop.CreateProxy(),
		logger:  logger.With("component", "remote"),
		windows: make(map[string]*platform.Window),
	}
}

// Track makes w addressable by its ID string.
func (c *Controller) Track(w *platform.Window) {
	c.windows[w.ID().String()] = w
}

// Forget stops tracking a window.
func (c *Controller) Forget(id platform.WindowID) {
	delete(c.windows, id.String())
}

// Handle keeps the controller in step with the loop. It runs queued commands
// on Awakened and forgets destroyed windows. The returned events were
// synthesized by commands, for example CloseRequested from request_close,
// and should be processed as if the platform had delivered them.
func (c *Controller) Handle(ev platform.Event) []platform.Event {
	switch e := ev.(type) {
	case platform.Awakened:
		return c.Apply()
	case platform.Destroyed:
		c.Forget(e.WindowID)
	}
	return nil
}

// Apply runs every queued command in order.
func (c *Controller) Apply() []platform.Event {
	c.mu.Lock()
	pending := c.queue
	c.queue = nil
	c.mu.Unlock()

	s := &Session{c: c}
	for _, cmd := range pending {
		value, err := cmd.run(s)
		if err != nil {
			c.logger.Warn("remote command failed", "command", cmd.name, "error", err)
		} else {
			c.logger.Debug("remote command applied", "command", cmd.name)
		}
		cmd.reply <- result{value: value, err: err}
	}
	return s.synthesized
}

// Do queues fn for the loop goroutine and waits for its result. When ctx
// ends first the command may still run later; its result is discarded.
func (c *Controller) Do(ctx context.Context, name string, fn func(*Session) (any, error)) (any, error) {
	cmd := &command{name: name, run: fn, reply: make(chan result, 1)}

	c.mu.Lock()
	c.queue = append(c.queue, cmd)
	c.mu.Unlock()

	if err := c.proxy.Wakeup(); err != nil {
		c.drop(cmd)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	select {
	case r := <-cmd.reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", name, ctx.Err())
	}
}

// drop removes cmd if the loop has not taken it yet.
func (c *Controller) drop(cmd *command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, queued := range c.queue {
		if queued == cmd {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued commands.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Loop returns the loop the session acts on.
func (s *Session) Loop() *platform.EventsLoop { return s.c.loop }

// Window looks up a tracked window by its ID string.
func (s *Session) Window(id string) (*platform.Window, error) {
	w, ok := s.c.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownWindow, id)
	}
	return w, nil
}

// Windows returns the tracked windows ordered by ID.
func (s *Session) Windows() []*platform.Window {
	out := make([]*platform.Window, 0, len(s.c.windows))
	for _, w := range s.c.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Compare(out[j].ID()) < 0 })
	return out
}

// Emit hands ev to the application after the current batch of commands.
func (s *Session) Emit(ev platform.Event) {
	s.synthesized = append(s.synthesized, ev)
}
