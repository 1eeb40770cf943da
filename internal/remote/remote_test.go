package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/platform/headless"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	backend *headless.Backend
	loop    *platform.EventsLoop
	ctl     *Controller
	server  *Server
	window  *platform.Window
}

func newFixture(t *testing.T, settings headless.Settings) *fixture {
	t.Helper()
	backend := headless.New(settings, discardLogger())
	loop := platform.NewEventsLoop(backend, discardLogger())
	t.Cleanup(func() { _ = loop.Close() })

	attrs := platform.DefaultWindowAttributes()
	size := dpi.NewLogicalSize(640, 480)
	attrs.InnerSize = &size
	w, err := platform.NewWindow(loop, attrs, nil)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	ctl := NewController(loop, discardLogger())
	ctl.Track(w)
	return &fixture{
		backend: backend,
		loop:    loop,
		ctl:     ctl,
		server:  NewServer(ctl, discardLogger()),
		window:  w,
	}
}

// serveOnce dispatches until the next Awakened has been handled and returns
// the events the controller synthesized.
func (f *fixture) serveOnce(t *testing.T) []platform.Event {
	t.Helper()
	var synthesized []platform.Event
	awakened := false
	timer := time.AfterFunc(5*time.Second, f.loop.Interrupt)
	defer timer.Stop()
	f.loop.RunForever(func(ev platform.Event) platform.ControlFlow {
		synthesized = append(synthesized, f.ctl.Handle(ev)...)
		if _, ok := ev.(platform.Awakened); ok {
			awakened = true
			return platform.Break
		}
		return platform.Continue
	})
	if !awakened {
		t.Fatalf("loop was not woken")
	}
	return synthesized
}

// call runs fn on another goroutine the way the MCP SDK would, serves the
// loop once, and returns fn's error.
func (f *fixture) call(t *testing.T, fn func(ctx context.Context) error) ([]platform.Event, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()
	events := f.serveOnce(t)
	return events, <-done
}

func TestController_DoRunsOnLoop(t *testing.T) {
	f := newFixture(t, headless.Settings{})

	var got any
	_, err := f.call(t, func(ctx context.Context) error {
		v, err := f.ctl.Do(ctx, "count", func(s *Session) (any, error) {
			return len(s.Windows()), nil
		})
		got = v
		return err
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1 tracked window, got %v", got)
	}
	if f.ctl.Pending() != 0 {
		t.Fatalf("expected the queue to be drained")
	}
}

func TestController_DoAfterCloseFails(t *testing.T) {
	f := newFixture(t, headless.Settings{})
	if err := f.loop.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_, err := f.ctl.Do(context.Background(), "noop", func(*Session) (any, error) { return nil, nil })
	if !errors.Is(err, platform.ErrEventsLoopClosed) {
		t.Fatalf("expected ErrEventsLoopClosed, got %v", err)
	}
	if n := f.ctl.Pending(); n != 0 {
		t.Fatalf("expected the refused command to leave the queue, %d pending", n)
	}
}

func TestController_DoHonorsContext(t *testing.T) {
	f := newFixture(t, headless.Settings{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ctl.Do(ctx, "noop", func(*Session) (any, error) { return nil, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// The command still runs on the next wakeup without blocking the loop.
	f.serveOnce(t)
}

func TestController_ForgetsDestroyedWindows(t *testing.T) {
	f := newFixture(t, headless.Settings{})
	if err := f.window.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	f.loop.PollEvents(func(ev platform.Event) { f.ctl.Handle(ev) })

	_, err := f.call(t, func(ctx context.Context) error {
		_, _, err := f.server.handleSetTitle(ctx, nil, SetTitleInput{Window: f.window.ID().String(), Title: "x"})
		return err
	})
	if !errors.Is(err, ErrUnknownWindow) {
		t.Fatalf("expected ErrUnknownWindow, got %v", err)
	}
}

func TestTools_ListMonitors(t *testing.T) {
	f := newFixture(t, headless.Settings{MonitorName: "virtual", ScaleFactor: 2})

	var out ListMonitorsOutput
	_, err := f.call(t, func(ctx context.Context) (err error) {
		_, out, err = f.server.handleListMonitors(ctx, nil, ListMonitorsInput{})
		return err
	})
	if err != nil {
		t.Fatalf("list_monitors: %v", err)
	}
	if out.Backend != headless.Name || len(out.Monitors) != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	m := out.Monitors[0]
	if m.Name != "virtual" || !m.Primary || m.ScaleFactor != 2 {
		t.Fatalf("unexpected monitor %+v", m)
	}
}

func TestTools_ListWindows(t *testing.T) {
	f := newFixture(t, headless.Settings{})

	var out ListWindowsOutput
	_, err := f.call(t, func(ctx context.Context) (err error) {
		_, out, err = f.server.handleListWindows(ctx, nil, ListWindowsInput{})
		return err
	})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 1 {
		t.Fatalf("expected one window, got %+v", out.Windows)
	}
	w := out.Windows[0]
	if w.ID != f.window.ID().String() || w.Width != 640 || w.Height != 480 || w.X == nil {
		t.Fatalf("unexpected window %+v", w)
	}
}

func TestTools_ListWindowsSingleSurfaceHasNoPosition(t *testing.T) {
	f := newFixture(t, headless.Settings{SingleSurface: true})

	var out ListWindowsOutput
	_, err := f.call(t, func(ctx context.Context) (err error) {
		_, out, err = f.server.handleListWindows(ctx, nil, ListWindowsInput{})
		return err
	})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 1 || out.Windows[0].X != nil {
		t.Fatalf("expected one window without position, got %+v", out.Windows)
	}
}

func TestTools_SetTitle(t *testing.T) {
	f := newFixture(t, headless.Settings{})

	var out AckOutput
	_, err := f.call(t, func(ctx context.Context) (err error) {
		_, out, err = f.server.handleSetTitle(ctx, nil, SetTitleInput{Window: f.window.ID().String(), Title: "renamed"})
		return err
	})
	if err != nil || !out.OK {
		t.Fatalf("set_title: %v %+v", err, out)
	}
	state, ok := f.backend.State(f.window.ID())
	if !ok || state.Title != "renamed" {
		t.Fatalf("expected title renamed, got %+v", state)
	}
}

func TestTools_SetInnerSizeClamps(t *testing.T) {
	f := newFixture(t, headless.Settings{})
	limit := dpi.NewLogicalSize(500, 500)
	f.window.SetMaxDimensions(&limit)

	var out SetInnerSizeOutput
	_, err := f.call(t, func(ctx context.Context) (err error) {
		_, out, err = f.server.handleSetInnerSize(ctx, nil, SetInnerSizeInput{Window: f.window.ID().String(), Width: 900, Height: 300})
		return err
	})
	if err != nil {
		t.Fatalf("set_inner_size: %v", err)
	}
	if out.Width != 500 || out.Height != 300 {
		t.Fatalf("expected 500x300, got %+v", out)
	}
}

func TestTools_SetInnerSizeRejectsBadInput(t *testing.T) {
	f := newFixture(t, headless.Settings{})
	_, _, err := f.server.handleSetInnerSize(context.Background(), nil, SetInnerSizeInput{Window: f.window.ID().String(), Width: -1, Height: 10})
	if err == nil {
		t.Fatalf("expected negative width to be rejected")
	}
	if f.ctl.Pending() != 0 {
		t.Fatalf("expected nothing queued")
	}
}

func TestTools_RequestCloseSynthesizesEvent(t *testing.T) {
	f := newFixture(t, headless.Settings{})

	events, err := f.call(t, func(ctx context.Context) error {
		_, _, err := f.server.handleRequestClose(ctx, nil, RequestCloseInput{Window: f.window.ID().String()})
		return err
	})
	if err != nil {
		t.Fatalf("request_close: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one synthesized event, got %#v", events)
	}
	if c, ok := events[0].(platform.CloseRequested); !ok || c.WindowID != f.window.ID() {
		t.Fatalf("expected CloseRequested for the window, got %#v", events[0])
	}
}
