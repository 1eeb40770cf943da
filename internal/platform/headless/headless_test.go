package headless_test

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/platform/headless"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLoop(t *testing.T, settings headless.Settings) (*platform.EventsLoop, *headless.Backend) {
	t.Helper()
	backend := headless.New(settings, discardLogger())
	loop := platform.NewEventsLoop(backend, discardLogger())
	t.Cleanup(func() { _ = loop.Close() })
	return loop, backend
}

func mustWindow(t *testing.T, loop *platform.EventsLoop) *platform.Window {
	t.Helper()
	w, err := platform.NewWindow(loop, platform.DefaultWindowAttributes(), nil)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func drain(loop *platform.EventsLoop) []platform.Event {
	var out []platform.Event
	loop.PollEvents(func(ev platform.Event) { out = append(out, ev) })
	return out
}

func TestPollEvents_EmptyQueueNeverCallsBack(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})

	calls := 0
	loop.PollEvents(func(platform.Event) { calls++ })
	if calls != 0 {
		t.Fatalf("expected no callbacks, got %d", calls)
	}
}

func TestPollEvents_DeliversInOrder(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	backend.SimulateFocus(w.ID(), true)
	backend.SimulateCloseRequest(w.ID())
	backend.SimulateFocus(w.ID(), false)

	got := drain(loop)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if f, ok := got[0].(platform.Focused); !ok || !f.Focused {
		t.Fatalf("expected Focused(true) first, got %#v", got[0])
	}
	if _, ok := got[1].(platform.CloseRequested); !ok {
		t.Fatalf("expected CloseRequested second, got %#v", got[1])
	}
	if f, ok := got[2].(platform.Focused); !ok || f.Focused {
		t.Fatalf("expected Focused(false) last, got %#v", got[2])
	}
}

func TestWindowIDs_StableAndUnique(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})
	a := mustWindow(t, loop)
	b := mustWindow(t, loop)

	if a.ID() != a.ID() {
		t.Fatalf("expected ID to be stable")
	}
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct IDs, both were %v", a.ID())
	}
	if a.ID() == platform.DummyWindowID() {
		t.Fatalf("live window must not carry the dummy identity")
	}
	if got := loop.LiveWindows(); got != 2 {
		t.Fatalf("expected 2 live windows, got %d", got)
	}
}

func TestWindowIDs_DifferAcrossLoops(t *testing.T) {
	loopA, _ := newLoop(t, headless.Settings{})
	loopB, _ := newLoop(t, headless.Settings{})

	a := mustWindow(t, loopA)
	b := mustWindow(t, loopB)
	if a.ID() == b.ID() {
		t.Fatalf("windows of isolated loops must not share identities")
	}
}

func TestRunForever_InterruptFromCallback(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	backend.SimulateFocus(w.ID(), true)
	backend.SimulateFocus(w.ID(), false)

	calls := 0
	loop.RunForever(func(platform.Event) platform.ControlFlow {
		calls++
		loop.Interrupt()
		return platform.Continue
	})
	if calls != 1 {
		t.Fatalf("expected interrupt to stop after the current event, got %d calls", calls)
	}
	if backend.Pending() != 1 {
		t.Fatalf("expected the second event to stay queued, got %d pending", backend.Pending())
	}
}

func TestRunForever_InterruptFromAnotherGoroutine(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		loop.Interrupt()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.RunForever(func(platform.Event) platform.ControlFlow { return platform.Continue })
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("RunForever did not return after Interrupt")
	}
}

func TestRunForever_BreakKeepsRemainingEvents(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	backend.SimulateCloseRequest(w.ID())
	backend.SimulateFocus(w.ID(), true)

	loop.RunForever(func(ev platform.Event) platform.ControlFlow {
		if _, ok := ev.(platform.CloseRequested); ok {
			return platform.Break
		}
		t.Fatalf("unexpected event before break: %#v", ev)
		return platform.Continue
	})

	got := drain(loop)
	if len(got) != 1 {
		t.Fatalf("expected 1 leftover event, got %d", len(got))
	}
	if _, ok := got[0].(platform.Focused); !ok {
		t.Fatalf("expected leftover Focused, got %#v", got[0])
	}
}

func TestRunForever_InterruptIsConsumed(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	loop.Interrupt()
	loop.RunForever(func(platform.Event) platform.ControlFlow {
		t.Fatalf("no event expected after a pending interrupt")
		return platform.Continue
	})

	backend.SimulateFocus(w.ID(), true)
	delivered := 0
	loop.RunForever(func(platform.Event) platform.ControlFlow {
		delivered++
		return platform.Break
	})
	if delivered != 1 {
		t.Fatalf("expected the second run to deliver, got %d", delivered)
	}
}

func TestProxy_WakeupAfterCloseFails(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})
	proxy := loop.CreateProxy()

	if err := proxy.Wakeup(); err != nil {
		t.Fatalf("Wakeup on open loop: %v", err)
	}
	if err := loop.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := proxy.Wakeup(); !errors.Is(err, platform.ErrEventsLoopClosed) {
		t.Fatalf("expected ErrEventsLoopClosed, got %v", err)
	}
}

func TestProxy_WakeupDeliversAwakened(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})
	proxy := loop.CreateProxy()

	for i := 0; i < 3; i++ {
		if err := proxy.Wakeup(); err != nil {
			t.Fatalf("Wakeup: %v", err)
		}
	}
	got := drain(loop)
	if len(got) != 1 {
		t.Fatalf("expected wakeups to coalesce into 1 event, got %d", len(got))
	}
	if _, ok := got[0].(platform.Awakened); !ok {
		t.Fatalf("expected Awakened, got %#v", got[0])
	}
}

func TestProxy_ConcurrentWakeupsReachBlockedLoop(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)
	proxy := loop.CreateProxy()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		time.Sleep(20 * time.Millisecond)
		backend.SimulateFocus(w.ID(), true)
		for i := 0; i < 2; i++ {
			go func() {
				defer wg.Done()
				if err := proxy.Wakeup(); err != nil {
					t.Errorf("Wakeup: %v", err)
				}
			}()
		}
	}()

	watchdog := time.AfterFunc(5*time.Second, loop.Interrupt)
	defer watchdog.Stop()

	focused, awakened := 0, 0
	loop.RunForever(func(ev platform.Event) platform.ControlFlow {
		switch ev.(type) {
		case platform.Focused:
			focused++
		case platform.Awakened:
			awakened++
		}
		if focused >= 1 && awakened >= 1 {
			return platform.Break
		}
		return platform.Continue
	})
	wg.Wait()

	for _, ev := range drain(loop) {
		switch ev.(type) {
		case platform.Focused:
			focused++
		case platform.Awakened:
			awakened++
		}
	}
	if awakened < 1 || awakened > 2 {
		t.Fatalf("expected 1 or 2 Awakened events, got %d", awakened)
	}
	if focused != 1 {
		t.Fatalf("expected the native event exactly once, got %d", focused)
	}
}

func TestWindow_SetInnerSizeRoundTrip(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	want := dpi.NewLogicalSize(640, 480)
	w.SetInnerSize(want)
	got, ok := w.InnerSize()
	if !ok || got != want {
		t.Fatalf("expected inner size %v, got %v (ok=%v)", want, got, ok)
	}

	events := drain(loop)
	if len(events) != 1 {
		t.Fatalf("expected one Resized event, got %d", len(events))
	}
	if r, ok := events[0].(platform.Resized); !ok || r.Size != want {
		t.Fatalf("expected Resized(%v), got %#v", want, events[0])
	}
}

func TestWindow_MinMaxClamp(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)

	min := dpi.NewLogicalSize(300, 200)
	max := dpi.NewLogicalSize(500, 0)
	w.SetMinDimensions(&min)
	w.SetMaxDimensions(&max)

	w.SetInnerSize(dpi.NewLogicalSize(100, 5000))
	got, _ := w.InnerSize()
	if got.Width != 300 || got.Height != 5000 {
		t.Fatalf("expected 300x5000, got %v", got)
	}
	w.SetInnerSize(dpi.NewLogicalSize(900, 100))
	got, _ = w.InnerSize()
	if got.Width != 500 || got.Height != 200 {
		t.Fatalf("expected 500x200, got %v", got)
	}
}

func TestWindow_HiDPIFactorFinitePositive(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{ScaleFactor: math.NaN()})
	w := mustWindow(t, loop)

	f := w.HiDPIFactor()
	if !(f > 0) || math.IsInf(f, 0) {
		t.Fatalf("expected finite positive scale, got %v", f)
	}
	if f != 1 {
		t.Fatalf("expected unknown scale to default to 1, got %v", f)
	}
}

func TestScaleFactorChange_ResizesLogically(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	backend.SimulateScaleFactor(2)
	events := drain(loop)
	if len(events) != 2 {
		t.Fatalf("expected HiDPIFactorChanged and Resized, got %d events", len(events))
	}
	if h, ok := events[0].(platform.HiDPIFactorChanged); !ok || h.ScaleFactor != 2 {
		t.Fatalf("expected HiDPIFactorChanged(2), got %#v", events[0])
	}
	size, _ := w.InnerSize()
	if size != dpi.NewLogicalSize(400, 300) {
		t.Fatalf("expected the physical size to be kept, got logical %v", size)
	}
	if w.HiDPIFactor() != 2 {
		t.Fatalf("expected scale 2, got %v", w.HiDPIFactor())
	}
}

func TestMonitors_PrimaryIsFirst(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{MonitorName: "virtual-0"})
	w := mustWindow(t, loop)

	monitors := loop.AvailableMonitors()
	if len(monitors) < 1 {
		t.Fatalf("expected at least one monitor")
	}
	if loop.PrimaryMonitor().ID() != monitors[0].ID() {
		t.Fatalf("expected primary monitor to be the first one")
	}
	if len(w.AvailableMonitors()) != len(monitors) {
		t.Fatalf("window and loop must agree on monitors")
	}
	if name, ok := monitors[0].Name(); !ok || name != "virtual-0" {
		t.Fatalf("expected monitor name virtual-0, got %q", name)
	}
	if w.CurrentMonitor().ID() != monitors[0].ID() {
		t.Fatalf("expected current monitor to be the only monitor")
	}

	infos := platform.DescribeAll(loop)
	if len(infos) != 1 || !infos[0].Primary {
		t.Fatalf("expected one primary monitor description, got %+v", infos)
	}
	if infos[0].X == nil || infos[0].Y == nil {
		t.Fatalf("expected a windowed monitor to report its position")
	}
}

func TestSingleSurface_MonitorPositionIsFatal(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{SingleSurface: true})
	m := loop.PrimaryMonitor()

	func() {
		defer func() {
			if r := recover(); !platform.IsFatalUnsupported(r) {
				t.Fatalf("expected a fatal unsupported panic, got %v", r)
			}
		}()
		m.Position()
	}()

	if _, ok := platform.TryPosition(m); ok {
		t.Fatalf("expected TryPosition to report no position")
	}
	infos := platform.DescribeAll(loop)
	if infos[0].X != nil {
		t.Fatalf("expected no position in the description")
	}
}

func TestSingleSurface_WindowCoversMonitor(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{SingleSurface: true, Width: 1280, Height: 720, ScaleFactor: 2})
	w := mustWindow(t, loop)
	drain(loop)

	want := dpi.NewLogicalSize(640, 360)
	got, ok := w.InnerSize()
	if !ok || got != want {
		t.Fatalf("expected surface size %v, got %v", want, got)
	}

	w.SetInnerSize(dpi.NewLogicalSize(100, 100))
	if got, _ := w.InnerSize(); got != want {
		t.Fatalf("expected SetInnerSize to be ignored, got %v", got)
	}
	if _, ok := w.Position(); ok {
		t.Fatalf("expected no window position on a single surface")
	}
	if events := drain(loop); len(events) != 0 {
		t.Fatalf("expected no events from ignored setters, got %d", len(events))
	}
}

func TestSingleSurface_NoOpSettersDoNotPanic(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{SingleSurface: true})
	w := mustWindow(t, loop)

	icon, err := platform.NewIcon(make([]byte, 4*4), 2, 2)
	if err != nil {
		t.Fatalf("NewIcon: %v", err)
	}
	size := dpi.NewLogicalSize(10, 10)

	w.SetTitle("surface")
	w.SetPosition(dpi.NewLogicalPosition(5, 5))
	w.SetMinDimensions(&size)
	w.SetMaxDimensions(nil)
	w.SetResizable(false)
	w.Hide()
	w.Show()
	w.SetCursor(platform.CursorHand)
	w.HideCursor(true)
	w.SetMaximized(true)
	w.SetFullscreen(loop.PrimaryMonitor())
	w.SetFullscreen(nil)
	w.SetDecorations(false)
	w.SetAlwaysOnTop(true)
	w.SetWindowIcon(icon)
	w.SetIMESpot(dpi.NewLogicalPosition(1, 1))
}

func TestSingleSurface_CursorOperationsRefused(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{SingleSurface: true})
	w := mustWindow(t, loop)

	if err := w.GrabCursor(true); !errors.Is(err, platform.ErrNotSupported) {
		t.Fatalf("expected grab to be refused, got %v", err)
	}
	if err := w.SetCursorPosition(dpi.NewLogicalPosition(1, 1)); !platform.IsCapabilityRefusal(err) {
		t.Fatalf("expected cursor placement to be refused, got %v", err)
	}
}

func TestSingleSurface_SecondWindowFails(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{SingleSurface: true})
	mustWindow(t, loop)

	_, err := platform.NewWindow(loop, platform.DefaultWindowAttributes(), nil)
	var ce *platform.CreationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CreationError, got %v", err)
	}
	if !errors.Is(err, platform.ErrTooManyWindows) {
		t.Fatalf("expected ErrTooManyWindows, got %v", err)
	}
}

func TestNewWindow_InvalidAttributes(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})

	attrs := platform.DefaultWindowAttributes()
	bad := dpi.NewLogicalSize(-5, 10)
	attrs.InnerSize = &bad
	_, err := platform.NewWindow(loop, attrs, nil)
	if !errors.Is(err, platform.ErrInvalidAttributes) {
		t.Fatalf("expected ErrInvalidAttributes, got %v", err)
	}
	if loop.LiveWindows() != 0 {
		t.Fatalf("failed creation must not register a window")
	}
}

func TestNewWindow_ClosedLoop(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{})
	_ = loop.Close()

	_, err := platform.NewWindow(loop, platform.DefaultWindowAttributes(), nil)
	if !errors.Is(err, platform.ErrEventsLoopClosed) {
		t.Fatalf("expected ErrEventsLoopClosed, got %v", err)
	}
}

func TestWindow_CloseDeliversDestroyed(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	events := drain(loop)
	if len(events) != 1 {
		t.Fatalf("expected Destroyed, got %d events", len(events))
	}
	if d, ok := events[0].(platform.Destroyed); !ok || d.WindowID != w.ID() {
		t.Fatalf("expected Destroyed for %v, got %#v", w.ID(), events[0])
	}
	if loop.LiveWindows() != 0 {
		t.Fatalf("expected no live windows, got %d", loop.LiveWindows())
	}
	if _, ok := backend.State(w.ID()); ok {
		t.Fatalf("expected destroyed window to be gone from the backend")
	}

	w.SetTitle("after close")
	if _, ok := w.InnerSize(); ok {
		t.Fatalf("expected no size for a destroyed window")
	}
}

func TestSimulateKey_ProducesCharacter(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	backend.SimulateKey(w.ID(), 'a', platform.Pressed, platform.ModifiersState{})
	backend.SimulateKey(w.ID(), 'a', platform.Released, platform.ModifiersState{})

	events := drain(loop)
	if len(events) != 3 {
		t.Fatalf("expected key, char, key; got %d events", len(events))
	}
	k, ok := events[0].(platform.KeyboardInput)
	if !ok || k.Input.Key != platform.KeyA || k.Input.State != platform.Pressed {
		t.Fatalf("expected KeyA pressed, got %#v", events[0])
	}
	if k.DeviceID != backend.Keyboard() {
		t.Fatalf("expected keyboard device, got %v", k.DeviceID)
	}
	if c, ok := events[1].(platform.ReceivedCharacter); !ok || c.Char != 'a' {
		t.Fatalf("expected ReceivedCharacter('a'), got %#v", events[1])
	}
}

func TestSimulate_UnknownWindowIgnored(t *testing.T) {
	_, backend := newLoop(t, headless.Settings{})
	other := platform.NewWindowID(platform.NextInstance(), 1)

	if backend.SimulateFocus(other, true) {
		t.Fatalf("expected foreign window to be rejected")
	}
	if backend.Pending() != 0 {
		t.Fatalf("expected nothing queued")
	}
}

func TestWindowState_TracksSetters(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)

	w.SetTitle("renamed")
	w.SetAlwaysOnTop(true)
	w.SetCursor(platform.CursorText)
	if err := w.GrabCursor(true); err != nil {
		t.Fatalf("GrabCursor: %v", err)
	}
	w.SetFullscreen(loop.PrimaryMonitor())

	st, ok := backend.State(w.ID())
	if !ok {
		t.Fatalf("expected live window state")
	}
	if st.Title != "renamed" || !st.AlwaysOnTop || st.Cursor != platform.CursorText || !st.CursorGrabbed || !st.Fullscreen {
		t.Fatalf("unexpected state %+v", st)
	}
	if m, ok := w.Fullscreen(); !ok || m.ID() != loop.PrimaryMonitor().ID() {
		t.Fatalf("expected fullscreen on the primary monitor")
	}
}

func TestRawWindowHandle_NamesTheWindow(t *testing.T) {
	loop, _ := newLoop(t, headless.Settings{MonitorName: "virtual"})
	a := mustWindow(t, loop)
	b := mustWindow(t, loop)

	ha, hb := a.RawWindowHandle(), b.RawWindowHandle()
	if ha.Platform != headless.Name || ha.Display != "virtual" {
		t.Fatalf("unexpected handle %+v", ha)
	}
	if ha.Window != a.ID().Raw() || ha.Window == hb.Window {
		t.Fatalf("handles %+v and %+v do not follow window ids", ha, hb)
	}
}

func TestSimulateIME_PreeditThenCommit(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})
	w := mustWindow(t, loop)
	drain(loop)

	backend.SimulateIMEPreedit(w.ID(), "にほ", 3)
	backend.SimulateIMEPreedit(w.ID(), "にほん", 99)
	backend.SimulateIMECommit(w.ID(), "日本")

	events := drain(loop)
	if len(events) != 5 {
		t.Fatalf("expected 2 preedits, a clear and 2 characters, got %#v", events)
	}
	if p, ok := events[0].(platform.IMEPreedit); !ok || p.Text != "にほ" || p.Cursor != 3 || p.WindowID != w.ID() {
		t.Fatalf("unexpected first preedit %#v", events[0])
	}
	if p := events[1].(platform.IMEPreedit); p.Cursor != -1 {
		t.Fatalf("expected an out of range caret to be hidden, got %d", p.Cursor)
	}
	if p := events[2].(platform.IMEPreedit); p.Text != "" || p.Cursor != -1 {
		t.Fatalf("expected the commit to clear the preedit, got %#v", p)
	}
	if c := events[3].(platform.ReceivedCharacter); c.Char != '日' {
		t.Fatalf("expected committed text, got %q", c.Char)
	}
}

func TestSimulateSuspend_ReportsTransitionsOnly(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})

	if !backend.SimulateSuspend(true) {
		t.Fatalf("expected suspend to change state")
	}
	if backend.SimulateSuspend(true) {
		t.Fatalf("expected a repeated suspend to be ignored")
	}
	backend.SimulateSuspend(false)

	events := drain(loop)
	if len(events) != 2 {
		t.Fatalf("expected suspend and resume, got %#v", events)
	}
	if s := events[0].(platform.Suspended); !s.Suspended {
		t.Fatalf("expected Suspended(true) first")
	}
	if s := events[1].(platform.Suspended); s.Suspended {
		t.Fatalf("expected Suspended(false) second")
	}
}

func TestSimulateDevices_AddMoveRemove(t *testing.T) {
	loop, backend := newLoop(t, headless.Settings{})

	tablet := backend.SimulateDeviceAdded()
	if tablet == backend.Pointer() || tablet == backend.Keyboard() || tablet.IsDummy() {
		t.Fatalf("expected a fresh device id, got %v", tablet)
	}
	if !backend.SimulateMouseMotion(tablet, 2, -1) {
		t.Fatalf("expected motion from an attached device")
	}
	if !backend.SimulateDeviceRemoved(tablet) {
		t.Fatalf("expected removal of an attached device")
	}
	if backend.SimulateDeviceRemoved(tablet) || backend.SimulateMouseMotion(tablet, 1, 1) {
		t.Fatalf("expected a removed device to be unknown")
	}
	if backend.SimulateMouseMotion(platform.DummyDeviceID(), 1, 1) {
		t.Fatalf("expected the dummy device to be rejected")
	}

	events := drain(loop)
	if len(events) != 3 {
		t.Fatalf("expected added, motion, removed; got %#v", events)
	}
	if a, ok := events[0].(platform.DeviceAdded); !ok || a.DeviceID != tablet {
		t.Fatalf("unexpected %#v", events[0])
	}
	if m, ok := events[1].(platform.MouseMotion); !ok || m.DeviceID != tablet || m.DeltaX != 2 || m.DeltaY != -1 {
		t.Fatalf("unexpected %#v", events[1])
	}
	if r, ok := events[2].(platform.DeviceRemoved); !ok || r.DeviceID != tablet {
		t.Fatalf("unexpected %#v", events[2])
	}

	if again := backend.SimulateDeviceAdded(); again == tablet {
		t.Fatalf("expected device ids not to be reissued")
	}
}

func TestSimulateDevices_OtherLoopRejected(t *testing.T) {
	_, a := newLoop(t, headless.Settings{})
	_, b := newLoop(t, headless.Settings{})

	if b.SimulateMouseMotion(a.Pointer(), 1, 1) {
		t.Fatalf("expected a device from another backend to be rejected")
	}
}
