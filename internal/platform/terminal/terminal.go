//go:build !wasip1 && !js

// Package terminal implements a backend on a character terminal through
// tcell. The terminal is the only monitor and the only surface: one window
// covers it, sizes are measured in cells, and there is no absolute position
// to report.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

// Name is the registry name of this backend.
const Name = "terminal"

// Settings configure a terminal backend. It is also the value accepted in
// platform.Options.Settings.
type Settings struct {
	// Screen replaces the controlling terminal, for instance with a
	// tcell.SimulationScreen. The backend initializes it and finalizes it
	// on Close.
	Screen tcell.Screen
	// MonitorName overrides the monitor name, which defaults to $TERM.
	MonitorName string
}

func init() {
	platform.Register(Name, func(opts platform.Options) (platform.Backend, error) {
		var settings Settings
		switch v := opts.Settings.(type) {
		case Settings:
			settings = v
		case *Settings:
			if v != nil {
				settings = *v
			}
		}
		return Open(settings, opts.ScaleFactor, opts.Logger)
	})
}

// Backend is the terminal platform.Backend.
type Backend struct {
	instance uint32
	logger   *slog.Logger
	screen   tcell.Screen

	monitor  *monitor
	pointer  platform.DeviceID
	keyboard platform.DeviceID
	scale    float64

	mu      sync.Mutex
	window  *window
	nextID  uint64
	queue   []platform.Event
	stashed tcell.Event
	buttons tcell.ButtonMask
	cursorX int
	cursorY int
	closed  bool
}

var _ platform.Backend = (*Backend)(nil)

// Open takes over the controlling terminal, or settings.Screen when set.
// It fails with platform.ErrBackendUnavailable when neither stdin nor stdout
// is a terminal.
func Open(settings Settings, scale float64, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("backend", Name)

	screen := settings.Screen
	if screen == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, fmt.Errorf("%w: stdin and stdout must be a terminal", platform.ErrBackendUnavailable)
		}
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", platform.ErrBackendUnavailable, err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrBackendUnavailable, err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()
	screen.Show()

	name := settings.MonitorName
	if name == "" {
		name = os.Getenv("TERM")
	}

	instance := platform.NextInstance()
	b := &Backend{
		instance: instance,
		logger:   logger,
		screen:   screen,
		pointer:  platform.NewDeviceID(instance, 1),
		keyboard: platform.NewDeviceID(instance, 2),
		scale:    dpi.SanitizeScaleFactor(scale),
		nextID:   1,
	}
	width, height := screen.Size()
	b.monitor = &monitor{b: b, id: platform.NewMonitorID(instance, 1), name: name, width: width, height: height}

	b.logger.Info("backend opened", "term", name, "columns", width, "rows", height)
	return b, nil
}

func (b *Backend) Name() string { return Name }

func (b *Backend) AvailableMonitors() []platform.Monitor {
	return []platform.Monitor{b.monitor}
}

func (b *Backend) PrimaryMonitor() platform.Monitor { return b.monitor }

// Screen exposes the tcell screen so the application can draw its window.
func (b *Backend) Screen() tcell.Screen { return b.screen }

func (b *Backend) CreateWindow(attrs platform.WindowAttributes, _ platform.PlatformAttributes) (platform.WindowBackend, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, platform.ErrBackendUnavailable
	}
	if b.window != nil {
		return nil, fmt.Errorf("%w: the terminal holds a single window", platform.ErrTooManyWindows)
	}
	if attrs.Fullscreen != nil && attrs.Fullscreen.ID() != b.monitor.id {
		return nil, fmt.Errorf("%w: fullscreen monitor %v does not belong to this backend",
			platform.ErrInvalidAttributes, attrs.Fullscreen.ID())
	}

	w := &window{
		b:          b,
		id:         platform.NewWindowID(b.instance, b.nextID),
		title:      attrs.Title,
		visible:    attrs.Visible,
		fullscreen: attrs.Fullscreen != nil,
		size:       b.logicalSizeLocked(),
	}
	b.nextID++
	b.window = w

	b.screen.SetTitle(attrs.Title)
	if w.visible {
		b.queue = append(b.queue, platform.Refresh{WindowID: w.id})
	}
	b.logger.Debug("window created", "window", w.id.String())
	return w, nil
}

func (b *Backend) NextEvent() (platform.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		if len(b.queue) > 0 {
			ev := b.queue[0]
			b.queue[0] = nil
			b.queue = b.queue[1:]
			return ev, true
		}
		if b.closed {
			return nil, false
		}
		raw := b.stashed
		b.stashed = nil
		if raw == nil {
			if !b.screen.HasPendingEvent() {
				return nil, false
			}
			if raw = b.screen.PollEvent(); raw == nil {
				return nil, false
			}
		}
		b.queue = append(b.queue, b.translateLocked(raw)...)
	}
}

// Wait blocks in PollEvent and keeps the event for NextEvent. It runs
// without the lock so Wake and driver calls are never held up.
func (b *Backend) Wait() {
	b.mu.Lock()
	ready := len(b.queue) > 0 || b.stashed != nil || b.closed
	b.mu.Unlock()
	if ready {
		return
	}

	ev := b.screen.PollEvent()
	if ev == nil {
		return
	}
	b.mu.Lock()
	b.stashed = ev
	b.mu.Unlock()
}

// Wake posts an interrupt event. A full tcell queue already guarantees a
// pending event, so that error is ignored.
func (b *Backend) Wake() {
	_ = b.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Close restores the terminal.
func (b *Backend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.queue = nil
	b.mu.Unlock()

	b.screen.Fini()
	b.logger.Info("backend closed")
	return nil
}

func (b *Backend) logicalSizeLocked() dpi.LogicalSize {
	return dpi.NewPhysicalSize(float64(b.monitor.width), float64(b.monitor.height)).ToLogical(b.scale)
}

// monitor is the terminal itself. Its size is measured in cells.
type monitor struct {
	b    *Backend
	id   platform.MonitorID
	name string

	// width and height are guarded by b.mu.
	width, height int
}

func (m *monitor) ID() platform.MonitorID { return m.id }

func (m *monitor) Name() (string, bool) { return m.name, m.name != "" }

// Position aborts: a terminal has no place on any desktop it could report.
func (m *monitor) Position() dpi.PhysicalPosition {
	platform.FatalUnsupported(Name, "monitor position")
	return dpi.PhysicalPosition{}
}

func (m *monitor) Size() dpi.PhysicalSize {
	m.b.mu.Lock()
	defer m.b.mu.Unlock()
	return dpi.NewPhysicalSize(float64(m.width), float64(m.height))
}

func (m *monitor) ScaleFactor() float64 { return m.b.scale }
