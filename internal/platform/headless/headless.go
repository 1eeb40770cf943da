// Package headless implements an in-memory backend. It keeps full window
// state, exposes one synthetic monitor, and takes its "native" events from a
// driver through the Simulate* methods and Inject.
//
// In single-surface mode it behaves like an embedded target that owns one
// full-screen surface: windows always cover the monitor, there are no
// absolute positions, the pointer cannot be grabbed or warped, and at most
// one window exists.
package headless

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

// Name is the registry name of this backend.
const Name = "headless"

const (
	defaultMonitorName  = "headless"
	defaultWidth        = 1920
	defaultHeight       = 1080
	defaultWindowWidth  = 800
	defaultWindowHeight = 600
)

// Settings configure a headless backend. It is also the value accepted in
// platform.Options.Settings.
type Settings struct {
	MonitorName   string
	Width         float64
	Height        float64
	ScaleFactor   float64
	SingleSurface bool
	// MaxWindows limits live windows; 0 means unlimited. Single-surface
	// mode always allows one.
	MaxWindows int
}

func (s Settings) withDefaults() Settings {
	if s.MonitorName == "" {
		s.MonitorName = defaultMonitorName
	}
	if s.Width <= 0 {
		s.Width = defaultWidth
	}
	if s.Height <= 0 {
		s.Height = defaultHeight
	}
	s.ScaleFactor = dpi.SanitizeScaleFactor(s.ScaleFactor)
	if s.SingleSurface {
		s.MaxWindows = 1
	}
	return s
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
		if opts.ScaleFactor > 0 {
			settings.ScaleFactor = opts.ScaleFactor
		}
		return New(settings, opts.Logger), nil
	})
}

// Backend is the headless platform.Backend.
type Backend struct {
	instance uint32
	settings Settings
	logger   *slog.Logger

	monitor  *monitor
	pointer  platform.DeviceID
	keyboard platform.DeviceID

	wake chan struct{}
	done chan struct{}

	mu         sync.Mutex
	queue      []platform.Event
	windows    map[uint64]*window
	nextID     uint64
	devices    map[uint64]struct{}
	nextDevice uint64
	scale      float64
	suspended  bool
	closed     bool
}

var _ platform.Backend = (*Backend)(nil)

// New opens a headless backend. It never fails.
func New(settings Settings, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	settings = settings.withDefaults()
	instance := platform.NextInstance()
	// The pointer and keyboard are attached from the start.
	b := &Backend{
		instance:   instance,
		settings:   settings,
		logger:     logger.With("backend", Name),
		pointer:    platform.NewDeviceID(instance, 1),
		keyboard:   platform.NewDeviceID(instance, 2),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		windows:    make(map[uint64]*window),
		nextID:     1,
		devices:    map[uint64]struct{}{1: {}, 2: {}},
		nextDevice: 3,
		scale:      settings.ScaleFactor,
	}
	b.monitor = &monitor{b: b, id: platform.NewMonitorID(instance, 1)}
	b.logger.Info("backend opened",
		"monitor", settings.MonitorName,
		"width", settings.Width,
		"height", settings.Height,
		"scale_factor", settings.ScaleFactor,
		"single_surface", settings.SingleSurface)
	return b
}

func (b *Backend) Name() string { return Name }

func (b *Backend) AvailableMonitors() []platform.Monitor {
	return []platform.Monitor{b.monitor}
}

func (b *Backend) PrimaryMonitor() platform.Monitor {
	return b.monitor
}

// Pointer is the device reported on simulated pointer input.
func (b *Backend) Pointer() platform.DeviceID { return b.pointer }

// Keyboard is the device reported on simulated keyboard input.
func (b *Backend) Keyboard() platform.DeviceID { return b.keyboard }

func (b *Backend) CreateWindow(attrs platform.WindowAttributes, _ platform.PlatformAttributes) (platform.WindowBackend, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, platform.ErrBackendUnavailable
	}
	if max := b.settings.MaxWindows; max > 0 && len(b.windows) >= max {
		return nil, fmt.Errorf("%w: %d of %d windows open", platform.ErrTooManyWindows, len(b.windows), max)
	}
	if attrs.Fullscreen != nil && attrs.Fullscreen.ID() != b.monitor.id {
		return nil, fmt.Errorf("%w: fullscreen monitor %v does not belong to this backend",
			platform.ErrInvalidAttributes, attrs.Fullscreen.ID())
	}

	raw := b.nextID
	b.nextID++

	w := &window{
		b:           b,
		id:          platform.NewWindowID(b.instance, raw),
		title:       attrs.Title,
		size:        attrs.ClampedInnerSize(dpi.NewLogicalSize(defaultWindowWidth, defaultWindowHeight)),
		min:         copySize(attrs.MinDimensions),
		max:         copySize(attrs.MaxDimensions),
		resizable:   attrs.Resizable,
		visible:     attrs.Visible,
		decorations: attrs.Decorations,
		alwaysOnTop: attrs.AlwaysOnTop,
		maximized:   attrs.Maximized,
		icon:        attrs.WindowIcon,
	}
	if attrs.Fullscreen != nil {
		w.fullscreen = b.monitor
	}
	if b.settings.SingleSurface {
		w.size = b.logicalMonitorSizeLocked()
	}
	b.windows[raw] = w

	if w.visible {
		b.pushLocked(platform.Refresh{WindowID: w.id})
	}
	b.logger.Debug("window created", "window", w.id.String())
	return w, nil
}

func (b *Backend) NextEvent() (platform.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil, false
	}
	ev := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return ev, true
}

func (b *Backend) Wait() {
	b.mu.Lock()
	pending := len(b.queue) > 0
	b.mu.Unlock()
	if pending {
		return
	}
	select {
	case <-b.wake:
	case <-b.done:
	}
}

func (b *Backend) Wake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	b.queue = nil
	b.logger.Info("backend closed", "windows", len(b.windows))
	return nil
}

// Pending returns the number of queued events.
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Inject queues an event as if the platform had produced it. It is safe to
// call from any goroutine.
func (b *Backend) Inject(ev platform.Event) {
	b.mu.Lock()
	b.pushLocked(ev)
	b.mu.Unlock()
}

// pushLocked queues ev and wakes a blocked Wait. b.mu must be held.
func (b *Backend) pushLocked(ev platform.Event) {
	if b.closed {
		return
	}
	b.queue = append(b.queue, ev)
	b.Wake()
}

func (b *Backend) logicalMonitorSizeLocked() dpi.LogicalSize {
	return dpi.NewPhysicalSize(b.settings.Width, b.settings.Height).ToLogical(b.scale)
}

func copySize(s *dpi.LogicalSize) *dpi.LogicalSize {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

type monitor struct {
	b  *Backend
	id platform.MonitorID
}

func (m *monitor) ID() platform.MonitorID { return m.id }

func (m *monitor) Name() (string, bool) {
	return m.b.settings.MonitorName, true
}

func (m *monitor) Position() dpi.PhysicalPosition {
	if m.b.settings.SingleSurface {
		platform.FatalUnsupported(Name, "monitor position")
	}
	return dpi.PhysicalPosition{}
}

func (m *monitor) Size() dpi.PhysicalSize {
	return dpi.NewPhysicalSize(m.b.settings.Width, m.b.settings.Height)
}

func (m *monitor) ScaleFactor() float64 {
	m.b.mu.Lock()
	defer m.b.mu.Unlock()
	return m.b.scale
}
