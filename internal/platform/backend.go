package platform

import "github.com/1broseidon/winloop/internal/dpi"

// Monitor is a display surface reported by a backend. Queries are pure
// functions of backend state at call time.
type Monitor interface {
	ID() MonitorID
	// Name returns a human-readable name, or false if none is available.
	Name() (string, bool)
	// Position returns the top-left corner in absolute pixels. Backends
	// without an absolute coordinate space call FatalUnsupported.
	Position() dpi.PhysicalPosition
	Size() dpi.PhysicalSize
	// ScaleFactor returns the HiDPI ratio, 1.0 when unknown.
	ScaleFactor() float64
}

// MonitorDirectory enumerates display surfaces.
type MonitorDirectory interface {
	// AvailableMonitors is never empty on a backend that supports displays.
	AvailableMonitors() []Monitor
	// PrimaryMonitor is deterministic, usually the first enumerated monitor.
	PrimaryMonitor() Monitor
}

// Backend abstracts one instance of a platform's window system. The
// EventsLoop owns it exclusively.
type Backend interface {
	MonitorDirectory

	Name() string

	// CreateWindow materializes a window. The returned window must be
	// addressable by its ID immediately.
	CreateWindow(attrs WindowAttributes, pl PlatformAttributes) (WindowBackend, error)

	// NextEvent returns the oldest pending event translated to the uniform
	// set. It never blocks. Native wakeup messages are consumed silently.
	NextEvent() (Event, bool)

	// Wait blocks until NextEvent may have something to return or Wake is
	// called. A Wake that happens before Wait makes that Wait return
	// immediately. Spurious returns are allowed.
	Wait()

	// Wake interrupts Wait. It is the only method that may be called from
	// any goroutine, and it must not block.
	Wake()

	// Close releases native resources. It is called once, after which no
	// other method is called.
	Close() error
}

// WindowBackend is the per-window half of a backend. Setters that do not
// apply on a platform are no-ops. Getters report false when the platform
// cannot know the value.
type WindowBackend interface {
	ID() WindowID

	SetTitle(title string)

	Position() (dpi.LogicalPosition, bool)
	InnerPosition() (dpi.LogicalPosition, bool)
	SetPosition(pos dpi.LogicalPosition)

	InnerSize() (dpi.LogicalSize, bool)
	OuterSize() (dpi.LogicalSize, bool)
	SetInnerSize(size dpi.LogicalSize)
	SetMinDimensions(size *dpi.LogicalSize)
	SetMaxDimensions(size *dpi.LogicalSize)
	SetResizable(resizable bool)

	Show()
	Hide()

	SetCursor(cursor MouseCursor)
	GrabCursor(grab bool) error
	HideCursor(hide bool)
	SetCursorPosition(pos dpi.LogicalPosition) error

	// ScaleFactor may return any value; Window sanitizes it.
	ScaleFactor() float64

	SetMaximized(maximized bool)
	Fullscreen() (Monitor, bool)
	SetFullscreen(monitor Monitor)
	SetDecorations(decorations bool)
	SetAlwaysOnTop(alwaysOnTop bool)
	SetWindowIcon(icon *Icon)
	SetIMESpot(pos dpi.LogicalPosition)

	CurrentMonitor() Monitor

	RawWindowHandle() RawWindowHandle

	// Destroy closes the native window. The backend reports Destroyed.
	Destroy() error
}

// RawWindowHandle exposes a native handle for graphics interop. It names the
// same live window as the WindowID; nothing is promised once the window is
// destroyed.
type RawWindowHandle struct {
	// Platform names the handle family, e.g. "xcb", "terminal", "headless".
	Platform string
	Window   uint64
	Display  string
}
