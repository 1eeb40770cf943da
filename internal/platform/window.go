package platform

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/winloop/internal/dpi"
)

// Window controls the presentation state of one native window. It keeps no
// reference to the EventsLoop it was created on; only the backend's monitor
// directory is retained for monitor queries.
//
// A Window is used from the goroutine that runs its loop unless the backend
// documents otherwise.
type Window struct {
	impl     WindowBackend
	monitors MonitorDirectory
	logger   *slog.Logger
}

// NewWindow creates a window on loop. Every failure is reported as a
// *CreationError.
func NewWindow(loop *EventsLoop, attrs WindowAttributes, pl PlatformAttributes) (*Window, error) {
	name := loop.backend.Name()
	if loop.Closed() {
		return nil, NewCreationError(name, "create window", ErrEventsLoopClosed)
	}
	if err := attrs.Validate(); err != nil {
		return nil, NewCreationError(name, "create window", err)
	}

	impl, err := loop.backend.CreateWindow(attrs, pl)
	if err != nil {
		return nil, NewCreationError(name, "create window", err)
	}

	id := impl.ID()
	if id.IsDummy() || !loop.register(id) {
		_ = impl.Destroy()
		return nil, NewCreationError(name, "create window",
			fmt.Errorf("backend issued identity %v that is not unique among live windows", id))
	}

	w := &Window{
		impl:     impl,
		monitors: loop.backend,
		logger:   loop.logger.With("window", id.String()),
	}
	w.logger.Info("window created", "title", attrs.Title)
	return w, nil
}

// ID is stable for the lifetime of the window.
func (w *Window) ID() WindowID { return w.impl.ID() }

func (w *Window) SetTitle(title string) { w.impl.SetTitle(title) }

// Position returns the outer top-left corner, or false where the platform
// has no absolute window positions.
func (w *Window) Position() (dpi.LogicalPosition, bool) { return w.impl.Position() }

// InnerPosition returns the top-left corner of the client area.
func (w *Window) InnerPosition() (dpi.LogicalPosition, bool) { return w.impl.InnerPosition() }

func (w *Window) SetPosition(pos dpi.LogicalPosition) { w.impl.SetPosition(pos) }

// InnerSize returns the client-area size, or false if unknowable.
func (w *Window) InnerSize() (dpi.LogicalSize, bool) { return w.impl.InnerSize() }

// OuterSize includes decorations where the platform can report them.
func (w *Window) OuterSize() (dpi.LogicalSize, bool) { return w.impl.OuterSize() }

// InnerSizePhysical converts InnerSize with the window's current scale.
func (w *Window) InnerSizePhysical() (dpi.PhysicalSize, bool) {
	size, ok := w.impl.InnerSize()
	if !ok {
		return dpi.PhysicalSize{}, false
	}
	return size.ToPhysical(w.HiDPIFactor()), true
}

func (w *Window) SetInnerSize(size dpi.LogicalSize) { w.impl.SetInnerSize(size) }

// SetMinDimensions sets or, with nil, clears the minimum inner size.
func (w *Window) SetMinDimensions(size *dpi.LogicalSize) { w.impl.SetMinDimensions(size) }

// SetMaxDimensions sets or, with nil, clears the maximum inner size.
func (w *Window) SetMaxDimensions(size *dpi.LogicalSize) { w.impl.SetMaxDimensions(size) }

func (w *Window) SetResizable(resizable bool) { w.impl.SetResizable(resizable) }

func (w *Window) Show() { w.impl.Show() }

func (w *Window) Hide() { w.impl.Hide() }

func (w *Window) SetCursor(cursor MouseCursor) { w.impl.SetCursor(cursor) }

// GrabCursor confines the pointer to the window. The error is a real
// platform refusal the caller can react to, for instance by staying
// ungrabbed.
func (w *Window) GrabCursor(grab bool) error {
	err := w.impl.GrabCursor(grab)
	if err != nil {
		w.logger.Warn("cursor grab refused", "grab", grab, "error", err)
	}
	return err
}

// HideCursor hides (true) or shows (false) the pointer over the window.
func (w *Window) HideCursor(hide bool) { w.impl.HideCursor(hide) }

// SetCursorPosition warps the pointer. Platforms that forbid programmatic
// placement return an error wrapping ErrNotSupported.
func (w *Window) SetCursorPosition(pos dpi.LogicalPosition) error {
	err := w.impl.SetCursorPosition(pos)
	if err != nil {
		w.logger.Warn("cursor placement refused", "position", pos.String(), "error", err)
	}
	return err
}

// HiDPIFactor always returns a finite positive scale, 1.0 when unknown.
func (w *Window) HiDPIFactor() float64 {
	return dpi.SanitizeScaleFactor(w.impl.ScaleFactor())
}

func (w *Window) SetMaximized(maximized bool) { w.impl.SetMaximized(maximized) }

// Fullscreen returns the monitor the window is fullscreen on, if any.
func (w *Window) Fullscreen() (Monitor, bool) { return w.impl.Fullscreen() }

// SetFullscreen makes the window fullscreen on monitor, or windowed with nil.
func (w *Window) SetFullscreen(monitor Monitor) { w.impl.SetFullscreen(monitor) }

func (w *Window) SetDecorations(decorations bool) { w.impl.SetDecorations(decorations) }

func (w *Window) SetAlwaysOnTop(alwaysOnTop bool) { w.impl.SetAlwaysOnTop(alwaysOnTop) }

// SetWindowIcon sets or, with nil, clears the window icon.
func (w *Window) SetWindowIcon(icon *Icon) { w.impl.SetWindowIcon(icon) }

// SetIMESpot anchors the IME candidate window, relative to the client area.
func (w *Window) SetIMESpot(pos dpi.LogicalPosition) { w.impl.SetIMESpot(pos) }

// CurrentMonitor returns the monitor the window is mostly on.
func (w *Window) CurrentMonitor() Monitor { return w.impl.CurrentMonitor() }

func (w *Window) AvailableMonitors() []Monitor { return w.monitors.AvailableMonitors() }

func (w *Window) PrimaryMonitor() Monitor { return w.monitors.PrimaryMonitor() }

// RawWindowHandle identifies the same live window as ID.
func (w *Window) RawWindowHandle() RawWindowHandle { return w.impl.RawWindowHandle() }

// Close destroys the native window. The loop delivers Destroyed for it.
func (w *Window) Close() error {
	if err := w.impl.Destroy(); err != nil {
		return fmt.Errorf("destroy window %v: %w", w.ID(), err)
	}
	w.logger.Info("window closed")
	return nil
}

// IsCapabilityRefusal reports whether err came from a cursor operation the
// platform refused.
func IsCapabilityRefusal(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}
