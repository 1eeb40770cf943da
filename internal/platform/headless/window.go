package headless

import (
	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

// window holds the presentation state of one headless window. Every field
// is guarded by b.mu because Simulate* calls may arrive from a driver
// goroutine.
type window struct {
	b  *Backend
	id platform.WindowID

	title       string
	position    dpi.LogicalPosition
	size        dpi.LogicalSize
	min, max    *dpi.LogicalSize
	resizable   bool
	visible     bool
	decorations bool
	alwaysOnTop bool
	maximized   bool
	fullscreen  platform.Monitor
	icon        *platform.Icon

	cursor        platform.MouseCursor
	cursorGrabbed bool
	cursorHidden  bool
	cursorPos     dpi.LogicalPosition
	imeSpot       dpi.LogicalPosition

	destroyed bool
}

var _ platform.WindowBackend = (*window)(nil)

func (w *window) ID() platform.WindowID { return w.id }

// update runs fn under the backend lock unless the window is gone.
func (w *window) update(fn func()) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if w.destroyed {
		return
	}
	fn()
}

func (w *window) SetTitle(title string) {
	w.update(func() { w.title = title })
}

func (w *window) Position() (dpi.LogicalPosition, bool) {
	if w.b.settings.SingleSurface {
		return dpi.LogicalPosition{}, false
	}
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if w.destroyed {
		return dpi.LogicalPosition{}, false
	}
	return w.position, true
}

// InnerPosition equals Position: headless windows have no decorations to
// offset the client area.
func (w *window) InnerPosition() (dpi.LogicalPosition, bool) {
	return w.Position()
}

func (w *window) SetPosition(pos dpi.LogicalPosition) {
	if w.b.settings.SingleSurface {
		return
	}
	w.update(func() {
		if w.position == pos {
			return
		}
		w.position = pos
		w.b.pushLocked(platform.Moved{WindowID: w.id, Position: pos})
	})
}

func (w *window) InnerSize() (dpi.LogicalSize, bool) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if w.destroyed {
		return dpi.LogicalSize{}, false
	}
	return w.size, true
}

func (w *window) OuterSize() (dpi.LogicalSize, bool) {
	return w.InnerSize()
}

// SetInnerSize clamps to the min/max dimensions. In single-surface mode the
// window always covers the monitor and the call is a no-op.
func (w *window) SetInnerSize(size dpi.LogicalSize) {
	if w.b.settings.SingleSurface {
		return
	}
	w.update(func() { w.resizeLocked(size.Clamp(w.min, w.max)) })
}

func (w *window) resizeLocked(size dpi.LogicalSize) {
	if w.size == size {
		return
	}
	w.size = size
	w.b.pushLocked(platform.Resized{WindowID: w.id, Size: size})
}

func (w *window) SetMinDimensions(size *dpi.LogicalSize) {
	w.update(func() {
		w.min = copySize(size)
		if !w.b.settings.SingleSurface {
			w.resizeLocked(w.size.Clamp(w.min, w.max))
		}
	})
}

func (w *window) SetMaxDimensions(size *dpi.LogicalSize) {
	w.update(func() {
		w.max = copySize(size)
		if !w.b.settings.SingleSurface {
			w.resizeLocked(w.size.Clamp(w.min, w.max))
		}
	})
}

func (w *window) SetResizable(resizable bool) {
	w.update(func() { w.resizable = resizable })
}

func (w *window) Show() {
	w.update(func() {
		if w.visible {
			return
		}
		w.visible = true
		w.b.pushLocked(platform.Refresh{WindowID: w.id})
	})
}

func (w *window) Hide() {
	w.update(func() { w.visible = false })
}

func (w *window) SetCursor(cursor platform.MouseCursor) {
	w.update(func() { w.cursor = cursor })
}

func (w *window) GrabCursor(grab bool) error {
	if w.b.settings.SingleSurface {
		return platform.Refuse("grab cursor", "the single surface has no pointer confinement")
	}
	w.update(func() { w.cursorGrabbed = grab })
	return nil
}

func (w *window) HideCursor(hide bool) {
	w.update(func() { w.cursorHidden = hide })
}

func (w *window) SetCursorPosition(pos dpi.LogicalPosition) error {
	if w.b.settings.SingleSurface {
		return platform.Refuse("set cursor position", "programmatic cursor placement is not possible on a single surface")
	}
	w.update(func() { w.cursorPos = pos })
	return nil
}

func (w *window) ScaleFactor() float64 {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	return w.b.scale
}

func (w *window) SetMaximized(maximized bool) {
	w.update(func() { w.maximized = maximized })
}

func (w *window) Fullscreen() (platform.Monitor, bool) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if w.fullscreen == nil {
		return nil, false
	}
	return w.fullscreen, true
}

// SetFullscreen ignores monitors from other backends.
func (w *window) SetFullscreen(m platform.Monitor) {
	w.update(func() {
		if m == nil {
			w.fullscreen = nil
			return
		}
		if m.ID() == w.b.monitor.id {
			w.fullscreen = w.b.monitor
		}
	})
}

func (w *window) SetDecorations(decorations bool) {
	w.update(func() { w.decorations = decorations })
}

func (w *window) SetAlwaysOnTop(alwaysOnTop bool) {
	w.update(func() { w.alwaysOnTop = alwaysOnTop })
}

func (w *window) SetWindowIcon(icon *platform.Icon) {
	w.update(func() { w.icon = icon })
}

func (w *window) SetIMESpot(pos dpi.LogicalPosition) {
	w.update(func() { w.imeSpot = pos })
}

func (w *window) CurrentMonitor() platform.Monitor {
	return w.b.monitor
}

func (w *window) RawWindowHandle() platform.RawWindowHandle {
	return platform.RawWindowHandle{
		Platform: Name,
		Window:   w.id.Raw(),
		Display:  w.b.settings.MonitorName,
	}
}

func (w *window) Destroy() error {
	w.update(func() {
		w.destroyed = true
		delete(w.b.windows, w.id.Raw())
		w.b.pushLocked(platform.Destroyed{WindowID: w.id})
	})
	return nil
}
