//go:build !wasip1 && !js

package terminal

import (
	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

// window is the single surface of the terminal. Geometry setters are
// ignored because the terminal, not the application, decides the size.
type window struct {
	b  *Backend
	id platform.WindowID

	// Guarded by b.mu.
	title       string
	size        dpi.LogicalSize
	visible     bool
	maximized   bool
	fullscreen  bool
	decorations bool
	alwaysOnTop bool
	resizable   bool
	icon        *platform.Icon
	cursor      platform.MouseCursor
	cursorHide  bool
	destroyed   bool
}

var _ platform.WindowBackend = (*window)(nil)

func (w *window) ID() platform.WindowID { return w.id }

func (w *window) update(fn func()) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if w.destroyed || w.b.closed {
		return
	}
	fn()
}

func (w *window) SetTitle(title string) {
	w.update(func() {
		w.title = title
		w.b.screen.SetTitle(title)
	})
}

func (w *window) Position() (dpi.LogicalPosition, bool)      { return dpi.LogicalPosition{}, false }
func (w *window) InnerPosition() (dpi.LogicalPosition, bool) { return dpi.LogicalPosition{}, false }
func (w *window) SetPosition(dpi.LogicalPosition)            {}

func (w *window) InnerSize() (dpi.LogicalSize, bool) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if w.destroyed {
		return dpi.LogicalSize{}, false
	}
	return w.size, true
}

func (w *window) OuterSize() (dpi.LogicalSize, bool) { return w.InnerSize() }

func (w *window) SetInnerSize(dpi.LogicalSize)      {}
func (w *window) SetMinDimensions(*dpi.LogicalSize) {}
func (w *window) SetMaxDimensions(*dpi.LogicalSize) {}

func (w *window) SetResizable(resizable bool) {
	w.update(func() { w.resizable = resizable })
}

func (w *window) Show() {
	w.update(func() {
		if w.visible {
			return
		}
		w.visible = true
		w.b.queue = append(w.b.queue, platform.Refresh{WindowID: w.id})
	})
}

func (w *window) Hide() {
	w.update(func() {
		if !w.visible {
			return
		}
		w.visible = false
		w.b.screen.Clear()
		w.b.screen.Show()
	})
}

// SetCursor is recorded only: the pointer shape belongs to the terminal
// emulator.
func (w *window) SetCursor(cursor platform.MouseCursor) {
	w.update(func() { w.cursor = cursor })
}

func (w *window) GrabCursor(bool) error {
	return platform.Refuse("grab cursor", "a terminal cannot confine the pointer")
}

func (w *window) HideCursor(hide bool) {
	w.update(func() { w.cursorHide = hide })
}

func (w *window) SetCursorPosition(dpi.LogicalPosition) error {
	return platform.Refuse("set cursor position", "a terminal cannot move the pointer")
}

func (w *window) ScaleFactor() float64 { return w.b.scale }

func (w *window) SetMaximized(maximized bool) {
	w.update(func() { w.maximized = maximized })
}

func (w *window) Fullscreen() (platform.Monitor, bool) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	if !w.fullscreen {
		return nil, false
	}
	return w.b.monitor, true
}

func (w *window) SetFullscreen(m platform.Monitor) {
	w.update(func() {
		switch {
		case m == nil:
			w.fullscreen = false
		case m.ID() == w.b.monitor.id:
			w.fullscreen = true
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

// SetIMESpot parks the terminal's text cursor at pos, which is where
// terminal input methods anchor their candidate window.
func (w *window) SetIMESpot(pos dpi.LogicalPosition) {
	w.update(func() {
		x, y := pos.ToPhysical(w.b.scale).Rounded()
		w.b.screen.ShowCursor(x, y)
		w.b.screen.Show()
	})
}

func (w *window) CurrentMonitor() platform.Monitor { return w.b.monitor }

func (w *window) RawWindowHandle() platform.RawWindowHandle {
	return platform.RawWindowHandle{
		Platform: Name,
		Window:   w.id.Raw(),
		Display:  w.b.monitor.name,
	}
}

func (w *window) Destroy() error {
	w.update(func() {
		w.destroyed = true
		w.b.window = nil
		w.b.screen.Clear()
		w.b.screen.Show()
		w.b.queue = append(w.b.queue, platform.Destroyed{WindowID: w.id})
	})
	return nil
}
