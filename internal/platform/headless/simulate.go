package headless

import (
	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

// WindowState is a snapshot of a headless window, for drivers and tests.
type WindowState struct {
	Title         string
	Position      dpi.LogicalPosition
	Size          dpi.LogicalSize
	Resizable     bool
	Visible       bool
	Decorations   bool
	AlwaysOnTop   bool
	Maximized     bool
	Fullscreen    bool
	HasIcon       bool
	Cursor        platform.MouseCursor
	CursorGrabbed bool
	CursorHidden  bool
	CursorPos     dpi.LogicalPosition
	IMESpot       dpi.LogicalPosition
}

// State returns the state of a live window.
func (b *Backend) State(id platform.WindowID) (WindowState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.lookupLocked(id)
	if !ok {
		return WindowState{}, false
	}
	return WindowState{
		Title:         w.title,
		Position:      w.position,
		Size:          w.size,
		Resizable:     w.resizable,
		Visible:       w.visible,
		Decorations:   w.decorations,
		AlwaysOnTop:   w.alwaysOnTop,
		Maximized:     w.maximized,
		Fullscreen:    w.fullscreen != nil,
		HasIcon:       w.icon != nil,
		Cursor:        w.cursor,
		CursorGrabbed: w.cursorGrabbed,
		CursorHidden:  w.cursorHidden,
		CursorPos:     w.cursorPos,
		IMESpot:       w.imeSpot,
	}, true
}

// SimulateResize resizes a window from the "window manager" side, the way a
// user dragging a border would. size is in physical pixels.
func (b *Backend) SimulateResize(id platform.WindowID, size dpi.PhysicalSize) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.lookupLocked(id)
	if !ok || b.settings.SingleSurface {
		return false
	}
	w.resizeLocked(size.ToLogical(b.scale))
	return true
}

// SimulateMove moves a window from the window manager side. pos is in
// physical pixels.
func (b *Backend) SimulateMove(id platform.WindowID, pos dpi.PhysicalPosition) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.lookupLocked(id)
	if !ok || b.settings.SingleSurface {
		return false
	}
	logical := pos.ToLogical(b.scale)
	if w.position != logical {
		w.position = logical
		b.pushLocked(platform.Moved{WindowID: id, Position: logical})
	}
	return true
}

// SimulateCloseRequest reports a user request to close the window.
func (b *Backend) SimulateCloseRequest(id platform.WindowID) bool {
	return b.simulate(id, platform.CloseRequested{WindowID: id})
}

func (b *Backend) SimulateFocus(id platform.WindowID, focused bool) bool {
	return b.simulate(id, platform.Focused{WindowID: id, Focused: focused})
}

// SimulateKey reports a key transition and, for presses of printable keys,
// the character it produces.
func (b *Backend) SimulateKey(id platform.WindowID, r rune, state platform.ElementState, mods platform.ModifiersState) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.lookupLocked(id); !ok {
		return false
	}
	b.pushLocked(platform.KeyboardInput{
		WindowID: id,
		DeviceID: b.keyboard,
		Input: platform.KeyInput{
			ScanCode:  uint32(r),
			State:     state,
			Key:       platform.KeyFromRune(r),
			Modifiers: mods,
		},
	})
	if state == platform.Pressed && r >= ' ' {
		b.pushLocked(platform.ReceivedCharacter{WindowID: id, Char: r})
	}
	return true
}

// SimulateCursor moves the pointer over a window. pos is in physical pixels.
func (b *Backend) SimulateCursor(id platform.WindowID, pos dpi.PhysicalPosition) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.lookupLocked(id)
	if !ok {
		return false
	}
	w.cursorPos = pos.ToLogical(b.scale)
	b.pushLocked(platform.CursorMoved{WindowID: id, DeviceID: b.pointer, Position: w.cursorPos})
	return true
}

func (b *Backend) SimulateButton(id platform.WindowID, button platform.MouseButton, state platform.ElementState) bool {
	return b.simulate(id, platform.MouseInput{WindowID: id, DeviceID: b.pointer, State: state, Button: button})
}

// SimulateMouseMotion reports raw relative motion from an attached device.
func (b *Backend) SimulateMouseMotion(device platform.DeviceID, dx, dy float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attachedLocked(device) {
		return false
	}
	b.pushLocked(platform.MouseMotion{DeviceID: device, DeltaX: dx, DeltaY: dy})
	return true
}

// SimulateIMEPreedit reports uncommitted composition text. cursor is a byte
// offset into text; anything outside it hides the caret.
func (b *Backend) SimulateIMEPreedit(id platform.WindowID, text string, cursor int) bool {
	if cursor < 0 || cursor > len(text) {
		cursor = -1
	}
	return b.simulate(id, platform.IMEPreedit{WindowID: id, Text: text, Cursor: cursor})
}

// SimulateIMECommit ends a composition. The preedit is cleared and every
// committed rune arrives as ReceivedCharacter.
func (b *Backend) SimulateIMECommit(id platform.WindowID, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.lookupLocked(id); !ok {
		return false
	}
	b.pushLocked(platform.IMEPreedit{WindowID: id, Cursor: -1})
	for _, r := range text {
		b.pushLocked(platform.ReceivedCharacter{WindowID: id, Char: r})
	}
	return true
}

// SimulateSuspend suspends or resumes the application. It reports false
// when the state does not change.
func (b *Backend) SimulateSuspend(suspended bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.suspended == suspended {
		return false
	}
	b.suspended = suspended
	b.pushLocked(platform.Suspended{Suspended: suspended})
	return true
}

// SimulateDeviceAdded attaches a new input device and returns its ID.
func (b *Backend) SimulateDeviceAdded() platform.DeviceID {
	b.mu.Lock()
	defer b.mu.Unlock()
	raw := b.nextDevice
	b.nextDevice++
	b.devices[raw] = struct{}{}
	id := platform.NewDeviceID(b.instance, raw)
	b.pushLocked(platform.DeviceAdded{DeviceID: id})
	return id
}

// SimulateDeviceRemoved detaches a device. IDs are never reissued.
func (b *Backend) SimulateDeviceRemoved(id platform.DeviceID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attachedLocked(id) {
		return false
	}
	delete(b.devices, id.Raw())
	b.pushLocked(platform.DeviceRemoved{DeviceID: id})
	return true
}

// SimulateScaleFactor changes the monitor scale. Every window receives
// HiDPIFactorChanged followed by Resized with its new logical size, since
// the physical size is unchanged.
func (b *Backend) SimulateScaleFactor(scale float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	scale = dpi.SanitizeScaleFactor(scale)
	if scale == b.scale {
		return
	}
	old := b.scale
	b.scale = scale
	for _, w := range b.windows {
		physical := w.size.ToPhysical(old)
		b.pushLocked(platform.HiDPIFactorChanged{WindowID: w.id, ScaleFactor: scale})
		w.resizeLocked(physical.ToLogical(scale))
	}
}

func (b *Backend) simulate(id platform.WindowID, ev platform.Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.lookupLocked(id); !ok {
		return false
	}
	b.pushLocked(ev)
	return true
}

func (b *Backend) lookupLocked(id platform.WindowID) (*window, bool) {
	if id.Instance() != b.instance {
		return nil, false
	}
	w, ok := b.windows[id.Raw()]
	return w, ok
}

func (b *Backend) attachedLocked(id platform.DeviceID) bool {
	if id.IsDummy() || platform.NewDeviceID(b.instance, id.Raw()) != id {
		return false
	}
	_, ok := b.devices[id.Raw()]
	return ok
}
