package platform

import "github.com/1broseidon/winloop/internal/dpi"

// Event is delivered to the callbacks of PollEvents and RunForever. Each
// value is handed to exactly one callback invocation.
//
// New event kinds may be added; callbacks should ignore kinds they do not
// recognize.
type Event interface {
	isEvent()
}

// WindowEvent is implemented by every event that originates from a window.
type WindowEvent interface {
	Event
	Window() WindowID
}

// DeviceEvent is implemented by raw device events that are not tied to a
// window.
type DeviceEvent interface {
	Event
	Device() DeviceID
}

// Awakened is emitted once per dispatch cycle after one or more
// EventsLoopProxy.Wakeup calls.
type Awakened struct{}

// Suspended reports that the application was suspended (true) or resumed
// (false) by the platform.
type Suspended struct {
	Suspended bool
}

// Resized carries the new inner size of a window.
type Resized struct {
	WindowID WindowID
	Size     dpi.LogicalSize
}

// Moved carries the new outer position of a window.
type Moved struct {
	WindowID WindowID
	Position dpi.LogicalPosition
}

// CloseRequested is sent when the user asks the window to close. The window
// stays open until the application closes it.
type CloseRequested struct {
	WindowID WindowID
}

// Destroyed is the last event a window produces.
type Destroyed struct {
	WindowID WindowID
}

type Focused struct {
	WindowID WindowID
	Focused  bool
}

// ReceivedCharacter carries text input, including committed IME text.
type ReceivedCharacter struct {
	WindowID WindowID
	Char     rune
}

type KeyboardInput struct {
	WindowID WindowID
	DeviceID DeviceID
	Input    KeyInput
}

type CursorMoved struct {
	WindowID  WindowID
	DeviceID  DeviceID
	Position  dpi.LogicalPosition
	Modifiers ModifiersState
}

type CursorEntered struct {
	WindowID WindowID
	DeviceID DeviceID
}

type CursorLeft struct {
	WindowID WindowID
	DeviceID DeviceID
}

type MouseWheel struct {
	WindowID  WindowID
	DeviceID  DeviceID
	Delta     ScrollDelta
	Modifiers ModifiersState
}

type MouseInput struct {
	WindowID  WindowID
	DeviceID  DeviceID
	State     ElementState
	Button    MouseButton
	Modifiers ModifiersState
}

// IMEPreedit carries uncommitted composition text. Cursor is the byte
// offset of the caret inside Text, or -1 when hidden.
type IMEPreedit struct {
	WindowID WindowID
	Text     string
	Cursor   int
}

// Refresh asks the application to redraw the window.
type Refresh struct {
	WindowID WindowID
}

// HiDPIFactorChanged is sent when a window moves to a display with a
// different scale, or the display scale changes.
type HiDPIFactorChanged struct {
	WindowID    WindowID
	ScaleFactor float64
}

type DeviceAdded struct {
	DeviceID DeviceID
}

type DeviceRemoved struct {
	DeviceID DeviceID
}

// MouseMotion is unfiltered relative pointer motion.
type MouseMotion struct {
	DeviceID DeviceID
	DeltaX   float64
	DeltaY   float64
}

func (Awakened) isEvent()           {}
func (Suspended) isEvent()          {}
func (Resized) isEvent()            {}
func (Moved) isEvent()              {}
func (CloseRequested) isEvent()     {}
func (Destroyed) isEvent()          {}
func (Focused) isEvent()            {}
func (ReceivedCharacter) isEvent()  {}
func (KeyboardInput) isEvent()      {}
func (CursorMoved) isEvent()        {}
func (CursorEntered) isEvent()      {}
func (CursorLeft) isEvent()         {}
func (MouseWheel) isEvent()         {}
func (MouseInput) isEvent()         {}
func (IMEPreedit) isEvent()         {}
func (Refresh) isEvent()            {}
func (HiDPIFactorChanged) isEvent() {}
func (DeviceAdded) isEvent()        {}
func (DeviceRemoved) isEvent()      {}
func (MouseMotion) isEvent()        {}

func (e Resized) Window() WindowID            { return e.WindowID }
func (e Moved) Window() WindowID              { return e.WindowID }
func (e CloseRequested) Window() WindowID     { return e.WindowID }
func (e Destroyed) Window() WindowID          { return e.WindowID }
func (e Focused) Window() WindowID            { return e.WindowID }
func (e ReceivedCharacter) Window() WindowID  { return e.WindowID }
func (e KeyboardInput) Window() WindowID      { return e.WindowID }
func (e CursorMoved) Window() WindowID        { return e.WindowID }
func (e CursorEntered) Window() WindowID      { return e.WindowID }
func (e CursorLeft) Window() WindowID         { return e.WindowID }
func (e MouseWheel) Window() WindowID         { return e.WindowID }
func (e MouseInput) Window() WindowID         { return e.WindowID }
func (e IMEPreedit) Window() WindowID         { return e.WindowID }
func (e Refresh) Window() WindowID            { return e.WindowID }
func (e HiDPIFactorChanged) Window() WindowID { return e.WindowID }

func (e DeviceAdded) Device() DeviceID   { return e.DeviceID }
func (e DeviceRemoved) Device() DeviceID { return e.DeviceID }
func (e MouseMotion) Device() DeviceID   { return e.DeviceID }

// ControlFlow is returned by RunForever callbacks.
type ControlFlow int

const (
	// Continue keeps the loop dispatching.
	Continue ControlFlow = iota
	// Break stops RunForever after the current event.
	Break
)

func (c ControlFlow) String() string {
	if c == Break {
		return "break"
	}
	return "continue"
}
