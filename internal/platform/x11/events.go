//go:build linux

package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

const (
	buttonWheelUp    = 4
	buttonWheelDown  = 5
	buttonWheelLeft  = 6
	buttonWheelRight = 7
)

// geometry is the last known placement of a window in physical pixels. X
// and Y are root coordinates of the client area.
type geometry struct {
	X, Y          int
	Width, Height int
}

// translator turns X events into platform events. It holds no connection
// so it can be driven from tests with synthetic events.
type translator struct {
	instance uint32
	pointer  platform.DeviceID
	keyboard platform.DeviceID

	protocolsAtom xproto.Atom
	deleteAtom    xproto.Atom
	wakeAtom      xproto.Atom

	// lookup resolves a keycode to a keysym name under the given modifiers.
	lookup func(state uint16, code xproto.Keycode) string
	// rootPosition resolves the client origin in root coordinates.
	// ConfigureNotify positions are relative to the parent, which is the
	// frame under a reparenting window manager.
	rootPosition func(win xproto.Window) (x, y int, ok bool)
	// scale returns the scale factor of the monitor a window is on.
	scale func(geometry) float64

	windows map[xproto.Window]*geometry

	// lastRoot is the previous pointer position in root coordinates, the
	// origin of MouseMotion deltas.
	lastRoot    [2]int16
	hasLastRoot bool
}

func (t *translator) windowID(win xproto.Window) platform.WindowID {
	return platform.NewWindowID(t.instance, uint64(win))
}

func (t *translator) logicalPosition(g *geometry, x, y int16) dpi.LogicalPosition {
	return dpi.NewPhysicalPosition(float64(x), float64(y)).ToLogical(t.scale(*g))
}

// translate returns the events for one X event, which may be none. Events
// for windows this backend did not create are dropped.
func (t *translator) translate(ev xgb.Event) []platform.Event {
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		return t.configure(e)

	case xproto.ClientMessageEvent:
		if e.Type == t.wakeAtom {
			return nil
		}
		if _, ok := t.windows[e.Window]; !ok {
			return nil
		}
		if e.Type == t.protocolsAtom && e.Format == 32 && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == t.deleteAtom {
			return []platform.Event{platform.CloseRequested{WindowID: t.windowID(e.Window)}}
		}
		return nil

	case xproto.FocusInEvent:
		return t.focus(e.Event, true)
	case xproto.FocusOutEvent:
		return t.focus(e.Event, false)

	case xproto.KeyPressEvent:
		return t.key(e.Event, e.Detail, e.State, platform.Pressed)
	case xproto.KeyReleaseEvent:
		return t.key(e.Event, e.Detail, e.State, platform.Released)

	case xproto.ButtonPressEvent:
		return t.button(e.Event, e.Detail, e.State, platform.Pressed)
	case xproto.ButtonReleaseEvent:
		return t.button(e.Event, e.Detail, e.State, platform.Released)

	case xproto.MotionNotifyEvent:
		return t.motion(e)

	case xproto.EnterNotifyEvent:
		if _, ok := t.windows[e.Event]; !ok {
			return nil
		}
		return []platform.Event{platform.CursorEntered{WindowID: t.windowID(e.Event), DeviceID: t.pointer}}
	case xproto.LeaveNotifyEvent:
		if _, ok := t.windows[e.Event]; !ok {
			return nil
		}
		return []platform.Event{platform.CursorLeft{WindowID: t.windowID(e.Event), DeviceID: t.pointer}}

	case xproto.ExposeEvent:
		// Only the last expose of a series asks for a redraw.
		if _, ok := t.windows[e.Window]; !ok || e.Count != 0 {
			return nil
		}
		return []platform.Event{platform.Refresh{WindowID: t.windowID(e.Window)}}

	case xproto.DestroyNotifyEvent:
		if _, ok := t.windows[e.Window]; !ok {
			return nil
		}
		delete(t.windows, e.Window)
		return []platform.Event{platform.Destroyed{WindowID: t.windowID(e.Window)}}
	}
	return nil
}

func (t *translator) configure(e xproto.ConfigureNotifyEvent) []platform.Event {
	g, ok := t.windows[e.Window]
	if !ok {
		return nil
	}
	prev := *g
	if x, y, ok := t.rootPosition(e.Window); ok {
		g.X, g.Y = x, y
	}
	g.Width, g.Height = int(e.Width), int(e.Height)

	scale := t.scale(*g)
	id := t.windowID(e.Window)
	var out []platform.Event
	if prevScale := t.scale(prev); prevScale != scale {
		out = append(out, platform.HiDPIFactorChanged{WindowID: id, ScaleFactor: scale})
	}
	if prev.Width != g.Width || prev.Height != g.Height || len(out) > 0 {
		size := dpi.NewPhysicalSize(float64(g.Width), float64(g.Height)).ToLogical(scale)
		out = append(out, platform.Resized{WindowID: id, Size: size})
	}
	if prev.X != g.X || prev.Y != g.Y {
		pos := dpi.NewPhysicalPosition(float64(g.X), float64(g.Y)).ToLogical(scale)
		out = append(out, platform.Moved{WindowID: id, Position: pos})
	}
	return out
}

// motion reports the pointer position inside the window and, from the
// second sample on, the raw root delta as MouseMotion.
func (t *translator) motion(e xproto.MotionNotifyEvent) []platform.Event {
	g, ok := t.windows[e.Event]
	if !ok {
		return nil
	}
	out := []platform.Event{platform.CursorMoved{
		WindowID:  t.windowID(e.Event),
		DeviceID:  t.pointer,
		Position:  t.logicalPosition(g, e.EventX, e.EventY),
		Modifiers: modifiersFromState(e.State),
	}}
	if t.hasLastRoot {
		dx, dy := e.RootX-t.lastRoot[0], e.RootY-t.lastRoot[1]
		if dx != 0 || dy != 0 {
			out = append(out, platform.MouseMotion{DeviceID: t.pointer, DeltaX: float64(dx), DeltaY: float64(dy)})
		}
	}
	t.lastRoot = [2]int16{e.RootX, e.RootY}
	t.hasLastRoot = true
	return out
}

func (t *translator) focus(win xproto.Window, focused bool) []platform.Event {
	if _, ok := t.windows[win]; !ok {
		return nil
	}
	return []platform.Event{platform.Focused{WindowID: t.windowID(win), Focused: focused}}
}

func (t *translator) key(win xproto.Window, code xproto.Keycode, state uint16, elem platform.ElementState) []platform.Event {
	if _, ok := t.windows[win]; !ok {
		return nil
	}
	name := t.lookup(state, code)
	mods := modifiersFromState(state)
	id := t.windowID(win)

	out := []platform.Event{platform.KeyboardInput{
		WindowID: id,
		DeviceID: t.keyboard,
		Input: platform.KeyInput{
			ScanCode:  uint32(code),
			State:     elem,
			Key:       keyFromKeysym(name),
			Modifiers: mods,
		},
	}}
	if elem == platform.Pressed && !mods.Ctrl {
		if r, ok := charFromKeysym(name); ok {
			out = append(out, platform.ReceivedCharacter{WindowID: id, Char: r})
		}
	}
	return out
}

// button reports buttons 4 to 7 as one line of wheel motion on press and
// drops their release.
func (t *translator) button(win xproto.Window, detail xproto.Button, state uint16, elem platform.ElementState) []platform.Event {
	if _, ok := t.windows[win]; !ok {
		return nil
	}
	id := t.windowID(win)
	mods := modifiersFromState(state)

	var dx, dy float64
	switch detail {
	case buttonWheelUp:
		dy = 1
	case buttonWheelDown:
		dy = -1
	case buttonWheelLeft:
		dx = -1
	case buttonWheelRight:
		dx = 1
	default:
		return []platform.Event{platform.MouseInput{
			WindowID:  id,
			DeviceID:  t.pointer,
			State:     elem,
			Button:    buttonFromDetail(detail),
			Modifiers: mods,
		}}
	}
	if elem == platform.Released {
		return nil
	}
	return []platform.Event{platform.MouseWheel{
		WindowID:  id,
		DeviceID:  t.pointer,
		Delta:     platform.ScrollDelta{Kind: platform.LineDelta, X: dx, Y: dy},
		Modifiers: mods,
	}}
}

func buttonFromDetail(detail xproto.Button) platform.MouseButton {
	switch detail {
	case xproto.ButtonIndex1:
		return platform.LeftButton
	case xproto.ButtonIndex2:
		return platform.MiddleButton
	case xproto.ButtonIndex3:
		return platform.RightButton
	}
	return platform.OtherButton(uint8(detail))
}
