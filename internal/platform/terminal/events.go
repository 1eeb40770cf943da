//go:build !wasip1 && !js

package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

var namedKeys = map[tcell.Key]platform.VirtualKeyCode{
	tcell.KeyEnter:      platform.KeyReturn,
	tcell.KeyTab:        platform.KeyTab,
	tcell.KeyBacktab:    platform.KeyTab,
	tcell.KeyBackspace:  platform.KeyBack,
	tcell.KeyBackspace2: platform.KeyBack,
	tcell.KeyEsc:        platform.KeyEscape,
	tcell.KeyInsert:     platform.KeyInsert,
	tcell.KeyDelete:     platform.KeyDelete,
	tcell.KeyHome:       platform.KeyHome,
	tcell.KeyEnd:        platform.KeyEnd,
	tcell.KeyPgUp:       platform.KeyPageUp,
	tcell.KeyPgDn:       platform.KeyPageDown,
	tcell.KeyLeft:       platform.KeyLeft,
	tcell.KeyRight:      platform.KeyRight,
	tcell.KeyUp:         platform.KeyUp,
	tcell.KeyDown:       platform.KeyDown,
}

// keyChars are the non-rune keys that still produce text.
var keyChars = map[tcell.Key]rune{
	tcell.KeyEnter: '\r',
	tcell.KeyTab:   '\t',
}

// mouseButtons are the button bits reported as MouseInput transitions.
var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button platform.MouseButton
}{
	{tcell.Button1, platform.LeftButton},
	{tcell.Button2, platform.RightButton},
	{tcell.Button3, platform.MiddleButton},
	{tcell.Button4, platform.OtherButton(4)},
	{tcell.Button5, platform.OtherButton(5)},
	{tcell.Button6, platform.OtherButton(6)},
	{tcell.Button7, platform.OtherButton(7)},
	{tcell.Button8, platform.OtherButton(8)},
}

func modifiers(m tcell.ModMask) platform.ModifiersState {
	return platform.ModifiersState{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
		Logo:  m&tcell.ModMeta != 0,
	}
}

// keyCode maps a tcell key. Control combinations arrive as KeyCtrlA to
// KeyCtrlZ and are reported as the letter with Ctrl held.
func keyCode(ev *tcell.EventKey) (platform.VirtualKeyCode, platform.ModifiersState) {
	mods := modifiers(ev.Modifiers())
	k := ev.Key()
	if code, ok := namedKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods.Shift = true
		}
		return code, mods
	}
	switch {
	case k == tcell.KeyRune:
		return platform.KeyFromRune(ev.Rune()), mods
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return platform.KeyF1 + platform.VirtualKeyCode(k-tcell.KeyF1), mods
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		mods.Ctrl = true
		return platform.KeyA + platform.VirtualKeyCode(k-tcell.KeyCtrlA), mods
	}
	return platform.KeyUnknown, mods
}

// translateLocked turns one tcell event into platform events. Events that
// need a window are dropped while none exists. b.mu must be held.
func (b *Backend) translateLocked(raw tcell.Event) []platform.Event {
	switch ev := raw.(type) {
	case *tcell.EventResize:
		return b.resizeLocked(ev.Size())

	case *tcell.EventKey:
		if b.window == nil {
			return nil
		}
		return b.keyLocked(ev)

	case *tcell.EventMouse:
		if b.window == nil {
			return nil
		}
		return b.mouseLocked(ev)

	case *tcell.EventFocus:
		if b.window == nil {
			return nil
		}
		return []platform.Event{platform.Focused{WindowID: b.window.id, Focused: ev.Focused}}

	case *tcell.EventInterrupt:
		// Wake tokens; Awakened is produced by the loop.
		return nil
	}
	return nil
}

func (b *Backend) resizeLocked(width, height int) []platform.Event {
	b.monitor.width, b.monitor.height = width, height
	if b.window == nil {
		return nil
	}
	size := b.logicalSizeLocked()
	if size == b.window.size {
		return nil
	}
	b.window.size = size
	b.screen.Sync()
	return []platform.Event{
		platform.Resized{WindowID: b.window.id, Size: size},
		platform.Refresh{WindowID: b.window.id},
	}
}

// keyLocked reports Ctrl-C as a close request. Terminals only report key
// presses, so every key is followed by a synthetic release.
func (b *Backend) keyLocked(ev *tcell.EventKey) []platform.Event {
	id := b.window.id
	if isInterruptKey(ev) {
		return []platform.Event{platform.CloseRequested{WindowID: id}}
	}

	code, mods := keyCode(ev)
	input := platform.KeyInput{
		ScanCode:  uint32(ev.Key()),
		State:     platform.Pressed,
		Key:       code,
		Modifiers: mods,
	}
	out := []platform.Event{platform.KeyboardInput{WindowID: id, DeviceID: b.keyboard, Input: input}}

	if ev.Key() == tcell.KeyRune {
		out = append(out, platform.ReceivedCharacter{WindowID: id, Char: ev.Rune()})
	} else if r, ok := keyChars[ev.Key()]; ok {
		out = append(out, platform.ReceivedCharacter{WindowID: id, Char: r})
	}

	input.State = platform.Released
	return append(out, platform.KeyboardInput{WindowID: id, DeviceID: b.keyboard, Input: input})
}

func isInterruptKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C')
}

// mouseLocked diffs the button mask against the previous report, since
// tcell delivers button state rather than transitions.
func (b *Backend) mouseLocked(ev *tcell.EventMouse) []platform.Event {
	id := b.window.id
	mods := modifiers(ev.Modifiers())
	x, y := ev.Position()
	var out []platform.Event

	if x != b.cursorX || y != b.cursorY {
		b.cursorX, b.cursorY = x, y
		out = append(out, platform.CursorMoved{
			WindowID:  id,
			DeviceID:  b.pointer,
			Position:  dpi.NewPhysicalPosition(float64(x), float64(y)).ToLogical(b.scale),
			Modifiers: mods,
		})
	}

	buttons := ev.Buttons()
	for _, mb := range mouseButtons {
		was, is := b.buttons&mb.mask != 0, buttons&mb.mask != 0
		if was == is {
			continue
		}
		state := platform.Released
		if is {
			state = platform.Pressed
		}
		out = append(out, platform.MouseInput{WindowID: id, DeviceID: b.pointer, State: state, Button: mb.button, Modifiers: mods})
	}
	b.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 |
		tcell.Button5 | tcell.Button6 | tcell.Button7 | tcell.Button8)

	var dx, dy float64
	if buttons&tcell.WheelUp != 0 {
		dy++
	}
	if buttons&tcell.WheelDown != 0 {
		dy--
	}
	if buttons&tcell.WheelLeft != 0 {
		dx--
	}
	if buttons&tcell.WheelRight != 0 {
		dx++
	}
	if dx != 0 || dy != 0 {
		out = append(out, platform.MouseWheel{
			WindowID:  id,
			DeviceID:  b.pointer,
			Delta:     platform.ScrollDelta{Kind: platform.LineDelta, X: dx, Y: dy},
			Modifiers: mods,
		})
	}
	return out
}
