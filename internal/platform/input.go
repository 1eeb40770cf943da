package platform

import (
	"strconv"
	"strings"
)

// ElementState is the state of a key or a button.
type ElementState int

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Released {
		return "released"
	}
	return "pressed"
}

// MouseButton identifies a pointer button. Buttons beyond the middle one are
// reported as Other with their platform index.
type MouseButton struct {
	Kind  MouseButtonKind
	Other uint8
}

type MouseButtonKind int

const (
	ButtonLeft MouseButtonKind = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

var (
	LeftButton   = MouseButton{Kind: ButtonLeft}
	RightButton  = MouseButton{Kind: ButtonRight}
	MiddleButton = MouseButton{Kind: ButtonMiddle}
)

func OtherButton(n uint8) MouseButton {
	return MouseButton{Kind: ButtonOther, Other: n}
}

func (b MouseButton) String() string {
	switch b.Kind {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "other(" + strconv.Itoa(int(b.Other)) + ")"
	}
}

// ModifiersState is the set of held modifier keys.
type ModifiersState struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Logo  bool
}

func (m ModifiersState) String() string {
	var parts []string
	if m.Shift {
		parts = append(parts, "shift")
	}
	if m.Ctrl {
		parts = append(parts, "ctrl")
	}
	if m.Alt {
		parts = append(parts, "alt")
	}
	if m.Logo {
		parts = append(parts, "logo")
	}
	return strings.Join(parts, "+")
}

// ScrollKind tells whether a scroll delta is in lines or in pixels.
type ScrollKind int

const (
	LineDelta ScrollKind = iota
	PixelDelta
)

type ScrollDelta struct {
	Kind ScrollKind
	X    float64
	Y    float64
}

// KeyInput describes one key transition.
type KeyInput struct {
	ScanCode  uint32
	State     ElementState
	Key       VirtualKeyCode
	Modifiers ModifiersState
}

// VirtualKeyCode is the layout-aware symbol of a key. KeyUnknown is used
// when a backend cannot map the native key.
type VirtualKeyCode int

const (
	KeyUnknown VirtualKeyCode = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyInsert
	KeyHome
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyPageUp
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyBack
	KeyReturn
	KeySpace
	KeyTab
	KeyLShift
	KeyRShift
	KeyLControl
	KeyRControl
	KeyLAlt
	KeyRAlt
	KeyLWin
	KeyRWin
)

var keyNames = map[VirtualKeyCode]string{
	KeyEscape: "Escape", KeyInsert: "Insert", KeyHome: "Home", KeyDelete: "Delete",
	KeyEnd: "End", KeyPageDown: "PageDown", KeyPageUp: "PageUp", KeyLeft: "Left",
	KeyUp: "Up", KeyRight: "Right", KeyDown: "Down", KeyBack: "Back",
	KeyReturn: "Return", KeySpace: "Space", KeyTab: "Tab",
	KeyLShift: "LShift", KeyRShift: "RShift", KeyLControl: "LControl", KeyRControl: "RControl",
	KeyLAlt: "LAlt", KeyRAlt: "RAlt", KeyLWin: "LWin", KeyRWin: "RWin",
}

func (k VirtualKeyCode) String() string {
	switch {
	case k >= Key0 && k <= Key9:
		return "Key" + strconv.Itoa(int(k-Key0))
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= KeyF1 && k <= KeyF12:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KeyFromRune maps printable ASCII letters and digits to their key code.
func KeyFromRune(r rune) VirtualKeyCode {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + VirtualKeyCode(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + VirtualKeyCode(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + VirtualKeyCode(r-'0')
	case r == ' ':
		return KeySpace
	}
	return KeyUnknown
}
