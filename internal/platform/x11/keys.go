//go:build linux

package x11

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winloop/internal/platform"
)

// namedKeys maps xgbutil keysym names to key codes.
var namedKeys = map[string]platform.VirtualKeyCode{
	"Escape":       platform.KeyEscape,
	"Insert":       platform.KeyInsert,
	"Home":         platform.KeyHome,
	"Delete":       platform.KeyDelete,
	"End":          platform.KeyEnd,
	"Next":         platform.KeyPageDown,
	"Page_Down":    platform.KeyPageDown,
	"Prior":        platform.KeyPageUp,
	"Page_Up":      platform.KeyPageUp,
	"Left":         platform.KeyLeft,
	"Up":           platform.KeyUp,
	"Right":        platform.KeyRight,
	"Down":         platform.KeyDown,
	"BackSpace":    platform.KeyBack,
	"Return":       platform.KeyReturn,
	"KP_Enter":     platform.KeyReturn,
	"space":        platform.KeySpace,
	"Tab":          platform.KeyTab,
	"ISO_Left_Tab": platform.KeyTab,
	"Shift_L":      platform.KeyLShift,
	"Shift_R":      platform.KeyRShift,
	"Control_L":    platform.KeyLControl,
	"Control_R":    platform.KeyRControl,
	"Alt_L":        platform.KeyLAlt,
	"Alt_R":        platform.KeyRAlt,
	"Super_L":      platform.KeyLWin,
	"Super_R":      platform.KeyRWin,
}

// keysymChars maps keysym names of printable keys that are not spelled as
// their character.
var keysymChars = map[string]rune{
	"space":        ' ',
	"exclam":       '!',
	"quotedbl":     '"',
	"numbersign":   '#',
	"dollar":       '$',
	"percent":      '%',
	"ampersand":    '&',
	"apostrophe":   '\'',
	"parenleft":    '(',
	"parenright":   ')',
	"asterisk":     '*',
	"plus":         '+',
	"comma":        ',',
	"minus":        '-',
	"period":       '.',
	"slash":        '/',
	"colon":        ':',
	"semicolon":    ';',
	"less":         '<',
	"equal":        '=',
	"greater":      '>',
	"question":     '?',
	"at":           '@',
	"bracketleft":  '[',
	"backslash":    '\\',
	"bracketright": ']',
	"asciicircum":  '^',
	"underscore":   '_',
	"grave":        '`',
	"braceleft":    '{',
	"bar":          '|',
	"braceright":   '}',
	"asciitilde":   '~',
}

// keyFromKeysym maps a keysym name as returned by keybind.LookupString.
func keyFromKeysym(name string) platform.VirtualKeyCode {
	if k, ok := namedKeys[name]; ok {
		return k
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return platform.KeyFromRune(r)
	}
	if n, ok := strings.CutPrefix(name, "F"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= 12 {
			return platform.KeyF1 + platform.VirtualKeyCode(i-1)
		}
	}
	return platform.KeyUnknown
}

// charFromKeysym returns the text a key press produces, if any.
func charFromKeysym(name string) (rune, bool) {
	if r, ok := keysymChars[name]; ok {
		return r, true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return r, r >= ' '
	}
	return 0, false
}

func modifiersFromState(state uint16) platform.ModifiersState {
	return platform.ModifiersState{
		Shift: state&xproto.ModMaskShift != 0,
		Ctrl:  state&xproto.ModMaskControl != 0,
		Alt:   state&xproto.ModMask1 != 0,
		Logo:  state&xproto.ModMask4 != 0,
	}
}
