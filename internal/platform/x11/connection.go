//go:build linux

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const wakeAtomName = "_WINLOOP_WAKE"

// Connection manages the X11 connection and the resources every window
// shares.
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string

	// wakeWin is an unmapped InputOnly window that receives wake messages.
	wakeWin xproto.Window

	protocolsAtom xproto.Atom
	deleteAtom    xproto.Atom
	wakeAtom      xproto.Atom
}

// NewConnection connects to display, or to $DISPLAY when empty, and
// initializes required extensions.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	// Keyboard mapping is needed to turn keycodes into keysym names.
	keybind.Initialize(xu)
	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	c := &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}
	if err := c.internAtoms(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.createWakeWindow(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Connection) internAtoms() error {
	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &c.protocolsAtom},
		{"WM_DELETE_WINDOW", &c.deleteAtom},
		{wakeAtomName, &c.wakeAtom},
	} {
		atom, err := xprop.Atm(c.XUtil, a.name)
		if err != nil {
			return fmt.Errorf("failed to intern %s: %w", a.name, err)
		}
		*a.dst = atom
	}
	return nil
}

func (c *Connection) createWakeWindow() error {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("failed to allocate wake window: %w", err)
	}
	err = xproto.CreateWindowChecked(c.XUtil.Conn(), 0, win.Id, c.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, 0,
		0, nil).Check()
	if err != nil {
		return fmt.Errorf("failed to create wake window: %w", err)
	}
	c.wakeWin = win.Id
	return nil
}

// Wake posts a client message to the wake window. The server delivers it
// back to this connection, which ends a blocked WaitForEvent. It is safe to
// call from any goroutine.
func (c *Connection) Wake() {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.wakeWin,
		Type:   c.wakeAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	xproto.SendEvent(c.XUtil.Conn(), false, c.wakeWin, xproto.EventMaskNoEvent, string(ev.Bytes()))
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
