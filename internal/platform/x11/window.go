//go:build linux

package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

const (
	defaultWindowWidth  = 800
	defaultWindowHeight = 600

	// maxIconSide bounds _NET_WM_ICON; larger icons are scaled down.
	maxIconSide = 256

	windowEventMask = xproto.EventMaskStructureNotify |
		xproto.EventMaskExposure |
		xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskFocusChange
)

type window struct {
	b    *Backend
	id   platform.WindowID
	xwin *xwindow.Window
	geom *geometry

	min, max   *dpi.LogicalSize
	resizable  bool
	fullscreen *monitor
	cursor     platform.MouseCursor
	hiddenCur  xproto.Cursor
	destroyed  bool
}

var _ platform.WindowBackend = (*window)(nil)

func (b *Backend) CreateWindow(attrs platform.WindowAttributes, _ platform.PlatformAttributes) (platform.WindowBackend, error) {
	var fullscreen *monitor
	if attrs.Fullscreen != nil {
		m, ok := b.ownMonitor(attrs.Fullscreen)
		if !ok {
			return nil, fmt.Errorf("%w: fullscreen monitor %v does not belong to this backend",
				platform.ErrInvalidAttributes, attrs.Fullscreen.ID())
		}
		fullscreen = m
	}

	primary := b.monitors[0]
	size := attrs.ClampedInnerSize(dpi.NewLogicalSize(defaultWindowWidth, defaultWindowHeight)).
		ToPhysical(primary.scale)
	width, height := size.Rounded()
	width, height = max(width, 1), max(height, 1)

	xwin, err := xwindow.Generate(b.conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("could not generate window id: %w", err)
	}
	err = xwin.CreateChecked(b.conn.Root, primary.geom.X, primary.geom.Y, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		b.conn.XUtil.Screen().BlackPixel, windowEventMask)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &window{
		b:    b,
		id:   platform.NewWindowID(b.instance, uint64(xwin.Id)),
		xwin: xwin,
		geom: &geometry{
			X:      primary.geom.X,
			Y:      primary.geom.Y,
			Width:  width,
			Height: height,
		},
		min:        attrs.MinDimensions,
		max:        attrs.MaxDimensions,
		resizable:  attrs.Resizable,
		fullscreen: fullscreen,
	}

	if err := icccm.WmProtocolsSet(b.conn.XUtil, xwin.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		b.logger.Warn("could not register WM_DELETE_WINDOW", "window", w.id.String(), "error", err)
	}
	w.setTitle(attrs.Title)
	w.applyNormalHints()
	if !attrs.Decorations {
		w.applyDecorations(false)
	}
	if attrs.WindowIcon != nil {
		w.SetWindowIcon(attrs.WindowIcon)
	}

	// Before the first map the state is a plain property; afterwards it
	// has to be requested from the window manager.
	if states := initialStates(attrs); len(states) > 0 {
		if err := ewmh.WmStateSet(b.conn.XUtil, xwin.Id, states); err != nil {
			b.logger.Warn("could not set initial window state", "window", w.id.String(), "error", err)
		}
	}

	b.windows[xwin.Id] = w
	b.tr.windows[xwin.Id] = w.geom

	if attrs.Visible {
		xwin.Map()
	}
	b.logger.Debug("window created", "window", w.id.String(), "width", width, "height", height)
	return w, nil
}

func initialStates(attrs platform.WindowAttributes) []string {
	var states []string
	if attrs.Maximized {
		states = append(states, "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ")
	}
	if attrs.AlwaysOnTop {
		states = append(states, "_NET_WM_STATE_ABOVE")
	}
	if attrs.Fullscreen != nil {
		states = append(states, "_NET_WM_STATE_FULLSCREEN")
	}
	return states
}

func (b *Backend) ownMonitor(m platform.Monitor) (*monitor, bool) {
	for _, own := range b.monitors {
		if own.id == m.ID() {
			return own, true
		}
	}
	return nil, false
}

func (w *window) ID() platform.WindowID { return w.id }

func (w *window) scale() float64 { return w.b.scaleAt(*w.geom) }

func (w *window) toPhysical(pos dpi.LogicalPosition) (int, int) {
	return pos.ToPhysical(w.scale()).Rounded()
}

func (w *window) SetTitle(title string) {
	if w.destroyed {
		return
	}
	w.setTitle(title)
}

func (w *window) setTitle(title string) {
	xu := w.b.conn.XUtil
	if err := ewmh.WmNameSet(xu, w.xwin.Id, title); err != nil {
		w.b.logger.Warn("could not set _NET_WM_NAME", "window", w.id.String(), "error", err)
	}
	if err := icccm.WmNameSet(xu, w.xwin.Id, title); err != nil {
		w.b.logger.Warn("could not set WM_NAME", "window", w.id.String(), "error", err)
	}
}

// InnerPosition translates the client origin to root coordinates.
func (w *window) InnerPosition() (dpi.LogicalPosition, bool) {
	if w.destroyed {
		return dpi.LogicalPosition{}, false
	}
	reply, err := xproto.TranslateCoordinates(w.b.conn.XUtil.Conn(), w.xwin.Id, w.b.conn.Root, 0, 0).Reply()
	if err != nil {
		return dpi.LogicalPosition{}, false
	}
	return dpi.NewPhysicalPosition(float64(reply.DstX), float64(reply.DstY)).ToLogical(w.scale()), true
}

// Position is the inner position minus the frame the window manager drew.
func (w *window) Position() (dpi.LogicalPosition, bool) {
	inner, ok := w.InnerPosition()
	if !ok {
		return inner, false
	}
	left, _, top, _ := w.frameExtents()
	scale := w.scale()
	return dpi.NewLogicalPosition(inner.X-float64(left)/scale, inner.Y-float64(top)/scale), true
}

// frameExtents returns the window decoration sizes, zeros if unknown.
func (w *window) frameExtents() (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(w.b.conn.XUtil, w.xwin.Id)
	if err != nil {
		return 0, 0, 0, 0
	}
	return extents.Left, extents.Right, extents.Top, extents.Bottom
}

// SetPosition asks the window manager first and falls back to a direct
// move, the same way tiling requests are issued.
func (w *window) SetPosition(pos dpi.LogicalPosition) {
	if w.destroyed {
		return
	}
	x, y := w.toPhysical(pos)
	if err := ewmh.MoveWindow(w.b.conn.XUtil, w.xwin.Id, x, y); err != nil {
		w.xwin.Move(x, y)
	}
}

func (w *window) InnerSize() (dpi.LogicalSize, bool) {
	if w.destroyed {
		return dpi.LogicalSize{}, false
	}
	return dpi.NewPhysicalSize(float64(w.geom.Width), float64(w.geom.Height)).ToLogical(w.scale()), true
}

func (w *window) OuterSize() (dpi.LogicalSize, bool) {
	inner, ok := w.InnerSize()
	if !ok {
		return inner, false
	}
	left, right, top, bottom := w.frameExtents()
	scale := w.scale()
	return dpi.NewLogicalSize(inner.Width+float64(left+right)/scale, inner.Height+float64(top+bottom)/scale), true
}

func (w *window) SetInnerSize(size dpi.LogicalSize) {
	if w.destroyed {
		return
	}
	width, height := size.Clamp(w.min, w.max).ToPhysical(w.scale()).Rounded()
	w.xwin.Resize(max(width, 1), max(height, 1))
	if !w.resizable {
		w.applyNormalHints()
	}
}

func (w *window) SetMinDimensions(size *dpi.LogicalSize) {
	w.min = size
	w.applyNormalHints()
}

func (w *window) SetMaxDimensions(size *dpi.LogicalSize) {
	w.max = size
	w.applyNormalHints()
}

func (w *window) SetResizable(resizable bool) {
	w.resizable = resizable
	w.applyNormalHints()
}

func (w *window) applyNormalHints() {
	if w.destroyed {
		return
	}
	hints := normalHints(w.min, w.max, w.resizable, w.geom.Width, w.geom.Height, w.scale())
	if err := icccm.WmNormalHintsSet(w.b.conn.XUtil, w.xwin.Id, hints); err != nil {
		w.b.logger.Warn("could not set size hints", "window", w.id.String(), "error", err)
	}
}

// normalHints builds WM_NORMAL_HINTS. A window that is not resizable pins
// both bounds to its current size.
func normalHints(min, max *dpi.LogicalSize, resizable bool, width, height int, scale float64) *icccm.NormalHints {
	hints := &icccm.NormalHints{}
	if !resizable {
		hints.Flags = icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth, hints.MinHeight = uint(width), uint(height)
		hints.MaxWidth, hints.MaxHeight = uint(width), uint(height)
		return hints
	}
	if min != nil {
		w, h := min.ToPhysical(scale).Rounded()
		hints.Flags |= icccm.SizeHintPMinSize
		hints.MinWidth, hints.MinHeight = uint(w), uint(h)
	}
	if max != nil {
		w, h := max.ToPhysical(scale).Rounded()
		// A zero component is unbounded on that axis.
		if w == 0 {
			w = 1 << 15
		}
		if h == 0 {
			h = 1 << 15
		}
		hints.Flags |= icccm.SizeHintPMaxSize
		hints.MaxWidth, hints.MaxHeight = uint(w), uint(h)
	}
	return hints
}

func (w *window) Show() {
	if !w.destroyed {
		w.xwin.Map()
	}
}

func (w *window) Hide() {
	if !w.destroyed {
		w.xwin.Unmap()
	}
}

func (w *window) SetCursor(cursor platform.MouseCursor) {
	w.cursor = cursor
	if w.destroyed || w.hiddenCur != 0 {
		return
	}
	w.applyCursor(cursor)
}

func (w *window) applyCursor(cursor platform.MouseCursor) {
	cur, err := xcursor.CreateCursor(w.b.conn.XUtil, cursorGlyph(cursor))
	if err != nil {
		w.b.logger.Warn("could not create cursor", "cursor", cursor.String(), "error", err)
		return
	}
	w.xwin.Change(xproto.CwCursor, uint32(cur))
	xproto.FreeCursor(w.b.conn.XUtil.Conn(), cur)
}

// HideCursor swaps in a cursor built from an empty 1x1 bitmap.
func (w *window) HideCursor(hide bool) {
	if w.destroyed || (hide == (w.hiddenCur != 0)) {
		return
	}
	conn := w.b.conn.XUtil.Conn()
	if !hide {
		xproto.FreeCursor(conn, w.hiddenCur)
		w.hiddenCur = 0
		w.applyCursor(w.cursor)
		return
	}

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		w.b.logger.Warn("could not hide cursor", "error", err)
		return
	}
	cur, err := xproto.NewCursorId(conn)
	if err != nil {
		w.b.logger.Warn("could not hide cursor", "error", err)
		return
	}
	xproto.CreatePixmap(conn, 1, pix, xproto.Drawable(w.b.conn.Root), 1, 1)
	xproto.CreateCursor(conn, cur, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0)
	xproto.FreePixmap(conn, pix)
	w.xwin.Change(xproto.CwCursor, uint32(cur))
	w.hiddenCur = cur
}

func (w *window) GrabCursor(grab bool) error {
	if w.destroyed {
		return nil
	}
	conn := w.b.conn.XUtil.Conn()
	if !grab {
		return xproto.UngrabPointerChecked(conn, xproto.TimeCurrentTime).Check()
	}
	mask := uint16(xproto.EventMaskPointerMotion | xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease)
	reply, err := xproto.GrabPointer(conn, true, w.xwin.Id, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync, w.xwin.Id, xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return fmt.Errorf("grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("grab pointer: server returned status %d", reply.Status)
	}
	return nil
}

func (w *window) SetCursorPosition(pos dpi.LogicalPosition) error {
	if w.destroyed {
		return nil
	}
	x, y := w.toPhysical(pos)
	return xproto.WarpPointerChecked(w.b.conn.XUtil.Conn(), xproto.WindowNone, w.xwin.Id,
		0, 0, 0, 0, clampCoord(x), clampCoord(y)).Check()
}

// clampCoord limits v to the 16-bit range of X protocol coordinates.
func clampCoord(v int) int16 {
	return int16(min(max(v, math.MinInt16), math.MaxInt16))
}

func (w *window) ScaleFactor() float64 { return w.scale() }

func (w *window) SetMaximized(maximized bool) {
	w.requestState(maximized, "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ")
}

func (w *window) Fullscreen() (platform.Monitor, bool) {
	if w.fullscreen == nil {
		return nil, false
	}
	return w.fullscreen, true
}

// SetFullscreen moves the window onto the monitor before asking for the
// fullscreen state, since window managers fill the monitor the window is on.
func (w *window) SetFullscreen(m platform.Monitor) {
	if w.destroyed {
		return
	}
	if m == nil {
		w.fullscreen = nil
		w.requestState(false, "_NET_WM_STATE_FULLSCREEN")
		return
	}
	own, ok := w.b.ownMonitor(m)
	if !ok {
		w.b.logger.Warn("ignoring fullscreen on a foreign monitor", "window", w.id.String(), "monitor", m.ID().String())
		return
	}
	w.fullscreen = own
	w.xwin.Move(own.geom.X, own.geom.Y)
	w.requestState(true, "_NET_WM_STATE_FULLSCREEN")
}

func (w *window) SetDecorations(decorations bool) {
	if !w.destroyed {
		w.applyDecorations(decorations)
	}
}

func (w *window) applyDecorations(decorations bool) {
	hints := &motif.Hints{Flags: motif.HintDecorations, Decoration: motif.DecorationNone}
	if decorations {
		hints.Decoration = motif.DecorationAll
	}
	if err := motif.WmHintsSet(w.b.conn.XUtil, w.xwin.Id, hints); err != nil {
		w.b.logger.Warn("could not set decorations", "window", w.id.String(), "error", err)
	}
}

func (w *window) SetAlwaysOnTop(alwaysOnTop bool) {
	w.requestState(alwaysOnTop, "_NET_WM_STATE_ABOVE")
}

func (w *window) requestState(enable bool, atoms ...string) {
	if w.destroyed {
		return
	}
	action := ewmh.StateRemove
	if enable {
		action = ewmh.StateAdd
	}
	for _, atom := range atoms {
		if err := ewmh.WmStateReq(w.b.conn.XUtil, w.xwin.Id, action, atom); err != nil {
			w.b.logger.Warn("window state request failed", "window", w.id.String(), "state", atom, "error", err)
		}
	}
}

func (w *window) SetWindowIcon(icon *platform.Icon) {
	if w.destroyed {
		return
	}
	xu := w.b.conn.XUtil
	if icon == nil {
		atom, err := xprop.Atm(xu, "_NET_WM_ICON")
		if err == nil {
			xproto.DeleteProperty(xu.Conn(), w.xwin.Id, atom)
		}
		return
	}
	if err := ewmh.WmIconSet(xu, w.xwin.Id, []ewmh.WmIcon{iconData(icon)}); err != nil {
		w.b.logger.Warn("could not set icon", "window", w.id.String(), "error", err)
	}
}

// iconData packs an icon as _NET_WM_ICON expects: ARGB words, row major.
func iconData(icon *platform.Icon) ewmh.WmIcon {
	if width, height := fitIconSide(icon.Width(), icon.Height()); width != icon.Width() || height != icon.Height() {
		icon = icon.Resized(width, height)
	}
	img := icon.Image()
	data := make([]uint, 0, len(img.Pix)/4)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, b, a := uint(img.Pix[i]), uint(img.Pix[i+1]), uint(img.Pix[i+2]), uint(img.Pix[i+3])
		data = append(data, a<<24|r<<16|g<<8|b)
	}
	return ewmh.WmIcon{Width: uint(icon.Width()), Height: uint(icon.Height()), Data: data}
}

// fitIconSide scales the longer side down to maxIconSide, keeping the
// aspect ratio.
func fitIconSide(width, height uint32) (uint32, uint32) {
	longest := max(width, height)
	if longest <= maxIconSide {
		return width, height
	}
	scale := func(side uint32) uint32 {
		return max(uint32((uint64(side)*maxIconSide+uint64(longest)/2)/uint64(longest)), 1)
	}
	return scale(width), scale(height)
}

// SetIMESpot has no effect: xgb has no XIM client, so there is no input
// method to position.
func (w *window) SetIMESpot(dpi.LogicalPosition) {}

func (w *window) CurrentMonitor() platform.Monitor {
	return w.b.monitorAt(*w.geom)
}

func (w *window) RawWindowHandle() platform.RawWindowHandle {
	return platform.RawWindowHandle{
		Platform: Name,
		Window:   uint64(w.xwin.Id),
		Display:  w.b.conn.Display,
	}
}

// Destroy destroys the X window. Destroyed is reported when the server
// confirms with DestroyNotify.
func (w *window) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	if w.hiddenCur != 0 {
		xproto.FreeCursor(w.b.conn.XUtil.Conn(), w.hiddenCur)
		w.hiddenCur = 0
	}
	if err := xproto.DestroyWindowChecked(w.b.conn.XUtil.Conn(), w.xwin.Id).Check(); err != nil {
		return fmt.Errorf("destroy window: %w", err)
	}
	delete(w.b.windows, w.xwin.Id)
	return nil
}
