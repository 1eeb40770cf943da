//go:build linux

// Package x11 implements the desktop backend on an X server through xgb and
// xgbutil. Monitors come from RandR, window management hints from EWMH,
// ICCCM and Motif, and keyboard layout lookups from xgbutil/keybind.
package x11

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/winloop/internal/platform"
)

// Name is the registry name of this backend.
const Name = "x11"

func init() {
	platform.Register(Name, func(opts platform.Options) (platform.Backend, error) {
		return Open(opts.Display, opts.ScaleFactor, opts.Logger)
	})
}

// Backend is the X11 platform.Backend. Event translation, window state and
// the event queue belong to the goroutine that runs the loop; only Wake is
// called from elsewhere.
type Backend struct {
	instance uint32
	conn     *Connection
	logger   *slog.Logger

	pointer  platform.DeviceID
	keyboard platform.DeviceID
	monitors []*monitor

	tr      *translator
	windows map[xproto.Window]*window
	queue   []platform.Event
	stashed xgb.Event

	// lost is set when the server connection drops. Wakes then go through
	// lostWake instead of the dead connection.
	lost     atomic.Bool
	lostWake chan struct{}
	done     chan struct{}

	closeOnce sync.Once
}

var _ platform.Backend = (*Backend)(nil)

// Open connects to display ($DISPLAY when empty). A valid scaleOverride
// replaces the scale derived from monitor density.
func Open(display string, scaleOverride float64, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("backend", Name)

	conn, err := NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrBackendUnavailable, err)
	}

	outputs, err := conn.queryOutputs()
	if err != nil || len(outputs) == 0 {
		logger.Warn("randr reported no outputs, using the screen size", "error", err)
		outputs = []outputGeometry{conn.screenOutput()}
	}

	instance := platform.NextInstance()
	b := &Backend{
		instance: instance,
		conn:     conn,
		logger:   logger,
		pointer:  platform.NewDeviceID(instance, 1),
		keyboard: platform.NewDeviceID(instance, 2),
		monitors: buildMonitors(instance, outputs, scaleOverride),
		windows:  make(map[xproto.Window]*window),
		lostWake: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	b.tr = &translator{
		instance:      instance,
		pointer:       b.pointer,
		keyboard:      b.keyboard,
		protocolsAtom: conn.protocolsAtom,
		deleteAtom:    conn.deleteAtom,
		wakeAtom:      conn.wakeAtom,
		lookup: func(state uint16, code xproto.Keycode) string {
			return keybind.LookupString(conn.XUtil, state, code)
		},
		rootPosition: func(win xproto.Window) (int, int, bool) {
			reply, err := xproto.TranslateCoordinates(conn.XUtil.Conn(), win, conn.Root, 0, 0).Reply()
			if err != nil {
				return 0, 0, false
			}
			return int(reply.DstX), int(reply.DstY), true
		},
		scale:   b.scaleAt,
		windows: make(map[xproto.Window]*geometry),
	}

	for _, m := range b.monitors {
		b.logger.Info("monitor detected",
			"name", m.geom.Name,
			"x", m.geom.X,
			"y", m.geom.Y,
			"width", m.geom.Width,
			"height", m.geom.Height,
			"scale_factor", m.scale)
	}
	return b, nil
}

func (b *Backend) Name() string { return Name }

func (b *Backend) AvailableMonitors() []platform.Monitor {
	out := make([]platform.Monitor, len(b.monitors))
	for i, m := range b.monitors {
		out[i] = m
	}
	return out
}

// PrimaryMonitor is the RandR primary output, which queryOutputs places
// first.
func (b *Backend) PrimaryMonitor() platform.Monitor {
	return b.monitors[0]
}

func (b *Backend) monitorAt(g geometry) *monitor {
	outputs := make([]outputGeometry, len(b.monitors))
	for i, m := range b.monitors {
		outputs[i] = m.geom
	}
	return b.monitors[bestOverlap(outputs, g.X, g.Y, g.Width, g.Height)]
}

func (b *Backend) scaleAt(g geometry) float64 {
	return b.monitorAt(g).scale
}

func (b *Backend) NextEvent() (platform.Event, bool) {
	for {
		if len(b.queue) > 0 {
			ev := b.queue[0]
			b.queue[0] = nil
			b.queue = b.queue[1:]
			return ev, true
		}

		raw := b.stashed
		b.stashed = nil
		if raw == nil {
			if b.lost.Load() {
				return nil, false
			}
			ev, xerr := b.conn.XUtil.Conn().PollForEvent()
			if xerr != nil {
				b.logger.Warn("x11 request failed", "error", xerr)
				continue
			}
			if ev == nil {
				return nil, false
			}
			raw = ev
		}
		if dn, ok := raw.(xproto.DestroyNotifyEvent); ok {
			if w, ok := b.windows[dn.Window]; ok {
				w.destroyed = true
				delete(b.windows, dn.Window)
			}
		}
		b.queue = append(b.queue, b.tr.translate(raw)...)
	}
}

func (b *Backend) Wait() {
	if len(b.queue) > 0 || b.stashed != nil {
		return
	}
	if b.lost.Load() {
		select {
		case <-b.lostWake:
		case <-b.done:
		}
		return
	}

	ev, xerr := b.conn.XUtil.Conn().WaitForEvent()
	switch {
	case xerr != nil:
		b.logger.Warn("x11 request failed", "error", xerr)
	case ev == nil:
		b.logger.Error("x11 connection lost")
		b.lost.Store(true)
	default:
		b.stashed = ev
	}
}

func (b *Backend) Wake() {
	if b.lost.Load() {
		select {
		case b.lostWake <- struct{}{}:
		default:
		}
		return
	}
	b.conn.Wake()
}

func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		for xid, w := range b.windows {
			if !w.destroyed && !b.lost.Load() {
				xproto.DestroyWindow(b.conn.XUtil.Conn(), xid)
			}
		}
		b.conn.Close()
		b.logger.Info("backend closed", "windows", len(b.windows))
	})
	return nil
}
