package platform

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// Identities carry the number of the backend instance that issued them, so
// two handles compare equal only if the same instance produced both. Instance
// zero is reserved for dummy values.

var instanceCounter atomic.Uint32

// NextInstance returns a fresh, non-zero instance number. Backends call it
// once when they are opened and stamp every identity they issue with it.
func NextInstance() uint32 {
	return instanceCounter.Add(1)
}

// WindowID identifies a window among the live windows of one backend
// instance. It is comparable and can key a map.
type WindowID struct {
	instance uint32
	raw      uint64
}

// NewWindowID is for backend implementations. Application code receives
// window identities from Window.ID and from events.
func NewWindowID(instance uint32, raw uint64) WindowID {
	return WindowID{instance: instance, raw: raw}
}

// DummyWindowID returns a placeholder that refers to no window. It may be
// stored or compared, but passing it to anything that addresses a window is
// undefined behavior as far as the backends are concerned.
func DummyWindowID() WindowID {
	return WindowID{}
}

// IsDummy reports whether id came from DummyWindowID.
func (id WindowID) IsDummy() bool { return id.instance == 0 }

// Raw returns the backend-local part of the identity.
func (id WindowID) Raw() uint64 { return id.raw }

// Instance returns the number of the backend instance that issued id.
func (id WindowID) Instance() uint32 { return id.instance }

// Compare orders identities consistently with ==.
func (id WindowID) Compare(other WindowID) int {
	if c := cmp.Compare(id.instance, other.instance); c != 0 {
		return c
	}
	return cmp.Compare(id.raw, other.raw)
}

func (id WindowID) String() string {
	if id.IsDummy() {
		return "window(dummy)"
	}
	return fmt.Sprintf("window(%d:%#x)", id.instance, id.raw)
}

// DeviceID identifies an input source such as a pointer or a keyboard.
type DeviceID struct {
	instance uint32
	raw      uint64
}

// NewDeviceID is for backend implementations.
func NewDeviceID(instance uint32, raw uint64) DeviceID {
	return DeviceID{instance: instance, raw: raw}
}

// DummyDeviceID returns a placeholder device. Backends that cannot tell
// input devices apart report it on every input event.
func DummyDeviceID() DeviceID {
	return DeviceID{}
}

func (id DeviceID) IsDummy() bool { return id.instance == 0 }

func (id DeviceID) Raw() uint64 { return id.raw }

func (id DeviceID) Compare(other DeviceID) int {
	if c := cmp.Compare(id.instance, other.instance); c != 0 {
		return c
	}
	return cmp.Compare(id.raw, other.raw)
}

func (id DeviceID) String() string {
	if id.IsDummy() {
		return "device(dummy)"
	}
	return fmt.Sprintf("device(%d:%#x)", id.instance, id.raw)
}

// MonitorID is a backend-local handle to a physical or virtual display.
type MonitorID struct {
	instance uint32
	raw      uint64
}

// NewMonitorID is for backend implementations.
func NewMonitorID(instance uint32, raw uint64) MonitorID {
	return MonitorID{instance: instance, raw: raw}
}

func DummyMonitorID() MonitorID {
	return MonitorID{}
}

func (id MonitorID) IsDummy() bool { return id.instance == 0 }

func (id MonitorID) Raw() uint64 { return id.raw }

func (id MonitorID) Compare(other MonitorID) int {
	if c := cmp.Compare(id.instance, other.instance); c != 0 {
		return c
	}
	return cmp.Compare(id.raw, other.raw)
}

func (id MonitorID) String() string {
	if id.IsDummy() {
		return "monitor(dummy)"
	}
	return fmt.Sprintf("monitor(%d:%#x)", id.instance, id.raw)
}
