package platform

import (
	"fmt"
	"math"

	"github.com/1broseidon/winloop/internal/dpi"
)

// WindowAttributes describe a window to create. Backends treat every field
// as a request and may adjust it.
type WindowAttributes struct {
	Title string

	// InnerSize is the requested client-area size; nil lets the backend pick.
	InnerSize     *dpi.LogicalSize
	MinDimensions *dpi.LogicalSize
	MaxDimensions *dpi.LogicalSize

	Resizable bool

	// Fullscreen, when set, opens the window fullscreen on that monitor.
	Fullscreen Monitor

	Maximized   bool
	Visible     bool
	Transparent bool
	Decorations bool
	AlwaysOnTop bool
	WindowIcon  *Icon
	Multitouch  bool
}

// PlatformAttributes is a backend-specific bag. Each backend documents the
// concrete type it accepts and ignores values of any other type.
type PlatformAttributes any

// DefaultWindowAttributes returns a visible, decorated, resizable window.
func DefaultWindowAttributes() WindowAttributes {
	return WindowAttributes{
		Title:       "winloop window",
		Resizable:   true,
		Visible:     true,
		Decorations: true,
	}
}

// Validate rejects attribute combinations no backend can honor.
func (a WindowAttributes) Validate() error {
	check := func(name string, s *dpi.LogicalSize) error {
		if s == nil {
			return nil
		}
		if !finiteNonNegative(s.Width) || !finiteNonNegative(s.Height) {
			return fmt.Errorf("%w: %s %v must be finite and non-negative", ErrInvalidAttributes, name, *s)
		}
		return nil
	}
	if err := check("inner size", a.InnerSize); err != nil {
		return err
	}
	if err := check("min dimensions", a.MinDimensions); err != nil {
		return err
	}
	if err := check("max dimensions", a.MaxDimensions); err != nil {
		return err
	}
	if a.MinDimensions != nil && a.MaxDimensions != nil {
		min, max := a.MinDimensions, a.MaxDimensions
		if (max.Width > 0 && min.Width > max.Width) || (max.Height > 0 && min.Height > max.Height) {
			return fmt.Errorf("%w: min dimensions %v exceed max dimensions %v", ErrInvalidAttributes, *min, *max)
		}
	}
	return nil
}

// ClampedInnerSize returns the requested inner size bounded by the min/max
// dimensions, or fallback when no size was requested.
func (a WindowAttributes) ClampedInnerSize(fallback dpi.LogicalSize) dpi.LogicalSize {
	size := fallback
	if a.InnerSize != nil {
		size = *a.InnerSize
	}
	return size.Clamp(a.MinDimensions, a.MaxDimensions)
}

func finiteNonNegative(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
