// Package dpi holds the two unit systems every window size and position is
// expressed in.
//
// Logical units are scale independent and are what application layout code
// should work with. Physical units are raw device pixels. The conversion is
//
//	physical = logical * scaleFactor
//
// where scaleFactor is the HiDPI ratio of the display the value refers to.
package dpi

import (
	"fmt"
	"math"
)

// DefaultScaleFactor is used whenever a backend cannot determine a scale.
const DefaultScaleFactor = 1.0

// ValidScaleFactor reports whether f can be used as a HiDPI ratio.
func ValidScaleFactor(f float64) bool {
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SanitizeScaleFactor returns f when it is a usable scale and
// DefaultScaleFactor otherwise. It never returns NaN, zero or a negative value.
func SanitizeScaleFactor(f float64) float64 {
	if ValidScaleFactor(f) {
		return f
	}
	return DefaultScaleFactor
}

// LogicalPosition is a position in logical units.
type LogicalPosition struct {
	X float64
	Y float64
}

// PhysicalPosition is a position in device pixels.
type PhysicalPosition struct {
	X float64
	Y float64
}

// LogicalSize is a size in logical units.
type LogicalSize struct {
	Width  float64
	Height float64
}

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width  float64
	Height float64
}

func NewLogicalPosition(x, y float64) LogicalPosition {
	return LogicalPosition{X: x, Y: y}
}

func NewPhysicalPosition(x, y float64) PhysicalPosition {
	return PhysicalPosition{X: x, Y: y}
}

func NewLogicalSize(width, height float64) LogicalSize {
	return LogicalSize{Width: width, Height: height}
}

func NewPhysicalSize(width, height float64) PhysicalSize {
	return PhysicalSize{Width: width, Height: height}
}

// ToPhysical converts p using scaleFactor. Invalid scales are treated as 1.0.
func (p LogicalPosition) ToPhysical(scaleFactor float64) PhysicalPosition {
	s := SanitizeScaleFactor(scaleFactor)
	return PhysicalPosition{X: p.X * s, Y: p.Y * s}
}

// ToLogical converts p using scaleFactor. Invalid scales are treated as 1.0.
func (p PhysicalPosition) ToLogical(scaleFactor float64) LogicalPosition {
	s := SanitizeScaleFactor(scaleFactor)
	return LogicalPosition{X: p.X / s, Y: p.Y / s}
}

// ToPhysical converts s using scaleFactor. Invalid scales are treated as 1.0.
func (s LogicalSize) ToPhysical(scaleFactor float64) PhysicalSize {
	f := SanitizeScaleFactor(scaleFactor)
	return PhysicalSize{Width: s.Width * f, Height: s.Height * f}
}

// ToLogical converts s using scaleFactor. Invalid scales are treated as 1.0.
func (s PhysicalSize) ToLogical(scaleFactor float64) LogicalSize {
	f := SanitizeScaleFactor(scaleFactor)
	return LogicalSize{Width: s.Width / f, Height: s.Height / f}
}

// Rounded returns the position rounded to whole pixels, which is what
// native windowing calls accept.
func (p PhysicalPosition) Rounded() (x, y int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Rounded returns the size rounded to whole pixels. Negative components are
// clamped to zero.
func (s PhysicalSize) Rounded() (width, height int) {
	w := int(math.Round(s.Width))
	h := int(math.Round(s.Height))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// Clamp bounds s between min and max. Nil bounds are ignored, and a zero
// component in max means "unbounded" for that axis.
func (s LogicalSize) Clamp(min, max *LogicalSize) LogicalSize {
	out := s
	if min != nil {
		out.Width = math.Max(out.Width, min.Width)
		out.Height = math.Max(out.Height, min.Height)
	}
	if max != nil {
		if max.Width > 0 {
			out.Width = math.Min(out.Width, max.Width)
		}
		if max.Height > 0 {
			out.Height = math.Min(out.Height, max.Height)
		}
	}
	return out
}

func (p LogicalPosition) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p PhysicalPosition) String() string {
	return fmt.Sprintf("(%gpx, %gpx)", p.X, p.Y)
}

func (s LogicalSize) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

func (s PhysicalSize) String() string {
	return fmt.Sprintf("%gx%gpx", s.Width, s.Height)
}
