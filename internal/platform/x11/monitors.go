//go:build linux

package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

// outputGeometry is one active RandR output in root coordinates.
type outputGeometry struct {
	Name     string
	X, Y     int
	Width    int
	Height   int
	WidthMM  int
	HeightMM int
	Primary  bool
}

// queryOutputs retrieves all active outputs using XRandR. The primary
// output, when the server reports one, is moved to the front.
func (c *Connection) queryOutputs() ([]outputGeometry, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var outputs []outputGeometry
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		geom := outputGeometry{
			Name:    fmt.Sprintf("Monitor%d", i),
			X:       int(info.X),
			Y:       int(info.Y),
			Width:   int(info.Width),
			Height:  int(info.Height),
			Primary: primaryOutput != 0 && info.Outputs[0] == primaryOutput,
		}
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			geom.Name = string(out.Name)
			geom.WidthMM = int(out.MmWidth)
			geom.HeightMM = int(out.MmHeight)
		}
		outputs = append(outputs, geom)
	}

	return orderPrimaryFirst(outputs), nil
}

// screenOutput describes the whole X screen, used when RandR reports nothing.
func (c *Connection) screenOutput() outputGeometry {
	s := c.XUtil.Screen()
	return outputGeometry{
		Name:     "screen",
		Width:    int(s.WidthInPixels),
		Height:   int(s.HeightInPixels),
		WidthMM:  int(s.WidthInMillimeters),
		HeightMM: int(s.HeightInMillimeters),
		Primary:  true,
	}
}

func orderPrimaryFirst(outputs []outputGeometry) []outputGeometry {
	for i, o := range outputs {
		if o.Primary && i > 0 {
			reordered := make([]outputGeometry, 0, len(outputs))
			reordered = append(reordered, o)
			reordered = append(reordered, outputs[:i]...)
			reordered = append(reordered, outputs[i+1:]...)
			return reordered
		}
	}
	return outputs
}

// scaleFromPhysicalSize derives a scale factor from the pixel density of an
// output, snapped to twelfths and never below 1. Outputs that do not report
// a physical size get 1.
func scaleFromPhysicalSize(width, height, widthMM, heightMM int) float64 {
	if width <= 0 || height <= 0 || widthMM <= 0 || heightMM <= 0 {
		return dpi.DefaultScaleFactor
	}
	ppmm := math.Sqrt(float64(width*height) / float64(widthMM*heightMM))
	scale := math.Round(ppmm*25.4/96*12) / 12
	return math.Max(scale, 1)
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}

// bestOverlap returns the index of the output that covers most of the
// rectangle, or 0 when it lies outside all of them.
func bestOverlap(outputs []outputGeometry, x, y, width, height int) int {
	best, bestArea := 0, 0
	for i, o := range outputs {
		isect := intersectionSize(x, y, x+width, y+height, o.X, o.Y, o.X+o.Width, o.Y+o.Height)
		if area := isect.w * isect.h; area > bestArea {
			best, bestArea = i, area
		}
	}
	return best
}

// monitor is one X11 output as a platform.Monitor.
type monitor struct {
	id    platform.MonitorID
	geom  outputGeometry
	scale float64
}

func (m *monitor) ID() platform.MonitorID { return m.id }

func (m *monitor) Name() (string, bool) { return m.geom.Name, m.geom.Name != "" }

func (m *monitor) Position() dpi.PhysicalPosition {
	return dpi.NewPhysicalPosition(float64(m.geom.X), float64(m.geom.Y))
}

func (m *monitor) Size() dpi.PhysicalSize {
	return dpi.NewPhysicalSize(float64(m.geom.Width), float64(m.geom.Height))
}

func (m *monitor) ScaleFactor() float64 { return m.scale }

// buildMonitors turns outputs into monitors. A valid override replaces the
// density-derived scale of every output.
func buildMonitors(instance uint32, outputs []outputGeometry, override float64) []*monitor {
	monitors := make([]*monitor, 0, len(outputs))
	for i, o := range outputs {
		scale := scaleFromPhysicalSize(o.Width, o.Height, o.WidthMM, o.HeightMM)
		if dpi.ValidScaleFactor(override) {
			scale = override
		}
		monitors = append(monitors, &monitor{
			id:    platform.NewMonitorID(instance, uint64(i+1)),
			geom:  o,
			scale: scale,
		})
	}
	return monitors
}
