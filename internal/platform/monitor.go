package platform

import "github.com/1broseidon/winloop/internal/dpi"

// MonitorInfo is a snapshot of a monitor's queries, for listings.
type MonitorInfo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	X           *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y           *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width       float64  `json:"width" yaml:"width"`
	Height      float64  `json:"height" yaml:"height"`
	ScaleFactor float64  `json:"scale_factor" yaml:"scale_factor"`
	Primary     bool     `json:"primary" yaml:"primary"`
}

// Describe snapshots m. A monitor without an absolute position is reported
// with X and Y unset instead of aborting.
func Describe(m Monitor, primary bool) MonitorInfo {
	info := MonitorInfo{
		ID:          m.ID().String(),
		ScaleFactor: dpi.SanitizeScaleFactor(m.ScaleFactor()),
		Primary:     primary,
	}
	if name, ok := m.Name(); ok {
		info.Name = name
	}
	size := m.Size()
	info.Width, info.Height = size.Width, size.Height
	if pos, ok := TryPosition(m); ok {
		info.X, info.Y = &pos.X, &pos.Y
	}
	return info
}

// TryPosition queries m.Position and converts the documented fatal
// capability gap into false. Any other panic is propagated.
func TryPosition(m Monitor) (pos dpi.PhysicalPosition, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if !IsFatalUnsupported(r) {
				panic(r)
			}
			ok = false
		}
	}()
	return m.Position(), true
}

// DescribeAll snapshots every monitor of dir, flagging the primary one.
func DescribeAll(dir MonitorDirectory) []MonitorInfo {
	monitors := dir.AvailableMonitors()
	primary := dir.PrimaryMonitor().ID()
	out := make([]MonitorInfo, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, Describe(m, m.ID() == primary))
	}
	return out
}
