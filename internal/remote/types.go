package remote

import "github.com/1broseidon/winloop/internal/platform"

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Backend  string                 `json:"backend"`
	Monitors []platform.MonitorInfo `json:"monitors"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo describes a single live window.
type WindowInfo struct {
	ID          string   `json:"id"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	ScaleFactor float64  `json:"scale_factor"`
	Monitor     string   `json:"monitor,omitempty"`
	Fullscreen  bool     `json:"fullscreen"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	Window string `json:"window" jsonschema:"required,Window ID as reported by list_windows"`
	Title  string `json:"title" jsonschema:"required,New window title"`
}

// SetInnerSizeInput is the input for the set_inner_size tool.
type SetInnerSizeInput struct {
	Window string  `json:"window" jsonschema:"required,Window ID as reported by list_windows"`
	Width  float64 `json:"width" jsonschema:"required,Client-area width in logical pixels"`
	Height float64 `json:"height" jsonschema:"required,Client-area height in logical pixels"`
}

// SetInnerSizeOutput reports the size the platform settled on, which may be
// clamped or ignored.
type SetInnerSizeOutput struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RequestCloseInput is the input for the request_close tool.
type RequestCloseInput struct {
	Window string `json:"window" jsonschema:"required,Window ID as reported by list_windows"`
}

// AckOutput is returned by tools that only report success.
type AckOutput struct {
	OK bool `json:"ok"`
}
