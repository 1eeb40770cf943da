package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
	"github.com/1broseidon/winloop/internal/platform/headless"
)

// Backend names accepted by the backend key. Empty selects the build default.
var knownBackends = []string{"", "headless", "x11", "terminal"}

// HeadlessConfig configures the in-memory backend.
type HeadlessConfig struct {
	MonitorName   string  `yaml:"monitor_name"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ScaleFactor   float64 `yaml:"scale_factor"`   // 0 = inherit scale_factor
	SingleSurface bool    `yaml:"single_surface"` // Embedded-target emulation.
	MaxWindows    int     `yaml:"max_windows"`    // 0 = unlimited
}

// WindowConfig describes the window opened by `winloop run` and `serve`.
type WindowConfig struct {
	Title       string  `yaml:"title"`
	Width       float64 `yaml:"width"`  // 0 = backend default
	Height      float64 `yaml:"height"` // 0 = backend default
	MinWidth    float64 `yaml:"min_width"`
	MinHeight   float64 `yaml:"min_height"`
	MaxWidth    float64 `yaml:"max_width"`
	MaxHeight   float64 `yaml:"max_height"`
	Resizable   bool    `yaml:"resizable"`
	Decorations bool    `yaml:"decorations"`
	Visible     bool    `yaml:"visible"`
	AlwaysOnTop bool    `yaml:"always_on_top"`
	Maximized   bool    `yaml:"maximized"`
	Fullscreen  bool    `yaml:"fullscreen"`
}

// Config holds the application configuration.
type Config struct {
	Backend     string         `yaml:"backend"`
	LogLevel    string         `yaml:"log_level"`
	ScaleFactor float64        `yaml:"scale_factor"` // 0 = ask the platform
	Display     string         `yaml:"display"`
	Headless    HeadlessConfig `yaml:"headless"`
	Window      WindowConfig   `yaml:"window"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Headless: HeadlessConfig{
			MonitorName: "headless",
			Width:       1920,
			Height:      1080,
		},
		Window: WindowConfig{
			Title:       "winloop",
			Width:       800,
			Height:      600,
			Resizable:   true,
			Decorations: true,
			Visible:     true,
		},
	}
}

// Save writes the configuration to path, creating its directory.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports every invalid value, each as a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf(format, args...)})
	}

	known := false
	for _, name := range knownBackends {
		if c.Backend == name {
			known = true
			break
		}
	}
	if !known {
		fail("backend", "backend must be one of: headless, x11, terminal (or empty for the default)")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		fail("log_level", "%v", err)
	}
	if c.ScaleFactor != 0 && !dpi.ValidScaleFactor(c.ScaleFactor) {
		fail("scale_factor", "scale_factor must be finite and > 0, got %v", c.ScaleFactor)
	}

	if c.Headless.Width < 0 || c.Headless.Height < 0 {
		fail("headless", "headless width and height must be >= 0")
	}
	if c.Headless.ScaleFactor != 0 && !dpi.ValidScaleFactor(c.Headless.ScaleFactor) {
		fail("headless.scale_factor", "scale_factor must be finite and > 0, got %v", c.Headless.ScaleFactor)
	}
	if c.Headless.MaxWindows < 0 {
		fail("headless.max_windows", "max_windows must be >= 0")
	}

	w := c.Window
	if w.Width < 0 || w.Height < 0 {
		fail("window", "window width and height must be >= 0")
	}
	if w.MinWidth < 0 || w.MinHeight < 0 || w.MaxWidth < 0 || w.MaxHeight < 0 {
		fail("window", "window min/max dimensions must be >= 0")
	}
	if w.MaxWidth > 0 && w.MinWidth > w.MaxWidth {
		fail("window.min_width", "min_width %v exceeds max_width %v", w.MinWidth, w.MaxWidth)
	}
	if w.MaxHeight > 0 && w.MinHeight > w.MaxHeight {
		fail("window.min_height", "min_height %v exceeds max_height %v", w.MinHeight, w.MaxHeight)
	}

	return errors.Join(errs...)
}

// ParseLogLevel maps debug, info, warn (or warning) and error to slog levels.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
}

// WindowAttributes converts the window section. Fullscreen is resolved by
// the caller because it needs a live monitor.
func (c *Config) WindowAttributes() platform.WindowAttributes {
	w := c.Window
	attrs := platform.WindowAttributes{
		Title:       w.Title,
		Resizable:   w.Resizable,
		Decorations: w.Decorations,
		Visible:     w.Visible,
		AlwaysOnTop: w.AlwaysOnTop,
		Maximized:   w.Maximized,
	}
	if w.Width > 0 && w.Height > 0 {
		size := dpi.NewLogicalSize(w.Width, w.Height)
		attrs.InnerSize = &size
	}
	if w.MinWidth > 0 || w.MinHeight > 0 {
		size := dpi.NewLogicalSize(w.MinWidth, w.MinHeight)
		attrs.MinDimensions = &size
	}
	if w.MaxWidth > 0 || w.MaxHeight > 0 {
		size := dpi.NewLogicalSize(w.MaxWidth, w.MaxHeight)
		attrs.MaxDimensions = &size
	}
	return attrs
}

// HeadlessSettings converts the headless section. The top-level
// scale_factor applies when the section does not set its own.
func (c *Config) HeadlessSettings() headless.Settings {
	scale := c.Headless.ScaleFactor
	if scale == 0 {
		scale = c.ScaleFactor
	}
	return headless.Settings{
		MonitorName:   c.Headless.MonitorName,
		Width:         c.Headless.Width,
		Height:        c.Headless.Height,
		ScaleFactor:   scale,
		SingleSurface: c.Headless.SingleSurface,
		MaxWindows:    c.Headless.MaxWindows,
	}
}

// BackendOptions builds the options handed to platform.Open.
func (c *Config) BackendOptions(logger *slog.Logger) platform.Options {
	opts := platform.Options{
		Logger:      logger,
		ScaleFactor: c.ScaleFactor,
		Display:     c.Display,
	}
	if c.Backend == "headless" || (c.Backend == "" && platform.DefaultBackend() == "headless") {
		opts.Settings = c.HeadlessSettings()
	}
	return opts
}
