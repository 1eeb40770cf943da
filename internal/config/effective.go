package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/winloop/internal/dpi"
)

// Environment variables that override file values.
const (
	EnvBackend     = "WINLOOP_BACKEND"
	EnvScaleFactor = "WINLOOP_SCALE_FACTOR"
	EnvDisplay     = "DISPLAY"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Source.Kind == SourceEnv {
		return fmt.Sprintf("%s (from $%s): %v", e.Path, e.Source.Name, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// set copies *v into dst when v is present.
func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// BuildEffectiveConfig applies raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	set(&cfg.Backend, raw.Backend)
	set(&cfg.LogLevel, raw.LogLevel)
	set(&cfg.ScaleFactor, raw.ScaleFactor)
	set(&cfg.Display, raw.Display)

	if h := raw.Headless; h != nil {
		set(&cfg.Headless.MonitorName, h.MonitorName)
		set(&cfg.Headless.Width, h.Width)
		set(&cfg.Headless.Height, h.Height)
		set(&cfg.Headless.ScaleFactor, h.ScaleFactor)
		set(&cfg.Headless.SingleSurface, h.SingleSurface)
		set(&cfg.Headless.MaxWindows, h.MaxWindows)
	}
	if w := raw.Window; w != nil {
		set(&cfg.Window.Title, w.Title)
		set(&cfg.Window.Width, w.Width)
		set(&cfg.Window.Height, w.Height)
		set(&cfg.Window.MinWidth, w.MinWidth)
		set(&cfg.Window.MinHeight, w.MinHeight)
		set(&cfg.Window.MaxWidth, w.MaxWidth)
		set(&cfg.Window.MaxHeight, w.MaxHeight)
		set(&cfg.Window.Resizable, w.Resizable)
		set(&cfg.Window.Decorations, w.Decorations)
		set(&cfg.Window.Visible, w.Visible)
		set(&cfg.Window.AlwaysOnTop, w.AlwaysOnTop)
		set(&cfg.Window.Maximized, w.Maximized)
		set(&cfg.Window.Fullscreen, w.Fullscreen)
	}
	return cfg
}

// applyEnv overlays the environment and records which keys it wrote.
// DISPLAY only fills an empty display key; the WINLOOP_ variables always win.
func applyEnv(cfg *Config, sources map[string]Source) error {
	if v, ok := os.LookupEnv(EnvBackend); ok && strings.TrimSpace(v) != "" {
		cfg.Backend = strings.TrimSpace(v)
		sources["backend"] = Source{Kind: SourceEnv, Name: EnvBackend}
	}
	if v, ok := os.LookupEnv(EnvScaleFactor); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || !dpi.ValidScaleFactor(f) {
			return &ValidationError{
				Path:   "scale_factor",
				Source: Source{Kind: SourceEnv, Name: EnvScaleFactor},
				Err:    fmt.Errorf("scale factor must be a finite number > 0, got %q", v),
			}
		}
		cfg.ScaleFactor = f
		sources["scale_factor"] = Source{Kind: SourceEnv, Name: EnvScaleFactor}
	}
	if cfg.Display == "" {
		if v := os.Getenv(EnvDisplay); v != "" {
			cfg.Display = v
			sources["display"] = Source{Kind: SourceEnv, Name: EnvDisplay}
		}
	}
	return nil
}
