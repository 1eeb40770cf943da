package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// The Raw* types mirror Config with pointer fields so that a key that is
// absent from a file can be told apart from one set to its zero value.

type RawHeadlessConfig struct {
	MonitorName   *string  `yaml:"monitor_name"`
	Width         *float64 `yaml:"width"`
	Height        *float64 `yaml:"height"`
	ScaleFactor   *float64 `yaml:"scale_factor"`
	SingleSurface *bool    `yaml:"single_surface"`
	MaxWindows    *int     `yaml:"max_windows"`
}

type RawWindowConfig struct {
	Title       *string  `yaml:"title"`
	Width       *float64 `yaml:"width"`
	Height      *float64 `yaml:"height"`
	MinWidth    *float64 `yaml:"min_width"`
	MinHeight   *float64 `yaml:"min_height"`
	MaxWidth    *float64 `yaml:"max_width"`
	MaxHeight   *float64 `yaml:"max_height"`
	Resizable   *bool    `yaml:"resizable"`
	Decorations *bool    `yaml:"decorations"`
	Visible     *bool    `yaml:"visible"`
	AlwaysOnTop *bool    `yaml:"always_on_top"`
	Maximized   *bool    `yaml:"maximized"`
	Fullscreen  *bool    `yaml:"fullscreen"`
}

type RawConfig struct {
	Include     IncludeList        `yaml:"include"`
	Backend     *string            `yaml:"backend"`
	LogLevel    *string            `yaml:"log_level"`
	ScaleFactor *float64           `yaml:"scale_factor"`
	Display     *string            `yaml:"display"`
	Headless    *RawHeadlessConfig `yaml:"headless"`
	Window      *RawWindowConfig   `yaml:"window"`
}

// pick returns overlay when it is set.
func pick[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	out.Backend = pick(c.Backend, overlay.Backend)
	out.LogLevel = pick(c.LogLevel, overlay.LogLevel)
	out.ScaleFactor = pick(c.ScaleFactor, overlay.ScaleFactor)
	out.Display = pick(c.Display, overlay.Display)

	if overlay.Headless != nil {
		base := RawHeadlessConfig{}
		if c.Headless != nil {
			base = *c.Headless
		}
		merged := mergeRawHeadless(base, *overlay.Headless)
		out.Headless = &merged
	}
	if overlay.Window != nil {
		base := RawWindowConfig{}
		if c.Window != nil {
			base = *c.Window
		}
		merged := mergeRawWindow(base, *overlay.Window)
		out.Window = &merged
	}
	return out
}

func mergeRawHeadless(base, overlay RawHeadlessConfig) RawHeadlessConfig {
	return RawHeadlessConfig{
		MonitorName:   pick(base.MonitorName, overlay.MonitorName),
		Width:         pick(base.Width, overlay.Width),
		Height:        pick(base.Height, overlay.Height),
		ScaleFactor:   pick(base.ScaleFactor, overlay.ScaleFactor),
		SingleSurface: pick(base.SingleSurface, overlay.SingleSurface),
		MaxWindows:    pick(base.MaxWindows, overlay.MaxWindows),
	}
}

func mergeRawWindow(base, overlay RawWindowConfig) RawWindowConfig {
	return RawWindowConfig{
		Title:       pick(base.Title, overlay.Title),
		Width:       pick(base.Width, overlay.Width),
		Height:      pick(base.Height, overlay.Height),
		MinWidth:    pick(base.MinWidth, overlay.MinWidth),
		MinHeight:   pick(base.MinHeight, overlay.MinHeight),
		MaxWidth:    pick(base.MaxWidth, overlay.MaxWidth),
		MaxHeight:   pick(base.MaxHeight, overlay.MaxHeight),
		Resizable:   pick(base.Resizable, overlay.Resizable),
		Decorations: pick(base.Decorations, overlay.Decorations),
		Visible:     pick(base.Visible, overlay.Visible),
		AlwaysOnTop: pick(base.AlwaysOnTop, overlay.AlwaysOnTop),
		Maximized:   pick(base.Maximized, overlay.Maximized),
		Fullscreen:  pick(base.Fullscreen, overlay.Fullscreen),
	}
}
