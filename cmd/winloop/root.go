package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winloop/internal/config"
	"github.com/1broseidon/winloop/internal/platform"
	_ "github.com/1broseidon/winloop/internal/platform/headless"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "winloop",
	Short:         "Open windows and drive their event loop from the command line",
	Long:          "winloop opens native windows through a pluggable backend (x11, terminal, headless), logs the events they produce and can expose a live loop over MCP.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.config/winloop/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "Backend to open (overrides config): "+fmt.Sprint(platform.Backends()))
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides config): debug, info, warn, error")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
}

// loadConfig loads the config named by --config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.LoadResult, error) {
	path, _ := cmd.Flags().GetString("config")
	var res *config.LoadResult
	var err error
	if path == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(path)
	}
	if err != nil {
		return nil, err
	}

	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		res.Config.Backend = backend
		res.Sources["backend"] = config.Source{Kind: config.SourceFlag, Name: "--backend"}
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		res.Config.LogLevel = level
		res.Sources["log_level"] = config.Source{Kind: config.SourceFlag, Name: "--log-level"}
	}
	if err := res.Config.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// newLogger writes text logs to stderr so stdout stays free for output and
// for the MCP stdio transport.
func newLogger(cfg *config.Config) *slog.Logger {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// openLoop opens the configured backend and binds a loop to it.
func openLoop(cfg *config.Config, logger *slog.Logger) (*platform.EventsLoop, error) {
	backend, err := platform.Open(cfg.Backend, cfg.BackendOptions(logger))
	if err != nil {
		return nil, err
	}
	return platform.NewEventsLoop(backend, logger), nil
}

func printOutput(cmd *cobra.Command, w io.Writer, v any) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "", "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
	}
}
