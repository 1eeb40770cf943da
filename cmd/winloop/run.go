package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winloop/internal/config"
	"github.com/1broseidon/winloop/internal/platform"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and log every event it receives",
	Long: `Open one window as described by the window section of the config and
log each event the loop dispatches. The window is closed when the platform
asks for it (for example the close button, or Ctrl-C on the terminal
backend) and the command exits once the window is destroyed.

Examples:
  winloop run
  winloop run --backend headless --max-events 10
  winloop run --title demo --width 1024 --height 768`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addWindowFlags(runCmd)
	runCmd.Flags().Int("max-events", 0, "Stop after this many events (0 = until the window closes)")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Window title (overrides config)")
	cmd.Flags().Float64("width", 0, "Inner width in logical pixels (overrides config)")
	cmd.Flags().Float64("height", 0, "Inner height in logical pixels (overrides config)")
	cmd.Flags().Bool("fullscreen", false, "Open fullscreen on the primary monitor")
}

// applyWindowFlags layers the window flags over cfg.
func applyWindowFlags(cmd *cobra.Command, cfg *config.Config) error {
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		cfg.Window.Title = title
	}
	if width, _ := cmd.Flags().GetFloat64("width"); width > 0 {
		cfg.Window.Width = width
	}
	if height, _ := cmd.Flags().GetFloat64("height"); height > 0 {
		cfg.Window.Height = height
	}
	if fs, _ := cmd.Flags().GetBool("fullscreen"); fs {
		cfg.Window.Fullscreen = true
	}
	return cfg.Validate()
}

func runRun(cmd *cobra.Command, args []string) error {
	res, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := res.Config
	if err := applyWindowFlags(cmd, cfg); err != nil {
		return err
	}
	maxEvents, _ := cmd.Flags().GetInt("max-events")

	logger := newLogger(cfg)
	loop, err := openLoop(cfg, logger)
	if err != nil {
		return err
	}
	defer loop.Close()

	sess, err := newSession(loop, cfg, logger, maxEvents)
	if err != nil {
		return err
	}
	stop := interruptOnSignal(loop, logger)
	defer stop()

	loop.RunForever(sess.handle)
	logger.Info("run finished", "events", sess.count)
	return nil
}

// session is the event handling shared by run and serve.
type session struct {
	loop      *platform.EventsLoop
	window    *platform.Window
	logger    *slog.Logger
	maxEvents int
	count     int

	// extra is consulted for every event; serve uses it to feed the remote
	// controller and returns the events it synthesizes.
	extra func(platform.Event) []platform.Event
}

func newSession(loop *platform.EventsLoop, cfg *config.Config, logger *slog.Logger, maxEvents int) (*session, error) {
	attrs := cfg.WindowAttributes()
	if cfg.Window.Fullscreen {
		attrs.Fullscreen = loop.PrimaryMonitor()
	}
	w, err := platform.NewWindow(loop, attrs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open window: %w", err)
	}
	return &session{loop: loop, window: w, logger: logger, maxEvents: maxEvents}, nil
}

func (s *session) handle(ev platform.Event) platform.ControlFlow {
	flow := s.dispatch(ev)
	if flow == platform.Break || s.extra == nil {
		return flow
	}
	for _, synthesized := range s.extra(ev) {
		if s.dispatch(synthesized) == platform.Break {
			return platform.Break
		}
	}
	return platform.Continue
}

func (s *session) dispatch(ev platform.Event) platform.ControlFlow {
	s.count++
	s.logger.Info("event", "type", platform.EventName(ev), "detail", fmt.Sprintf("%+v", ev))

	switch e := ev.(type) {
	case platform.CloseRequested:
		if e.WindowID == s.window.ID() {
			if err := s.window.Close(); err != nil {
				s.logger.Warn("close failed", "error", err)
				return platform.Break
			}
		}
	case platform.Destroyed:
		if e.WindowID == s.window.ID() {
			return platform.Break
		}
	}
	if s.maxEvents > 0 && s.count >= s.maxEvents {
		return platform.Break
	}
	return platform.Continue
}

// interruptOnSignal ends RunForever on SIGINT or SIGTERM. Interrupt is safe
// from the signal goroutine.
func interruptOnSignal(loop *platform.EventsLoop, logger *slog.Logger) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("signal received", "signal", sig.String())
			loop.Interrupt()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
