package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winloop/internal/remote"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Open a window and expose it over MCP on stdio",
	Long: `Open one window like run does and start a Model Context Protocol server
on stdin/stdout. Tools: list_monitors, list_windows, set_title,
set_inner_size, request_close. The loop stops when the window is destroyed
or the MCP client disconnects.

The terminal backend owns stdin/stdout and cannot be served.

Example (MCP client config):
  winloop serve --backend headless`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addWindowFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	res, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := res.Config
	if err := applyWindowFlags(cmd, cfg); err != nil {
		return err
	}

	logger := newLogger(cfg)
	loop, err := openLoop(cfg, logger)
	if err != nil {
		return err
	}
	defer loop.Close()
	if loop.Backend() == "terminal" {
		return fmt.Errorf("serve: the terminal backend owns stdio; choose another backend")
	}

	sess, err := newSession(loop, cfg, logger, 0)
	if err != nil {
		return err
	}
	ctl := remote.NewController(loop, logger)
	ctl.Track(sess.window)
	sess.extra = ctl.Handle

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	server := remote.NewServer(ctl, logger)
	serveErr := make(chan error, 1)
	go func() {
		err := server.Run(ctx)
		serveErr <- err
		loop.Interrupt()
	}()

	stop := interruptOnSignal(loop, logger)
	defer stop()

	loop.RunForever(sess.handle)
	cancel()

	select {
	case err := <-serveErr:
		return err
	default:
		logger.Info("serve finished", "events", sess.count)
		return nil
	}
}
