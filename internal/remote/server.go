package remote

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "winloop"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing a live events loop.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       *Controller
	logger    *slog.Logger
}

// NewServer wraps ctl. Tool handlers run on the SDK's goroutines and reach
// the loop only through ctl.Do.
func NewServer(ctl *Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		ctl:    ctl,
		logger: logger.With("component", "mcp"),
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP on stdio, blocking until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	if err := s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the monitors of the running backend with size, position (when the platform has one), scale factor and which one is primary.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the live windows with their IDs, inner size in logical pixels, position and current monitor.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Set the title of a window.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_inner_size",
		Description: "Resize the client area of a window in logical pixels. The platform may clamp the request to the window's min/max dimensions or ignore it; the resulting size is returned.",
	}, s.handleSetInnerSize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "request_close",
		Description: "Ask the application to close a window, as if the user had clicked its close button.",
	}, s.handleRequestClose)
}
