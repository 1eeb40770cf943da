package remote

import (
	"context"
	"fmt"
	"math"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winloop/internal/dpi"
	"github.com/1broseidon/winloop/internal/platform"
)

func (s *Server) handleListMonitors(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	v, err := s.ctl.Do(ctx, "list_monitors", func(sess *Session) (any, error) {
		loop := sess.Loop()
		return ListMonitorsOutput{
			Backend:  loop.Backend(),
			Monitors: platform.DescribeAll(loop),
		}, nil
	})
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	return nil, v.(ListMonitorsOutput), nil
}

func (s *Server) handleListWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	v, err := s.ctl.Do(ctx, "list_windows", func(sess *Session) (any, error) {
		out := ListWindowsOutput{Windows: []WindowInfo{}}
		for _, w := range sess.Windows() {
			out.Windows = append(out.Windows, describeWindow(w))
		}
		return out, nil
	})
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, v.(ListWindowsOutput), nil
}

func (s *Server) handleSetTitle(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, AckOutput, error) {
	_, err := s.ctl.Do(ctx, "set_title", func(sess *Session) (any, error) {
		w, err := sess.Window(args.Window)
		if err != nil {
			return nil, err
		}
		w.SetTitle(args.Title)
		return nil, nil
	})
	if err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func (s *Server) handleSetInnerSize(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetInnerSizeInput) (*mcpsdk.CallToolResult, SetInnerSizeOutput, error) {
	if !validExtent(args.Width) || !validExtent(args.Height) {
		return nil, SetInnerSizeOutput{}, fmt.Errorf("width and height must be finite and non-negative, got %vx%v", args.Width, args.Height)
	}
	v, err := s.ctl.Do(ctx, "set_inner_size", func(sess *Session) (any, error) {
		w, err := sess.Window(args.Window)
		if err != nil {
			return nil, err
		}
		w.SetInnerSize(dpi.NewLogicalSize(args.Width, args.Height))
		size, _ := w.InnerSize()
		return SetInnerSizeOutput{Width: size.Width, Height: size.Height}, nil
	})
	if err != nil {
		return nil, SetInnerSizeOutput{}, err
	}
	return nil, v.(SetInnerSizeOutput), nil
}

func (s *Server) handleRequestClose(ctx context.Context, _ *mcpsdk.CallToolRequest, args RequestCloseInput) (*mcpsdk.CallToolResult, AckOutput, error) {
	_, err := s.ctl.Do(ctx, "request_close", func(sess *Session) (any, error) {
		w, err := sess.Window(args.Window)
		if err != nil {
			return nil, err
		}
		sess.Emit(platform.CloseRequested{WindowID: w.ID()})
		return nil, nil
	})
	if err != nil {
		return nil, AckOutput{}, err
	}
	return nil, AckOutput{OK: true}, nil
}

func describeWindow(w *platform.Window) WindowInfo {
	info := WindowInfo{
		ID:          w.ID().String(),
		ScaleFactor: w.HiDPIFactor(),
	}
	if size, ok := w.InnerSize(); ok {
		info.Width, info.Height = size.Width, size.Height
	}
	if pos, ok := w.Position(); ok {
		info.X, info.Y = &pos.X, &pos.Y
	}
	if m := w.CurrentMonitor(); m != nil {
		info.Monitor = m.ID().String()
	}
	_, info.Fullscreen = w.Fullscreen()
	return info
}

func validExtent(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
