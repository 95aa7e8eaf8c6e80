package remote

import (
	"context"
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"snes2db9/app"
	"snes2db9/hal"
	"snes2db9/snes"
)

// Pad is the controller the server presses buttons on.
type Pad interface {
	SetButtons(b uint16)
	Buttons() uint16
}

// Server serves the Pad service for one simulated controller.
type Server struct {
	pad    Pad
	status func() app.Status
	log    hal.Logger

	mu       sync.Mutex
	listener net.Listener
	server   *grpc.Server
}

// NewServer returns a Server pressing buttons on pad and reporting status.
// log may be nil.
func NewServer(pad Pad, status func() app.Status, log hal.Logger) *Server {
	return &Server{pad: pad, status: status, log: log}
}

// Start listens on addr ("host:port") and serves in the background.
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote: listen: %w", err)
	}
	s.Serve(lis)
	return nil
}

// Serve serves on lis in the background.
func (s *Server) Serve(lis net.Listener) {
	srv := grpc.NewServer()
	RegisterPadServer(srv, s)

	s.mu.Lock()
	s.listener = lis
	s.server = srv
	s.mu.Unlock()

	s.logf("remote: listening on %s", lis.Addr())
	go func() {
		if err := srv.Serve(lis); err != nil {
			s.logf("remote: %v", err)
		}
	}()
}

// Addr returns the listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv != nil {
		srv.GracefulStop()
	}
}

func (s *Server) SetButtons(ctx context.Context, in *wrapperspb.UInt32Value) (*emptypb.Empty, error) {
	v := in.GetValue()
	if v > 0xFFFF || snes.Buttons(v)&^snes.ButtonsAll != 0 {
		return nil, status.Errorf(codes.InvalidArgument, "buttons %#x outside %#x", v, uint16(snes.ButtonsAll))
	}
	s.pad.SetButtons(uint16(v))
	return &emptypb.Empty{}, nil
}

func (s *Server) GetState(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
	st := s.status()
	pinLevels := make([]any, len(st.Pins))
	for i, l := range st.Pins {
		pinLevels[i] = l.String()
	}

	out, err := structpb.NewStruct(map[string]any{
		"pad":         float64(s.pad.Buttons()),
		"buttons":     st.Buttons.String(),
		"buttons_raw": float64(st.Buttons),
		"outputs":     st.Outputs.String(),
		"outputs_raw": float64(st.Outputs),
		"autofire":    st.Autofire,
		"suppressed":  st.Suppressed,
		"read_cycles": float64(st.ReadCycles),
		"ticks":       float64(st.Sched.Ticks),
		"missed":      float64(st.Sched.FineMissed + st.Sched.CoarseMissed),
		"pins":        pinLevels,
		"error":       st.Err,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode state: %v", err)
	}
	return out, nil
}

func (s *Server) logf(format string, args ...any) {
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}
