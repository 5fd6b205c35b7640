package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// HTTPServer serves the turtle control API. Commands and Frame are set
// by the entry point before Start.
type HTTPServer struct {
	Addr    string
	DevMode bool

	Commands Commands
	Frame    FrameFunc

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

func NewHTTPServer(addr string) *HTTPServer {
	return &HTTPServer{Addr: addr}
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}

	var handler http.Handler = NewAPIV1Mux(s.Commands, s.Frame)
	if s.DevMode {
		handler = WithDevCORS(handler)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	go func() {
		err := s.srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
	}()

	return nil
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
