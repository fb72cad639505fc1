// Package httpserver owns the start/stop lifecycle of the HTTP listener.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrAlreadyStarted = errors.New("server already started")
	ErrNotStarted     = errors.New("server not started")
)

// Server wraps an http.Server so that exactly one listener is tracked at a
// time. Start and Stop may be called repeatedly in alternation.
type Server struct {
	handler http.Handler
	log     zerolog.Logger

	mu   sync.Mutex
	srv  *http.Server
	ln   net.Listener
	done chan error
}

func New(handler http.Handler, log zerolog.Logger) *Server {
	return &Server{handler: handler, log: log}
}

// Start binds port and begins serving in the background. It returns once the
// socket is listening, or the bind error. Calling Start on a running server
// returns ErrAlreadyStarted.
func (s *Server) Start(port string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", net.JoinHostPort("", port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", port, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	done := make(chan error, 1)

	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
		close(done)
	}()

	s.srv, s.ln, s.done = srv, ln, done
	s.log.Info().Str("addr", ln.Addr().String()).Msg("app is listening")
	return nil
}

// Addr returns the bound address, or nil when the server is not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Done yields the terminal serve error (nil after a clean Stop). The channel
// is nil when the server is not running.
func (s *Server) Done() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Stop closes the listener and idle keep-alive connections, then waits for
// in-flight requests until ctx expires. Without a running server it returns
// ErrNotStarted.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.srv, s.done
	s.srv, s.ln, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return ErrNotStarted
	}

	s.log.Info().Msg("closing server")
	if err := srv.Shutdown(ctx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-done
}
