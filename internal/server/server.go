package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Server owns the HTTP listener lifecycle.
type Server struct {
	mu   sync.Mutex
	http *http.Server
}

// Per-connection limits. Upgraded WebSocket connections set their own
// deadlines on every frame.
const (
	headerBytesLimit = 1 << 20
	headerReadLimit  = 10 * time.Second
	requestReadLimit = 15 * time.Second
	responseLimit    = 15 * time.Second
	keepAliveLimit   = time.Minute
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    headerBytesLimit,
		ReadHeaderTimeout: headerReadLimit,
		ReadTimeout:       requestReadLimit,
		WriteTimeout:      responseLimit,
		IdleTimeout:       keepAliveLimit,
	}
}

// listenAddr turns a bare port ("8000") into ":8000"; anything with a colon
// is used as is.
func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run serves handler on port until Shutdown, which makes it return nil.
func (s *Server) Run(port string, handler http.Handler) error {
	srv := newHTTPServer(listenAddr(port), handler)
	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests. It is a no-op before Run.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
