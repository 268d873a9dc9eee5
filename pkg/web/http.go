// Package web serves the health probes and the read-only events API of the
// bot.
package web

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
)

// HTTPServer serves NewRouter on cfg.HTTP.ListenAddr.
type HTTPServer struct {
	ctx context.Context
	cfg *config.Config

	Server *http.Server
}

// NewHTTPServer creates the server. Request contexts derive from ctx, so
// canceling it cancels in-flight requests.
func NewHTTPServer(ctx context.Context) (*HTTPServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	logger := log.FromContext(ctx).WithPrefix("http")
	s := &HTTPServer{
		ctx: ctx,
		cfg: cfg,
	}
	s.Server = &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           NewRouter(ctx),
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
		ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}

	return s, nil
}

// Addr returns the address the server listens on.
func (s *HTTPServer) Addr() string {
	return s.Server.Addr
}

// ListenAndServe starts the server. It returns http.ErrServerClosed after
// Shutdown or Close.
func (s *HTTPServer) ListenAndServe() error {
	return s.Server.ListenAndServe()
}

// Shutdown waits for in-flight requests until ctx is done.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

// Close stops the server immediately.
func (s *HTTPServer) Close() error {
	return s.Server.Close()
}
