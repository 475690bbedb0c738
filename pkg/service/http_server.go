package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
}

// NewHTTPServer wraps an http.Server as a group service. No request
// timeouts are enforced locally; provider client defaults govern how
// long an in-flight call may take.
func NewHTTPServer(addr string, handler http.Handler) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

func (s *httpServer) Name() string { return "http_server" }

func (s *httpServer) Run(ctx context.Context) error {
	slog.Info("Starting HTTP server", "addr", s.server.Addr)
	defer slog.Info("HTTP server stopped")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelFn()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
