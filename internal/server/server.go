package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pageza/recipebox/backend/internal/logging"
)

// Server wraps an http.Server with graceful shutdown.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

// New creates a server listening on addr.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			// generation calls can take most of a minute
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	log := logging.WithComponent("server")

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
