// Package server provides the HTTP endpoint that exposes Prometheus metrics
// while a computation is running. It is local operator tooling, not a
// protocol surface; the arithmetic itself never goes over the wire.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/agbru/modmath/internal/errors"
	"github.com/agbru/modmath/internal/logging"
)

// MetricsServer wraps http.Server to serve the Prometheus registry with
// graceful shutdown.
type MetricsServer struct {
	httpServer *http.Server
	logger     logging.Logger
	timeouts   Timeouts
}

// NewMetricsServer creates a MetricsServer listening on addr. The /metrics
// endpoint serves the default Prometheus registry, which carries the engine
// counters and histograms.
//
// Parameters:
//   - addr: The listen address (e.g., ":2112").
//   - opts: Optional functional options (e.g., WithLogger).
//
// Returns:
//   - *MetricsServer: A pointer to the initialized server.
func NewMetricsServer(addr string, opts ...Option) *MetricsServer {
	s := &MetricsServer{
		logger:   logging.NewLogger(os.Stderr, "metrics", false, false),
		timeouts: DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", handleHealth)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// handleHealth reports process liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// ListenAndServe runs the server until the context is canceled, then shuts
// it down gracefully within the configured shutdown timeout.
//
// Parameters:
//   - ctx: The context whose cancellation stops the server.
//
// Returns:
//   - error: An error if the server fails to start or to shut down cleanly.
func (s *MetricsServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("metrics endpoint listening", logging.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return apperrors.WrapError(err, "metrics server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "failed to gracefully shutdown metrics server")
	}
	s.logger.Debug("metrics server stopped")
	return nil
}
