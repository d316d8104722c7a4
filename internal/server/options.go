package server

import (
	"time"

	"github.com/agbru/modmath/internal/logging"
)

// Option defines a functional option for configuring a MetricsServer.
type Option func(*MetricsServer)

// WithLogger sets a custom logger for the server.
// This is useful for testing or integrating with existing logging
// infrastructure.
func WithLogger(logger logging.Logger) Option {
	return func(s *MetricsServer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeouts sets custom timeout configuration for the server.
// This allows fine-tuning behavior for tests or unusual deployments.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *MetricsServer) {
		s.timeouts = timeouts
	}
}

// Timeouts holds timeout configuration for the HTTP server.
type Timeouts struct {
	// ShutdownTimeout is the maximum duration allowed for graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out response writes.
	WriteTimeout time.Duration
	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout time.Duration
}

// DefaultServerTimeouts returns the timeouts used in normal operation.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     2 * time.Minute,
	}
}
