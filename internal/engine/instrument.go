package engine

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/modmath/internal/biguint"
)

var (
	powTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "modmath_pow_total",
			Help: "The total number of modular exponentiations processed",
		},
		[]string{"engine", "status"},
	)
	powDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "modmath_pow_duration_seconds",
			Help: "The duration of modular exponentiations in seconds",
		},
		[]string{"engine"},
	)
)

// Instrumented wraps an Engine with the cross-cutting observability
// concerns: a prometheus counter/histogram pair labeled by engine and
// status, an otel span per call, and a zerolog debug record on completion.
// The wrapped engine's arithmetic is untouched.
type Instrumented struct {
	inner Engine
}

// Instrument decorates an engine. It panics on a nil engine, which would be
// a wiring bug.
func Instrument(inner Engine) *Instrumented {
	if inner == nil {
		panic("engine: cannot instrument a nil Engine")
	}
	return &Instrumented{inner: inner}
}

// Name returns the wrapped engine's name.
func (e *Instrumented) Name() string { return e.inner.Name() }

// Pow delegates to the wrapped engine, recording duration, outcome, and the
// operand bit widths.
func (e *Instrumented) Pow(ctx context.Context, base, exponent, modulus *biguint.Nat) (result *biguint.Nat, err error) {
	tracer := otel.Tracer("modmath")
	ctx, span := tracer.Start(ctx, "Pow")
	defer span.End()
	span.SetAttributes(
		attribute.Int("modulus_bits", modulus.BitLen()),
		attribute.Int("exponent_bits", exponent.BitLen()),
		attribute.String("engine", e.inner.Name()),
	)

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		name := e.inner.Name()
		powTotal.WithLabelValues(name, status).Inc()
		powDuration.WithLabelValues(name).Observe(duration)

		log.Debug().
			Str("engine", name).
			Int("modulus_bits", modulus.BitLen()).
			Int("exponent_bits", exponent.BitLen()).
			Float64("duration", duration).
			Str("status", status).
			Msg("modular exponentiation completed")
	}()

	return e.inner.Pow(ctx, base, exponent, modulus)
}
