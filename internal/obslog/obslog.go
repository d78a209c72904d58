// Package obslog wraps zerolog with context-scoped fields for generation
// tracing: a correlation id is a planet seed, and request/response-style
// logging becomes phase-entry/phase-exit logging.
package obslog

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	loggerKey contextKey = "obslog_logger"
	seedKey   contextKey = "obslog_seed"
)

// Init configures the global logger. Call once at process start.
func Init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// WithSeed returns a context carrying a child logger scoped to the given
// planet seed, so every log line emitted during that planet's generation
// can be correlated.
func WithSeed(ctx context.Context, seed uint32) context.Context {
	logger := log.With().Uint32("seed", seed).Logger()
	ctx = context.WithValue(ctx, loggerKey, logger)
	ctx = context.WithValue(ctx, seedKey, seed)
	return ctx
}

// WithPhase returns a context whose logger additionally carries the
// current generation phase (e.g. "hydrosphere", "convergence", "rings").
func WithPhase(ctx context.Context, phase string) context.Context {
	logger := FromContext(ctx).With().Str("phase", phase).Logger()
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger scoped to ctx, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// SeedFromContext returns the planet seed recorded by WithSeed, if any.
func SeedFromContext(ctx context.Context) (uint32, bool) {
	seed, ok := ctx.Value(seedKey).(uint32)
	return seed, ok
}

// Iteration logs one pass of the convergence loop at debug level — the
// loop runs at most 10 times (spec.md §4.5 step 8c) so this is cheap even
// when debug logging is enabled.
func Iteration(ctx context.Context, n int, delta float64) {
	FromContext(ctx).Debug().Int("iteration", n).Float64("delta_k", delta).Msg("convergence step")
}

// ConvergenceExhausted logs that the loop hit its iteration cap without
// reaching tolerance (spec.md §4.5 failure semantics: retained, not fatal).
func ConvergenceExhausted(ctx context.Context, residual float64) {
	FromContext(ctx).Warn().Float64("residual_k", residual).Msg("convergence tolerance not reached; retaining last state")
}
