package rewrite

import (
	"log/slog"
	"time"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger enables logging for engine operations: validation outcomes
// and commits at Debug, rejections at Warn. Pass nil to disable (the
// default).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock injects the clock used to stamp commit metadata.
//
// Matching and simulation never read the clock; only commits do. Two
// engines constructed with the same clock and driven by the same rules
// produce byte-identical snapshots, which is how the determinism tests
// pin wall-clock time out of the picture. Defaults to time.Now in UTC.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithActor sets the actor id recorded on commit metadata and proofs.
// Defaults to "system".
func WithActor(actorID string) Option {
	return func(e *Engine) {
		e.actor = actorID
	}
}
