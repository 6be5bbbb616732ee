package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Bapt252/Commitment--sub002/internal/store"
)

// Breaker default tuning: three remote failures inside one minute trip
// the circuit until the window expires.
const (
	defaultBreakerThreshold = 3
	defaultBreakerWindow    = time.Minute
)

const breakerKey = "breaker:remote"

// Breaker counts remote scoring failures in the shared store and reports
// the circuit open once they cross the threshold within the window. The
// store's fixed-window counter carries the cooldown: when the window
// expires the count resets and the circuit closes again.
type Breaker struct {
	store     store.Store
	logger    *zap.Logger
	threshold int64
	window    time.Duration
}

// NewBreaker creates a breaker over the given store. Non-positive
// threshold or window select the defaults.
func NewBreaker(st store.Store, logger *zap.Logger, threshold int, window time.Duration) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = defaultBreakerThreshold
	}
	if window <= 0 {
		window = defaultBreakerWindow
	}
	return &Breaker{
		store:     st,
		logger:    logger,
		threshold: int64(threshold),
		window:    window,
	}
}

// Allow reports whether the remote collaborator should be tried. It fails
// open: a store error never blocks selection.
func (b *Breaker) Allow(ctx context.Context) bool {
	count, err := b.store.Count(ctx, breakerKey)
	if err != nil {
		b.logger.Warn("breaker state unreadable, failing open", zap.Error(err))
		return true
	}
	return count < b.threshold
}

// RecordFailure counts one remote failure toward tripping the circuit.
func (b *Breaker) RecordFailure(ctx context.Context) {
	count, err := b.store.Incr(ctx, breakerKey, b.window)
	if err != nil {
		b.logger.Warn("breaker increment failed", zap.Error(err))
		return
	}
	if count == b.threshold {
		b.logger.Warn("remote scoring circuit opened",
			zap.Int64("failures", count),
			zap.Duration("cooldown", b.window))
	}
}
