package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bapt252/Commitment--sub002/internal/store"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func (brokenStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func (brokenStore) Count(context.Context, string) (int64, error) {
	return 0, errors.New("store down")
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(store.NewMemoryStore(0), nil, 3, time.Minute)

	assert.True(t, b.Allow(ctx))
	b.RecordFailure(ctx)
	b.RecordFailure(ctx)
	assert.True(t, b.Allow(ctx))
	b.RecordFailure(ctx)
	assert.False(t, b.Allow(ctx))
}

func TestBreakerClosesAfterWindow(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(store.NewMemoryStore(0), nil, 2, 30*time.Millisecond)

	b.RecordFailure(ctx)
	b.RecordFailure(ctx)
	assert.False(t, b.Allow(ctx))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, b.Allow(ctx))
}

func TestBreakerFailsOpenOnStoreErrors(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(brokenStore{}, nil, 1, time.Minute)

	b.RecordFailure(ctx)
	assert.True(t, b.Allow(ctx))
}

func TestBreakerDefaults(t *testing.T) {
	b := NewBreaker(store.NewMemoryStore(0), nil, 0, 0)

	assert.Equal(t, int64(defaultBreakerThreshold), b.threshold)
	assert.Equal(t, defaultBreakerWindow, b.window)
}
