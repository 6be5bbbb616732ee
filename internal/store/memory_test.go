package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must not be returned")
}

func TestMemoryStoreIncrWindow(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	n, err := s.Incr(ctx, "fails", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Incr(ctx, "fails", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := s.Count(ctx, "fails")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMemoryStoreIncrConcurrent(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := s.Incr(ctx, "fails", time.Minute)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := s.Count(ctx, "fails")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), count, "no increments lost under contention")
}

func TestMemoryStoreIncrResetsAfterWindow(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	_, err := s.Incr(ctx, "fails", 10*time.Millisecond)
	require.NoError(t, err)
	_, err = s.Incr(ctx, "fails", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	count, err := s.Count(ctx, "fails")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "expired counter reads as zero")

	n, err := s.Incr(ctx, "fails", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "expired counter restarts at one")
}

func TestMemoryStoreSweepRemovesExpired(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "old", []byte("v"), 5*time.Millisecond))
	require.NoError(t, s.Set(ctx, "live", []byte("v"), time.Minute))
	time.Sleep(15 * time.Millisecond)

	s.sweep()

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.NotContains(t, s.entries, "old")
	assert.Contains(t, s.entries, "live")
}

func TestMemoryStoreStopIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	s.Stop()
	s.Stop()
}
