package travel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bapt252/Commitment--sub002/internal/store"
	"github.com/Bapt252/Commitment--sub002/internal/types"
)

func coords(lat, lng float64) types.Location {
	return types.Location{Lat: &lat, Lng: &lng}
}

// stubEstimator counts calls and returns a canned answer or error.
type stubEstimator struct {
	calls    int
	estimate Estimate
	err      error
}

func (s *stubEstimator) EstimateTravel(_ context.Context, _, _ types.Location, _ Mode, _ time.Time) (Estimate, error) {
	s.calls++
	if s.err != nil {
		return Estimate{}, s.err
	}
	return s.estimate, nil
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeTransit, ParseMode("transit"))
	assert.Equal(t, ModeWalking, ParseMode("walking"))
	assert.Equal(t, ModeDriving, ParseMode(""))
	assert.Equal(t, ModeDriving, ParseMode("teleport"))
}

func TestHaversineKnownDistance(t *testing.T) {
	// Paris to Lyon is roughly 392 km as the crow flies.
	d := haversineMeters(48.8566, 2.3522, 45.7640, 4.8357)
	assert.InDelta(t, 392000, d, 5000)
}

func TestFallbackEstimate(t *testing.T) {
	t.Run("with coordinates", func(t *testing.T) {
		// About 10 km straight line, 13 km routed, ~19.5 min driving.
		origin := coords(48.8566, 2.3522)
		dest := coords(48.9472, 2.3522)
		est := fallbackEstimate(origin, dest, ModeDriving)
		assert.True(t, est.DurationSeconds > 15*60 && est.DurationSeconds < 25*60,
			"got %d seconds", est.DurationSeconds)
		assert.Greater(t, est.DistanceMeters, 10000.0)
	})

	t.Run("walking is slower than driving", func(t *testing.T) {
		origin := coords(48.8566, 2.3522)
		dest := coords(48.9472, 2.3522)
		drive := fallbackEstimate(origin, dest, ModeDriving)
		walk := fallbackEstimate(origin, dest, ModeWalking)
		assert.Greater(t, walk.DurationSeconds, drive.DurationSeconds)
	})

	t.Run("no coordinates gets pessimistic default", func(t *testing.T) {
		est := fallbackEstimate(types.Location{Address: "Paris"}, types.Location{Address: "Lyon"}, ModeDriving)
		assert.Equal(t, int(noCoordinatesEstimate.Seconds()), est.DurationSeconds)
	})
}

func TestCacheHitSkipsUpstream(t *testing.T) {
	upstream := &stubEstimator{estimate: Estimate{DurationSeconds: 900, DistanceMeters: 8000}}
	cache := NewCache(store.NewMemoryStore(0), upstream, nil, DefaultCacheConfig())
	ctx := context.Background()

	origin := coords(48.8566, 2.3522)
	dest := coords(48.8606, 2.3376)

	first, err := cache.Lookup(ctx, origin, dest, ModeTransit)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.False(t, first.Degraded)
	assert.Equal(t, 900, first.DurationSeconds)
	assert.Equal(t, 1, upstream.calls)

	second, err := cache.Lookup(ctx, origin, dest, ModeTransit)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 900, second.DurationSeconds)
	assert.Equal(t, 1, upstream.calls, "cached hit must not call upstream again")
}

func TestCacheSingleFlightOnConcurrentMisses(t *testing.T) {
	upstream := &stubEstimator{estimate: Estimate{DurationSeconds: 1200, DistanceMeters: 15000}}
	cache := NewCache(store.NewMemoryStore(0), upstream, nil, DefaultCacheConfig())

	origin := coords(48.8566, 2.3522)
	dest := coords(48.8606, 2.3376)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			entry, err := cache.Lookup(context.Background(), origin, dest, ModeTransit)
			assert.NoError(t, err)
			assert.Equal(t, 1200, entry.DurationSeconds)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, upstream.calls, "concurrent misses on one key make a single upstream call")
}

func TestCacheDistinguishesModes(t *testing.T) {
	upstream := &stubEstimator{estimate: Estimate{DurationSeconds: 600}}
	cache := NewCache(store.NewMemoryStore(0), upstream, nil, DefaultCacheConfig())
	ctx := context.Background()

	origin := coords(48.8566, 2.3522)
	dest := coords(48.8606, 2.3376)

	_, err := cache.Lookup(ctx, origin, dest, ModeDriving)
	require.NoError(t, err)
	_, err = cache.Lookup(ctx, origin, dest, ModeWalking)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls, "each mode is its own key")
}

func TestCacheDegradesWhenUpstreamFails(t *testing.T) {
	upstream := &stubEstimator{err: errors.New("quota exhausted")}
	cache := NewCache(store.NewMemoryStore(0), upstream, nil, DefaultCacheConfig())
	ctx := context.Background()

	entry, err := cache.Lookup(ctx, coords(48.8566, 2.3522), coords(48.9472, 2.3522), ModeDriving)
	require.NoError(t, err, "lookup never fails outright")
	assert.True(t, entry.Degraded)
	assert.Positive(t, entry.DurationSeconds)

	// The degraded entry is cached too, with its shorter TTL.
	again, err := cache.Lookup(ctx, coords(48.8566, 2.3522), coords(48.9472, 2.3522), ModeDriving)
	require.NoError(t, err)
	assert.True(t, again.FromCache)
	assert.True(t, again.Degraded)
	assert.Equal(t, 1, upstream.calls)
}

func TestCacheExpiryTriggersRefetch(t *testing.T) {
	upstream := &stubEstimator{estimate: Estimate{DurationSeconds: 300}}
	cfg := DefaultCacheConfig()
	cfg.SuccessTTL = 10 * time.Millisecond
	cache := NewCache(store.NewMemoryStore(0), upstream, nil, cfg)
	ctx := context.Background()

	_, err := cache.Lookup(ctx, coords(48.8566, 2.3522), coords(48.8606, 2.3376), ModeDriving)
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)

	entry, err := cache.Lookup(ctx, coords(48.8566, 2.3522), coords(48.8606, 2.3376), ModeDriving)
	require.NoError(t, err)
	assert.False(t, entry.FromCache)
	assert.Equal(t, 2, upstream.calls)
}

func TestCacheWithNilUpstream(t *testing.T) {
	cache := NewCache(store.NewMemoryStore(0), nil, nil, DefaultCacheConfig())

	entry, err := cache.Lookup(context.Background(), coords(48.8566, 2.3522), coords(48.9472, 2.3522), ModeTransit)
	require.NoError(t, err)
	assert.True(t, entry.Degraded)
	assert.Positive(t, entry.DurationSeconds)
}

func TestCacheKeyRoundsCoordinates(t *testing.T) {
	a := cacheKey(coords(48.85661, 2.35221), coords(48.8606, 2.3376), ModeDriving)
	b := cacheKey(coords(48.85659, 2.35219), coords(48.8606, 2.3376), ModeDriving)
	assert.Equal(t, a, b, "ten-meter jitter maps to the same key")
}
