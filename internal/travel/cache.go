package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Bapt252/Commitment--sub002/internal/store"
	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// Entry is one cached travel lookup. FromCache is set on the returned
// value only, never persisted.
type Entry struct {
	Estimate
	Degraded  bool      `json:"degraded"`
	ExpiresAt time.Time `json:"expires_at"`
	FromCache bool      `json:"-"`
}

// CacheConfig holds the cache's timing knobs.
type CacheConfig struct {
	SuccessTTL  time.Duration
	DegradedTTL time.Duration
	Timeout     time.Duration
}

// DefaultCacheConfig returns the stock TTLs: an hour for real upstream
// answers, minutes for degraded estimates so a real lookup is retried
// soon, and a short upstream timeout.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		SuccessTTL:  time.Hour,
		DegradedTTL: 5 * time.Minute,
		Timeout:     3 * time.Second,
	}
}

const lockStripes = 64

// Cache memoizes travel estimates in a Store. Lookup never fails: when
// the upstream collaborator cannot answer, it stores and returns a
// straight-line estimate with a shorter TTL.
type Cache struct {
	store    store.Store
	upstream Estimator
	logger   *zap.Logger
	config   CacheConfig

	// Striped locks keep concurrent misses on the same key from issuing
	// duplicate upstream calls. A collision between unrelated keys only
	// serializes them.
	locks [lockStripes]sync.Mutex
}

// NewCache builds a travel cache. A nil upstream estimator is allowed and
// sends every miss down the degraded path.
func NewCache(st store.Store, upstream Estimator, logger *zap.Logger, config CacheConfig) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SuccessTTL <= 0 {
		config.SuccessTTL = DefaultCacheConfig().SuccessTTL
	}
	if config.DegradedTTL <= 0 {
		config.DegradedTTL = DefaultCacheConfig().DegradedTTL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultCacheConfig().Timeout
	}
	return &Cache{
		store:    st,
		upstream: upstream,
		logger:   logger,
		config:   config,
	}
}

// Lookup returns the travel entry for (origin, destination, mode), from
// cache when fresh, from the upstream collaborator on a miss, and from
// the geometric fallback when the collaborator fails.
func (c *Cache) Lookup(ctx context.Context, origin, destination types.Location, mode Mode) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	key := cacheKey(origin, destination, mode)

	if entry, ok := c.load(ctx, key); ok {
		return entry, nil
	}

	lock := c.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	// Another request may have filled the key while we waited.
	if entry, ok := c.load(ctx, key); ok {
		return entry, nil
	}

	entry := c.fetch(ctx, origin, destination, mode)
	c.save(ctx, key, entry)
	return entry, nil
}

// fetch asks the upstream collaborator, falling back to the geometric
// estimate on any failure.
func (c *Cache) fetch(ctx context.Context, origin, destination types.Location, mode Mode) Entry {
	if c.upstream != nil {
		uctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()

		est, err := c.upstream.EstimateTravel(uctx, origin, destination, mode, time.Time{})
		if err == nil {
			return Entry{
				Estimate:  est,
				ExpiresAt: time.Now().Add(c.config.SuccessTTL),
			}
		}
		c.logger.Warn("travel lookup degraded to straight-line estimate",
			zap.String("mode", string(mode)),
			zap.Error(err))
	}

	return Entry{
		Estimate:  fallbackEstimate(origin, destination, mode),
		Degraded:  true,
		ExpiresAt: time.Now().Add(c.config.DegradedTTL),
	}
}

func (c *Cache) load(ctx context.Context, key string) (Entry, bool) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("travel cache read failed", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("travel cache entry corrupt", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	entry.FromCache = true
	return entry, true
}

func (c *Cache) save(ctx context.Context, key string, entry Entry) {
	ttl := c.config.SuccessTTL
	if entry.Degraded {
		ttl = c.config.DegradedTTL
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("travel cache entry marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.logger.Warn("travel cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) lockFor(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &c.locks[h.Sum32()%lockStripes]
}

// cacheKey builds the store key. Coordinates are rounded to four decimals
// (roughly ten meters) so jittery geocoding still hits the same entry.
func cacheKey(origin, destination types.Location, mode Mode) string {
	return "travel:" + locationKey(origin) + "|" + locationKey(destination) + "|" + string(mode)
}

func locationKey(loc types.Location) string {
	if loc.HasCoordinates() {
		return fmt.Sprintf("%.4f,%.4f", *loc.Lat, *loc.Lng)
	}
	return strings.ToLower(strings.TrimSpace(loc.Address))
}
