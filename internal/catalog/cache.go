package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/example/watch-gateway/internal/tmdb"
)

// failureTTL bounds how long a degraded (empty) snapshot is served before the
// next access retries upstream.
const failureTTL = 30 * time.Second

// ProviderSource is the slice of the upstream client the cache needs.
type ProviderSource interface {
	WatchProviders(ctx context.Context, mediaType string) ([]tmdb.ProviderEntry, error)
}

// snapshot is one immutable refresh result covering both categories.
type snapshot struct {
	movie     Catalog
	series    Catalog
	expiresAt time.Time
}

// Cache is the read-through, time-bounded provider catalog cache. A refresh
// builds a complete snapshot and swaps it in atomically, so concurrent
// readers observe either the fully-old or fully-new state, never a mix.
// Concurrent refreshes are not deduplicated; the last successful swap wins.
type Cache struct {
	source ProviderSource
	ttl    time.Duration
	log    *zap.Logger
	snap   atomic.Pointer[snapshot]
}

func NewCache(source ProviderSource, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{source: source, ttl: ttl, log: log}
}

// Catalog returns the category's provider catalog, refreshing on miss or
// expiry. Upstream failure during refresh degrades the affected category to
// an empty catalog instead of failing, so platform-filtered search keeps
// functioning without the filter. The only returned error is the caller's
// context ending.
func (c *Cache) Catalog(ctx context.Context, cat Category) (Catalog, error) {
	if s := c.snap.Load(); s != nil && time.Now().Before(s.expiresAt) {
		return s.pick(cat), nil
	}
	s, err := c.refresh(ctx)
	if err != nil {
		return Catalog{}, err
	}
	return s.pick(cat), nil
}

// Invalidate drops the current snapshot; the next access refreshes.
func (c *Cache) Invalidate() {
	c.snap.Store(nil)
}

// refresh fetches both category lists concurrently and installs a complete
// snapshot. A failed fetch yields an empty catalog for that category and a
// short expiry so the next access retries soon.
func (c *Cache) refresh(ctx context.Context) (*snapshot, error) {
	var (
		movieEntries, seriesEntries []tmdb.ProviderEntry
		movieErr, seriesErr         error
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		movieEntries, movieErr = c.source.WatchProviders(ctx, "movie")
		return nil
	})
	p.Go(func(ctx context.Context) error {
		seriesEntries, seriesErr = c.source.WatchProviders(ctx, "tv")
		return nil
	})
	_ = p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &snapshot{expiresAt: time.Now().Add(c.ttl)}
	if movieErr != nil {
		c.log.Warn("movie provider refresh failed, serving empty catalog", zap.Error(movieErr))
	} else {
		s.movie = Build(movieEntries)
	}
	if seriesErr != nil {
		c.log.Warn("series provider refresh failed, serving empty catalog", zap.Error(seriesErr))
	} else {
		s.series = Build(seriesEntries)
	}
	if movieErr != nil || seriesErr != nil {
		s.expiresAt = time.Now().Add(failureTTL)
	}

	c.snap.Store(s)
	return s, nil
}

func (s *snapshot) pick(cat Category) Catalog {
	if cat.IsMovie() {
		return s.movie
	}
	return s.series
}
