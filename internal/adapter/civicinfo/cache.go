package civicinfo

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PivtoranisV/event-manager/internal/domain"
	"github.com/PivtoranisV/event-manager/internal/observability"
)

// CachedLookup wraps a RepresentativeLookup with an in-memory LRU cache keyed by zipcode.
type CachedLookup struct {
	inner   domain.RepresentativeLookup
	cache   *lru.Cache[string, []domain.Official]
	metrics *observability.Metrics
}

// NewCachedLookup creates a cache decorator around a lookup. Sizes below one
// hold a single zipcode.
func NewCachedLookup(inner domain.RepresentativeLookup, maxEntries int, metrics *observability.Metrics) *CachedLookup {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []domain.Official](max(maxEntries, 1))
	return &CachedLookup{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

// LegislatorsByZipcode serves repeated zipcodes from the cache. Lookup errors
// are not cached, so the next attendee in that zipcode tries again.
func (c *CachedLookup) LegislatorsByZipcode(ctx context.Context, zipcode string) ([]domain.Official, error) {
	if officials, ok := c.cache.Get(zipcode); ok {
		c.metrics.LookupCache.WithLabelValues("hit").Inc()
		return officials, nil
	}
	c.metrics.LookupCache.WithLabelValues("miss").Inc()

	officials, err := c.inner.LegislatorsByZipcode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	c.cache.Add(zipcode, officials)
	return officials, nil
}

// Len returns the number of cached zipcodes.
func (c *CachedLookup) Len() int { return c.cache.Len() }
