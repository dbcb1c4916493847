package civicinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// --- mock for cache tests ---

type countingLookup struct {
	calls  int
	result []domain.Official
	err    error
}

func (m *countingLookup) LegislatorsByZipcode(_ context.Context, _ string) ([]domain.Official, error) {
	m.calls++
	return m.result, m.err
}

func officials(names ...string) []domain.Official {
	out := make([]domain.Official, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Official{Name: n})
	}
	return out
}

// --- CachedLookup tests ---

func TestCachedLookup_CacheHit(t *testing.T) {
	inner := &countingLookup{result: officials("Rep A", "Sen B")}
	metrics := testMetrics()
	cached := NewCachedLookup(inner, 10, metrics)

	r1, err := cached.LegislatorsByZipcode(context.Background(), "20010")
	require.NoError(t, err)
	assert.Len(t, r1, 2)

	r2, err := cached.LegislatorsByZipcode(context.Background(), "20010")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LookupCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LookupCache.WithLabelValues("miss")), 0)
}

func TestCachedLookup_DifferentKeysMiss(t *testing.T) {
	inner := &countingLookup{result: officials("Rep A")}
	cached := NewCachedLookup(inner, 10, testMetrics())

	_, _ = cached.LegislatorsByZipcode(context.Background(), "20010")
	_, _ = cached.LegislatorsByZipcode(context.Background(), "02138")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLookup_ErrorsNotCached(t *testing.T) {
	inner := &countingLookup{err: &domain.LookupError{Reason: domain.ReasonQuota, Err: errors.New("429")}}
	cached := NewCachedLookup(inner, 10, testMetrics())

	_, err := cached.LegislatorsByZipcode(context.Background(), "20010")
	require.Error(t, err)
	_, err = cached.LegislatorsByZipcode(context.Background(), "20010")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Zero(t, cached.Len())
}

func TestCachedLookup_EmptyResultCached(t *testing.T) {
	inner := &countingLookup{result: []domain.Official{}}
	cached := NewCachedLookup(inner, 10, testMetrics())

	_, _ = cached.LegislatorsByZipcode(context.Background(), "99999")
	_, _ = cached.LegislatorsByZipcode(context.Background(), "99999")

	assert.Equal(t, 1, inner.calls)
}

// --- eviction tests ---

// keyedLookup returns one official named after the zipcode and records calls.
type keyedLookup struct {
	calls map[string]int
}

func (m *keyedLookup) LegislatorsByZipcode(_ context.Context, zipcode string) ([]domain.Official, error) {
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[zipcode]++
	return officials("Rep " + zipcode), nil
}

func lookupAll(t *testing.T, c *CachedLookup, zipcodes ...string) {
	t.Helper()
	for _, z := range zipcodes {
		result, err := c.LegislatorsByZipcode(context.Background(), z)
		require.NoError(t, err)
		require.Equal(t, "Rep "+z, result[0].Name)
	}
}

func TestCachedLookup_Eviction(t *testing.T) {
	inner := &keyedLookup{}
	cached := NewCachedLookup(inner, 2, testMetrics())

	lookupAll(t, cached, "a", "b", "c") // "c" evicts "a"
	assert.Equal(t, 2, cached.Len())

	lookupAll(t, cached, "b", "c")
	assert.Equal(t, 1, inner.calls["b"])
	assert.Equal(t, 1, inner.calls["c"])

	lookupAll(t, cached, "a")
	assert.Equal(t, 2, inner.calls["a"], "a should have been evicted")
}

func TestCachedLookup_AccessPromotesEntry(t *testing.T) {
	inner := &keyedLookup{}
	cached := NewCachedLookup(inner, 2, testMetrics())

	lookupAll(t, cached, "a", "b", "a")
	// "b" is now least recently used.
	lookupAll(t, cached, "c")

	lookupAll(t, cached, "a")
	assert.Equal(t, 1, inner.calls["a"], "a was accessed recently, should not be evicted")

	lookupAll(t, cached, "b")
	assert.Equal(t, 2, inner.calls["b"], "b should have been evicted")
}

func TestCachedLookup_MinimumCapacity(t *testing.T) {
	inner := &keyedLookup{}
	cached := NewCachedLookup(inner, 0, testMetrics())

	lookupAll(t, cached, "a", "b", "b")
	assert.Equal(t, 1, cached.Len())
	assert.Equal(t, 1, inner.calls["b"])
}
