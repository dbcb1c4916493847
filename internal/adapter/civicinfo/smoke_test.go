//go:build civicinfo

package civicinfo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PivtoranisV/event-manager/internal/domain"
	"github.com/PivtoranisV/event-manager/internal/observability"
)

// These tests hit the real Civic Information API and require CIVIC_KEY_FILE
// to point at a valid key.
// Run with: go test -tags=civicinfo ./internal/adapter/civicinfo/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	path := os.Getenv("CIVIC_KEY_FILE")
	if path == "" {
		t.Fatal("CIVIC_KEY_FILE must be set to run smoke tests")
	}
	key, err := ReadAPIKey(path)
	require.NoError(t, err)

	return NewClient(key, Options{Timeout: 10 * time.Second, RateLimit: 1},
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_LegislatorsByZipcode(t *testing.T) {
	c := smokeClient(t)

	officials, err := c.LegislatorsByZipcode(context.Background(), "20010")
	if err != nil {
		// The representatives endpoint may be retired; the failure must still be classified.
		assert.NotEqual(t, domain.ReasonDecode, domain.ReasonOf(err))
		t.Skipf("civic service unavailable: %v", err)
	}
	assert.NotEmpty(t, officials)
}

func TestSmoke_CachedLookup(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedLookup(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.LegislatorsByZipcode(context.Background(), "80203")
	if err != nil {
		t.Skipf("civic service unavailable: %v", err)
	}

	r2, err := cached.LegislatorsByZipcode(context.Background(), "80203")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
