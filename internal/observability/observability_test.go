package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewRunLogger("debug", "json")
	require.NotNil(t, logger)
	assert.Same(t, logger, slog.Default())
}

func TestWithRunID_TagsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	logger := withRunID(slog.New(slog.NewJSONHandler(&buf, nil)))

	logger.Info("EventManager initialized.")
	logger.Info("run complete", "letters_written", 2)

	var ids []string
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		id, ok := line["run_id"].(string)
		require.True(t, ok, "line without run_id: %v", line)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])

	var other bytes.Buffer
	withRunID(slog.New(slog.NewJSONHandler(&other, nil))).Info("x")
	assert.NotContains(t, other.String(), ids[0])
}

func TestNewMetricsForTesting_Unregistered(t *testing.T) {
	m1 := NewMetricsForTesting()
	m2 := NewMetricsForTesting()

	m1.RowsRead.Inc()
	m1.LookupRequests.WithLabelValues("success").Inc()
	m1.LookupCache.WithLabelValues("hit").Add(2)

	assert.InDelta(t, 1, testutil.ToFloat64(m1.RowsRead), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m2.RowsRead), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m1.LookupCache.WithLabelValues("hit")), 0)
}

func TestMetrics_RegisterCleanly(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsForTesting()

	require.NoError(t, reg.Register(m.RowsRead))
	require.NoError(t, reg.Register(m.LettersWritten))
	require.NoError(t, reg.Register(m.RowsSkipped))
	require.NoError(t, reg.Register(m.LookupAPIDuration))

	m.RowsSkipped.WithLabelValues("invalid_time").Inc()
	assert.Equal(t, 1, testutil.CollectAndCount(m.RowsSkipped))
}
