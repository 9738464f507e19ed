package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/energydash/core/metrics"
)

func TestPromSink_RecordRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	ev := coremetrics.RenderEvent{Placeholder: "power_log", Kind: "line", Outcome: coremetrics.OutcomeOK, Duration: 2 * time.Millisecond}
	require.NoError(t, sink.RecordRender(ev))
	require.NoError(t, sink.RecordRender(ev))
	ev.Outcome = coremetrics.OutcomeDataShape
	require.NoError(t, sink.RecordRender(ev))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.renders.WithLabelValues("power_log", "line", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.renders.WithLabelValues("power_log", "line", "data_shape")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.duration))
}

func TestPromSink_RecordFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordFetch(coremetrics.FetchEvent{Source: "http", Outcome: coremetrics.OutcomeError}))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.fetches.WithLabelValues("http", "error")))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordFetch(coremetrics.FetchEvent{Source: "file", Outcome: "ok"}))
	require.NoError(t, second.RecordFetch(coremetrics.FetchEvent{Source: "file", Outcome: "ok"}))
	assert.Equal(t, 2.0, testutil.ToFloat64(second.fetches.WithLabelValues("file", "ok")))
}
