package vm

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Galeria-Kaufhof/cequel/types"
)

func TestCollectorExportsMetrics(t *testing.T) {
	c := New(WithPrefix("myapp"))

	c.IncExecuteTotal()
	c.IncExecuteError()
	c.ObserveExecuteDuration(0.005)
	c.IncBatchFlushTotal(types.LoggedBatch)
	c.IncBatchFlushError(types.UnloggedBatch)
	c.ObserveBatchFlushDuration(types.LoggedBatch, 0.01)
	c.ObserveBatchSize(7)
	c.IncRetryTotal()
	c.IncConnectionRebuildTotal()

	rec := httptest.NewRecorder()
	c.Handler(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	require.Contains(t, body, `myapp_execute_total 1`)
	require.Contains(t, body, `myapp_execute_errors_total 1`)
	require.Contains(t, body, `myapp_batch_flush_total{kind="logged"} 1`)
	require.Contains(t, body, `myapp_batch_flush_errors_total{kind="unlogged"} 1`)
	require.Contains(t, body, `myapp_retries_total 1`)
	require.Contains(t, body, `myapp_connection_rebuilds_total 1`)
}

func TestCollectorUnknownKindIgnored(t *testing.T) {
	c := New()

	// An out-of-range kind must not panic or allocate new series.
	c.IncBatchFlushTotal(types.BatchKind(99))
	c.IncBatchFlushError(types.BatchKind(99))
	c.ObserveBatchFlushDuration(types.BatchKind(99), 0.1)
}
