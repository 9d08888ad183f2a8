package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations must be safe for concurrent use; the keyspace handle is
// shared process-wide and calls these methods from every executing goroutine.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/Galeria-Kaufhof/cequel/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	ks, _ := cequel.New(connector,
//	    cequel.WithMetrics(collector),
//	)
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Statement Execution
	// ----------------------

	// IncExecuteTotal increments the total statement executions counter.
	IncExecuteTotal()

	// IncExecuteError increments the statement execution error counter.
	IncExecuteError()

	// ObserveExecuteDuration records a statement execution duration in seconds.
	ObserveExecuteDuration(seconds float64)

	// ----------------------
	// Batch Flushes
	// ----------------------

	// IncBatchFlushTotal increments the batch flush counter for the given kind.
	IncBatchFlushTotal(kind BatchKind)

	// IncBatchFlushError increments the batch flush error counter for the given kind.
	IncBatchFlushError(kind BatchKind)

	// ObserveBatchFlushDuration records a batch flush duration in seconds.
	ObserveBatchFlushDuration(kind BatchKind, seconds float64)

	// ObserveBatchSize records the number of statements in a flushed batch.
	ObserveBatchSize(n int)

	// ----------------------
	// Connection Recovery
	// ----------------------

	// IncRetryTotal increments the counter when a statement is retried after
	// a connection-level failure.
	IncRetryTotal()

	// IncConnectionRebuildTotal increments the counter when the cached
	// connection handle is discarded and rebuilt.
	IncConnectionRebuildTotal()
}
