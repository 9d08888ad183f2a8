package vm

import (
	"fmt"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/Galeria-Kaufhof/cequel/types"
)

// batchKinds enumerates the kinds pre-created at construction time, so the
// hot path never allocates or synchronizes on metric lookup.
var batchKinds = []types.BatchKind{
	types.LoggedBatch,
	types.UnloggedBatch,
	types.CounterBatch,
}

// Collector implements types.MetricsCollector on top of a VictoriaMetrics
// metric set.
//
// All metrics are created up front; the collector methods only touch
// pre-built counters and histograms and are safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	executeTotal    *metrics.Counter
	executeError    *metrics.Counter
	executeDuration *metrics.Histogram

	flushTotal    map[types.BatchKind]*metrics.Counter
	flushError    map[types.BatchKind]*metrics.Counter
	flushDuration map[types.BatchKind]*metrics.Histogram
	batchSize     *metrics.Histogram

	retryTotal   *metrics.Counter
	rebuildTotal *metrics.Counter
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix. Defaults to "cequel".
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithMetricsSet uses an existing metric set instead of a private one,
// allowing the metrics to be exported alongside the application's own.
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		if set != nil {
			c.set = set
		}
	}
}

// New creates a VictoriaMetrics-backed collector.
//
// Parameters:
//   - opts: Collector options
//
// Returns:
//   - *Collector: A collector with all metrics pre-created
func New(opts ...Option) *Collector {
	c := &Collector{
		set:           metrics.NewSet(),
		prefix:        "cequel",
		flushTotal:    make(map[types.BatchKind]*metrics.Counter),
		flushError:    make(map[types.BatchKind]*metrics.Counter),
		flushDuration: make(map[types.BatchKind]*metrics.Histogram),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.executeTotal = c.set.GetOrCreateCounter(c.name("execute_total"))
	c.executeError = c.set.GetOrCreateCounter(c.name("execute_errors_total"))
	c.executeDuration = c.set.GetOrCreateHistogram(c.name("execute_duration_seconds"))
	c.batchSize = c.set.GetOrCreateHistogram(c.name("batch_size"))
	c.retryTotal = c.set.GetOrCreateCounter(c.name("retries_total"))
	c.rebuildTotal = c.set.GetOrCreateCounter(c.name("connection_rebuilds_total"))

	for _, kind := range batchKinds {
		label := fmt.Sprintf(`{kind=%q}`, kind.String())
		c.flushTotal[kind] = c.set.GetOrCreateCounter(c.name("batch_flush_total") + label)
		c.flushError[kind] = c.set.GetOrCreateCounter(c.name("batch_flush_errors_total") + label)
		c.flushDuration[kind] = c.set.GetOrCreateHistogram(c.name("batch_flush_duration_seconds") + label)
	}

	return c
}

func (c *Collector) name(base string) string {
	return c.prefix + "_" + base
}

// Handler writes the collected metrics in Prometheus text format. Mount it
// on the application's metrics endpoint.
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// IncExecuteTotal increments the statement execution counter.
func (c *Collector) IncExecuteTotal() {
	c.executeTotal.Inc()
}

// IncExecuteError increments the statement execution error counter.
func (c *Collector) IncExecuteError() {
	c.executeError.Inc()
}

// ObserveExecuteDuration records a statement execution duration.
func (c *Collector) ObserveExecuteDuration(seconds float64) {
	c.executeDuration.Update(seconds)
}

// IncBatchFlushTotal increments the flush counter for the given kind.
func (c *Collector) IncBatchFlushTotal(kind types.BatchKind) {
	if m, ok := c.flushTotal[kind]; ok {
		m.Inc()
	}
}

// IncBatchFlushError increments the flush error counter for the given kind.
func (c *Collector) IncBatchFlushError(kind types.BatchKind) {
	if m, ok := c.flushError[kind]; ok {
		m.Inc()
	}
}

// ObserveBatchFlushDuration records a flush duration for the given kind.
func (c *Collector) ObserveBatchFlushDuration(kind types.BatchKind, seconds float64) {
	if m, ok := c.flushDuration[kind]; ok {
		m.Update(seconds)
	}
}

// ObserveBatchSize records the number of statements in a flushed batch.
func (c *Collector) ObserveBatchSize(n int) {
	c.batchSize.Update(float64(n))
}

// IncRetryTotal increments the retry counter.
func (c *Collector) IncRetryTotal() {
	c.retryTotal.Inc()
}

// IncConnectionRebuildTotal increments the connection rebuild counter.
func (c *Collector) IncConnectionRebuildTotal() {
	c.rebuildTotal.Inc()
}
