// Package metrics provides internal metrics utilities for cequel.
package metrics

import "github.com/Galeria-Kaufhof/cequel/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Statement Execution
// ----------------------

// IncExecuteTotal discards the metric.
func (m *NopMetrics) IncExecuteTotal() {}

// IncExecuteError discards the metric.
func (m *NopMetrics) IncExecuteError() {}

// ObserveExecuteDuration discards the metric.
func (m *NopMetrics) ObserveExecuteDuration(_ float64) {}

// ----------------------
// Batch Flushes
// ----------------------

// IncBatchFlushTotal discards the metric.
func (m *NopMetrics) IncBatchFlushTotal(_ types.BatchKind) {}

// IncBatchFlushError discards the metric.
func (m *NopMetrics) IncBatchFlushError(_ types.BatchKind) {}

// ObserveBatchFlushDuration discards the metric.
func (m *NopMetrics) ObserveBatchFlushDuration(_ types.BatchKind, _ float64) {}

// ObserveBatchSize discards the metric.
func (m *NopMetrics) ObserveBatchSize(_ int) {}

// ----------------------
// Connection Recovery
// ----------------------

// IncRetryTotal discards the metric.
func (m *NopMetrics) IncRetryTotal() {}

// IncConnectionRebuildTotal discards the metric.
func (m *NopMetrics) IncConnectionRebuildTotal() {}
