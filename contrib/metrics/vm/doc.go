// Package vm provides a VictoriaMetrics-backed implementation of
// types.MetricsCollector.
//
// All counters and histograms are created when the collector is built, one
// series per batch kind, so the recording methods never allocate or
// synchronize on metric lookup. The collected metrics are exposed in
// Prometheus text format through Collector.Handler:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	ks, _ := cequel.New(connector, cequel.WithMetrics(collector))
//	http.HandleFunc("/metrics", collector.Handler)
package vm
