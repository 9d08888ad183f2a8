// Package types contains the shared vocabulary of the cequel library:
// statements, consistency levels, batch kinds, the error taxonomy, and the
// Logger and MetricsCollector interfaces.
//
// It has no dependencies on other cequel packages and may be imported freely.
package types
