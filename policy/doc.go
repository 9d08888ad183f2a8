// Package policy composes load-balancing policy descriptors for connection
// build time.
//
// Descriptors are driver-agnostic values; the adapter for the underlying
// driver translates them into its native host-selection policies. The only
// composition rule lives in Build: an explicit policy wins, a datacenter hint
// yields token-aware-over-datacenter-aware routing, and absence of both
// leaves host selection to the cluster default.
package policy
