// Package testutil provides shared test infrastructure: in-process mocks for
// the driver contract (MockConnector, MockConn, MockRows) and a testcontainers
// helper that starts a disposable single-node Cassandra cluster for
// integration tests.
package testutil
