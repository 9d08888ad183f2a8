// Package cql is the boundary between the cequel core and the wire-protocol
// driver.
//
// The core never imports a driver directly. It speaks to a Connector that
// turns resolved Options into a Conn, and to the Conn's four capabilities:
// execute a statement, run a read, flush a batch, and check keyspace
// existence. Adapters for concrete drivers live in the v1 (gocql/gocql) and
// v2 (apache/cassandra-gocql-driver) subpackages; test fakes implement the
// same interfaces in test/testutil.
package cql
