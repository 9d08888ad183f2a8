// Package cequel provides a batching and execution layer for Apache
// Cassandra.
//
// The package wraps a CQL driver behind a small connector contract and adds
// the pieces applications end up rebuilding around every driver: a shared
// keyspace handle with lazy connect and automatic recovery from connection
// loss, atomic statement batching with scoped flush semantics, and
// append-time validation of consistency configuration.
//
// # Keyspace handle
//
// A Keyspace is the process-wide entry point. It is built with a driver
// connector (adapter/cql/v1 or adapter/cql/v2) and functional options, and
// connects lazily on first use:
//
//	ks, err := cequel.New(v1.NewConnector(),
//	    cequel.WithHosts("10.0.0.1", "10.0.0.2"),
//	    cequel.WithKeyspace("myapp"),
//	    cequel.WithDatacenter("dc1"),
//	    cequel.WithDefaultConsistency(types.LocalQuorum),
//	)
//
// When a statement fails with a connection-level error, the handle discards
// the cached connection, builds a replacement, and retries the statement
// exactly once. Query-semantic errors are returned as-is and never retried.
//
// # Batching
//
// Batched runs a callback inside a batch scope. Statements appended through
// the batch are buffered and sent as one atomic wire message when the
// callback returns successfully; on error or panic the buffer is discarded
// and nothing is sent:
//
//	err := ks.Batched(ctx, func(b *cequel.Batch) error {
//	    for _, post := range posts {
//	        stmt := types.NewStatement(`INSERT INTO posts (id, title) VALUES (?, ?)`, post.ID, post.Title)
//	        if err := b.Add(ctx, stmt); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	}, cequel.WithAutoApply(100))
//
// An empty batch scope costs nothing: no connection, no round trip.
package cequel
