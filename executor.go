package cequel

import (
	"context"
	"time"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// withConn runs op against the current connection, retrying exactly once
// after a connection-level failure.
//
// On the first *types.ConnectionError, the failing connection is invalidated,
// a replacement is built, and op runs once more; a failure on the retry
// propagates unchanged. Query-semantic errors are never retried: the cluster
// received and rejected the statement, and resending cannot change that.
//
// op receives the generation of the connection it runs against, for callers
// that hand out objects outliving the call (row iterators) and need to
// invalidate that exact connection later.
func (k *Keyspace) withConn(ctx context.Context, op func(conn cql.Conn, gen uint64) error) error {
	conn, gen, err := k.current(ctx)
	if err != nil {
		return err
	}

	err = op(conn, gen)
	if err == nil || !types.IsConnectionError(err) {
		return err
	}

	k.invalidate(gen)
	k.metrics.IncRetryTotal()
	k.logger.Warn("retrying after connection failure",
		"keyspace", k.cfg.keyspace,
		"error", err,
	)

	conn, gen, err = k.current(ctx)
	if err != nil {
		return err
	}

	return op(conn, gen)
}

// resolveConsistency picks the consistency level for a single statement: the
// statement's own override when set, otherwise nil so the session default
// applies.
func resolveConsistency(stmt types.Statement) *types.Consistency {
	if cons, ok := stmt.Consistency(); ok {
		return &cons
	}

	return nil
}

// Execute runs a single statement outside any batch.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - stmt: The statement to execute
//
// Returns:
//   - error: nil on success; the driver error on query-semantic failure;
//     *types.ConnectionError when recovery was exhausted
func (k *Keyspace) Execute(ctx context.Context, stmt types.Statement) error {
	k.metrics.IncExecuteTotal()
	start := time.Now()

	err := k.withConn(ctx, func(conn cql.Conn, _ uint64) error {
		return conn.Execute(ctx, stmt, resolveConsistency(stmt))
	})

	k.metrics.ObserveExecuteDuration(time.Since(start).Seconds())
	if err != nil {
		k.metrics.IncExecuteError()
	}

	return err
}

// trackedRows ties a row iterator back to the connection that produced it.
// A connection-level failure reported at Close invalidates that connection,
// so the next operation rebuilds instead of reusing a dead handle.
type trackedRows struct {
	cql.Rows

	ks  *Keyspace
	gen uint64
}

// Close closes the iterator and tears down the producing connection when
// iteration ended in connection loss.
func (r *trackedRows) Close() error {
	err := r.Rows.Close()
	if err != nil && types.IsConnectionError(err) {
		r.ks.invalidate(r.gen)
	}

	return err
}

// Query runs a single read statement and returns the row iterator.
//
// A connection failure on the initial round trip is retried exactly once,
// like Execute. Failures during later page fetches surface from the
// iterator's Close; those invalidate the cached connection so the next
// operation rebuilds, but the read itself is not resent.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - stmt: The statement to execute
//
// Returns:
//   - cql.Rows: Row iterator; close it when done
//   - error: Same taxonomy as Execute
func (k *Keyspace) Query(ctx context.Context, stmt types.Statement) (cql.Rows, error) {
	k.metrics.IncExecuteTotal()
	start := time.Now()

	var rows cql.Rows

	err := k.withConn(ctx, func(conn cql.Conn, gen uint64) error {
		r, opErr := conn.Query(ctx, stmt, resolveConsistency(stmt))
		if opErr != nil {
			return opErr
		}
		rows = &trackedRows{Rows: r, ks: k, gen: gen}

		return nil
	})

	k.metrics.ObserveExecuteDuration(time.Since(start).Seconds())
	if err != nil {
		k.metrics.IncExecuteError()

		return nil, err
	}

	return rows, nil
}

// executeBatch sends one resolved batch flush through the recovery path.
func (k *Keyspace) executeBatch(ctx context.Context, spec types.BatchSpec, cons *types.Consistency) error {
	k.metrics.IncBatchFlushTotal(spec.Kind)
	k.metrics.ObserveBatchSize(len(spec.Statements))
	start := time.Now()

	err := k.withConn(ctx, func(conn cql.Conn, _ uint64) error {
		return conn.ExecuteBatch(ctx, spec, cons)
	})

	k.metrics.ObserveBatchFlushDuration(spec.Kind, time.Since(start).Seconds())
	if err != nil {
		k.metrics.IncBatchFlushError(spec.Kind)
	}

	return err
}
