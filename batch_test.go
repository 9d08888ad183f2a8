package cequel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/test/testutil"
	"github.com/Galeria-Kaufhof/cequel/types"
)

func newTestKeyspace(t *testing.T, opts ...Option) (*Keyspace, *testutil.MockConnector) {
	t.Helper()

	connector := &testutil.MockConnector{}

	ks, err := New(connector, append([]Option{
		WithHosts("127.0.0.1"),
		WithKeyspace("myapp"),
	}, opts...)...)
	require.NoError(t, err)

	return ks, connector
}

func batchCalls(t *testing.T, connector *testutil.MockConnector) []testutil.BatchCall {
	t.Helper()

	var calls []testutil.BatchCall
	for _, conn := range connector.Conns() {
		calls = append(calls, conn.BatchCalls()...)
	}

	return calls
}

func TestBatchedSingleFlushPerScope(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	err := ks.Batched(ctx, func(b *Batch) error {
		for i := 0; i < 5; i++ {
			if err := b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (?)`, i)); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	calls := batchCalls(t, connector)
	require.Len(t, calls, 1)
	require.Equal(t, types.LoggedBatch, calls[0].Spec.Kind)
	require.Len(t, calls[0].Spec.Statements, 5)
}

func TestBatchedEmptyScopeNoRoundTrips(t *testing.T) {
	ks, connector := newTestKeyspace(t)

	err := ks.Batched(context.Background(), func(_ *Batch) error {
		return nil
	})
	require.NoError(t, err)

	// Nothing buffered means not even a connection is built.
	require.Zero(t, connector.ConnectCalls())
}

func TestBatchAutoApplyChunking(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch(WithAutoApply(3))
	for i := 0; i < 7; i++ {
		require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (?)`, i)))
	}

	// Two threshold flushes happened during the appends; one statement
	// remains buffered.
	require.Equal(t, 1, b.Len())
	require.NoError(t, b.Commit(ctx))

	calls := batchCalls(t, connector)
	require.Len(t, calls, 3)
	require.Len(t, calls[0].Spec.Statements, 3)
	require.Len(t, calls[1].Spec.Statements, 3)
	require.Len(t, calls[2].Spec.Statements, 1)
}

func TestBatchAutoApplyExactMultiple(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch(WithAutoApply(2))
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (?)`, i)))
	}

	// The buffer is empty at commit time, so commit is free.
	require.Zero(t, b.Len())
	require.NoError(t, b.Commit(ctx))
	require.Len(t, batchCalls(t, connector), 2)
}

func TestBatchUnloggedKind(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch(Unlogged())
	require.NoError(t, b.Add(ctx, types.NewStatement(`UPDATE posts SET title = ? WHERE id = ?`, "t", 1)))
	require.NoError(t, b.Commit(ctx))

	calls := batchCalls(t, connector)
	require.Len(t, calls, 1)
	require.Equal(t, types.UnloggedBatch, calls[0].Spec.Kind)
}

func TestBatchCounterKind(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch(Counter())
	require.NoError(t, b.Add(ctx, types.NewStatement(`UPDATE counters SET views = views + 1 WHERE id = ?`, 1)))
	require.NoError(t, b.Commit(ctx))

	calls := batchCalls(t, connector)
	require.Len(t, calls, 1)
	require.Equal(t, types.CounterBatch, calls[0].Spec.Kind)
}

func TestBatchConsistencyConflict(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch(WithBatchConsistency(types.Quorum))
	require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (1)`)))

	err := b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (2)`).WithConsistency(types.One))
	require.ErrorIs(t, err, types.ErrConsistencyConflict)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, types.One, cfgErr.StatementConsistency)
	require.True(t, cfgErr.BatchConsistencySet)
	require.Equal(t, types.Quorum, cfgErr.BatchConsistency)

	// The conflict is detected before any I/O; the batch aborts with zero
	// statements sent.
	require.Zero(t, connector.ConnectCalls())
	require.ErrorIs(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (3)`)), types.ErrBatchClosed)
	require.ErrorIs(t, b.Commit(ctx), types.ErrBatchClosed)
}

func TestBatchConsistencyOverrideWithoutBatchLevel(t *testing.T) {
	ks, connector := newTestKeyspace(t)

	b := ks.NewBatch()
	err := b.Add(context.Background(), types.NewStatement(`INSERT INTO posts (id) VALUES (1)`).WithConsistency(types.All))
	require.ErrorIs(t, err, types.ErrConsistencyConflict)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.False(t, cfgErr.BatchConsistencySet)
	require.Zero(t, connector.ConnectCalls())
}

func TestBatchMatchingOverrideAccepted(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch(WithBatchConsistency(types.LocalQuorum))
	stmt := types.NewStatement(`INSERT INTO posts (id) VALUES (1)`).WithConsistency(types.LocalQuorum)
	require.NoError(t, b.Add(ctx, stmt))
	require.NoError(t, b.Commit(ctx))

	calls := batchCalls(t, connector)
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Cons)
	require.Equal(t, types.LocalQuorum, *calls[0].Cons)
}

func TestBatchedDiscardOnError(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()
	boom := errors.New("domain validation failed")

	err := ks.Batched(ctx, func(b *Batch) error {
		require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (1)`)))
		require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (2)`)))

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, connector.ConnectCalls())
}

func TestBatchedDiscardOnPanic(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()

	require.PanicsWithValue(t, "boom", func() {
		_ = ks.Batched(ctx, func(b *Batch) error {
			require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (1)`)))
			panic("boom")
		})
	})
	require.Zero(t, connector.ConnectCalls())
}

func TestBatchUseAfterCommit(t *testing.T) {
	ks, _ := newTestKeyspace(t)
	ctx := context.Background()

	b := ks.NewBatch()
	require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (1)`)))
	require.NoError(t, b.Commit(ctx))

	require.ErrorIs(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (2)`)), types.ErrBatchClosed)
	require.ErrorIs(t, b.Commit(ctx), types.ErrBatchClosed)

	// Discarding a terminal batch is a harmless no-op.
	b.Discard()
}

func TestBatchFlushErrorAborts(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()
	boom := errors.New("batch too large")

	conn := testutil.NewMockConn()
	conn.ExecuteBatchFunc = func(_ context.Context, _ types.BatchSpec, _ *types.Consistency) error {
		return boom
	}
	connector.ConnectFunc = func(_ context.Context, _ cql.Options) (cql.Conn, error) {
		return conn, nil
	}

	b := ks.NewBatch()
	require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (1)`)))
	require.ErrorIs(t, b.Commit(ctx), boom)

	// The failed chunk is discarded, not retried: exactly one attempt went
	// out and the batch is terminal.
	require.Len(t, conn.BatchCalls(), 1)
	require.ErrorIs(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (2)`)), types.ErrBatchClosed)
}

func TestBatchAutoApplyFlushErrorAborts(t *testing.T) {
	ks, connector := newTestKeyspace(t)
	ctx := context.Background()
	boom := errors.New("batch too large")

	conn := testutil.NewMockConn()
	conn.ExecuteBatchFunc = func(_ context.Context, _ types.BatchSpec, _ *types.Consistency) error {
		return boom
	}
	connector.ConnectFunc = func(_ context.Context, _ cql.Options) (cql.Conn, error) {
		return conn, nil
	}

	b := ks.NewBatch(WithAutoApply(2))
	require.NoError(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (1)`)))
	require.ErrorIs(t, b.Add(ctx, types.NewStatement(`INSERT INTO posts (id) VALUES (2)`)), boom)
	require.ErrorIs(t, b.Commit(ctx), types.ErrBatchClosed)
}
