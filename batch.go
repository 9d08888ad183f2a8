package cequel

import (
	"context"

	"github.com/Galeria-Kaufhof/cequel/types"
)

// batchState tracks the batch lifecycle. A batch starts open and ends in
// exactly one terminal state.
type batchState int

const (
	batchOpen batchState = iota
	batchFlushed
	batchAborted
)

// Batch buffers statements and sends them to the cluster as atomic wire-level
// batch messages.
//
// A Batch is a short-lived, single-goroutine object: create it, append
// statements, then either Commit or Discard. Appending past the auto-apply
// threshold flushes the buffered chunk immediately and keeps the batch open
// for more statements, so at any moment at most threshold-1 statements are
// buffered in memory.
//
// Once a Batch reaches a terminal state, every further operation fails with
// types.ErrBatchClosed.
type Batch struct {
	ks        *Keyspace
	kind      types.BatchKind
	cons      *types.Consistency
	threshold int

	buf   []types.Statement
	state batchState
}

// BatchOption configures a batch at creation time.
type BatchOption func(*Batch)

// Unlogged makes the batch skip the Cassandra batch log.
//
// Unlogged batches carry no atomicity guarantee across partitions and are
// typically used when all statements target the same partition.
func Unlogged() BatchOption {
	return func(b *Batch) {
		b.kind = types.UnloggedBatch
	}
}

// Counter makes the batch a counter batch. Counter updates cannot be mixed
// with regular mutations on the wire.
func Counter() BatchOption {
	return func(b *Batch) {
		b.kind = types.CounterBatch
	}
}

// WithBatchConsistency sets the consistency level the whole batch is sent at.
//
// Statements appended with a matching override are accepted; a differing
// override is a configuration error detected at append time.
//
// Parameters:
//   - cons: Batch-wide consistency level
//
// Returns:
//   - BatchOption: Batch option
func WithBatchConsistency(cons types.Consistency) BatchOption {
	return func(b *Batch) {
		b.cons = &cons
	}
}

// WithAutoApply flushes the buffer every n appended statements instead of
// holding everything until Commit.
//
// With M statements appended and threshold K, the batch performs M/K
// intermediate flushes and Commit sends the remaining M mod K. Values below
// one disable the threshold.
//
// Parameters:
//   - n: Statements per intermediate flush
//
// Returns:
//   - BatchOption: Batch option
func WithAutoApply(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.threshold = n
		}
	}
}

// NewBatch creates an open batch bound to this keyspace handle.
//
// The batch defaults to logged with no batch-wide consistency override and no
// auto-apply threshold.
//
// Parameters:
//   - opts: Batch options
//
// Returns:
//   - *Batch: An open batch
func (k *Keyspace) NewBatch(opts ...BatchOption) *Batch {
	b := &Batch{ks: k, kind: types.LoggedBatch}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Kind returns the wire-level batch kind.
func (b *Batch) Kind() types.BatchKind {
	return b.kind
}

// Len returns the number of statements currently buffered.
func (b *Batch) Len() int {
	return len(b.buf)
}

// Add appends a statement to the batch.
//
// The statement's consistency override, if any, is validated before anything
// is buffered: a batch is sent as a single message at a single consistency
// level, so an override can only be honored when it equals the batch-wide
// level. A conflict aborts the batch with zero statements sent and returns a
// *types.ConfigError; no I/O happens on that path.
//
// When an auto-apply threshold is set and the buffer reaches it, the chunk is
// flushed immediately and the batch stays open.
//
// Parameters:
//   - ctx: Context used for a threshold-triggered flush
//   - stmt: The statement to append
//
// Returns:
//   - error: *types.ConfigError on consistency conflict; types.ErrBatchClosed
//     after a terminal state; a flush error when the threshold fired
func (b *Batch) Add(ctx context.Context, stmt types.Statement) error {
	if b.state != batchOpen {
		return types.ErrBatchClosed
	}

	if cons, ok := stmt.Consistency(); ok {
		if b.cons == nil || *b.cons != cons {
			b.abort()

			cfgErr := &types.ConfigError{
				Query:                stmt.Query(),
				StatementConsistency: cons,
			}
			if b.cons != nil {
				cfgErr.BatchConsistency = *b.cons
				cfgErr.BatchConsistencySet = true
			}

			return cfgErr
		}
	}

	b.buf = append(b.buf, stmt)

	if b.threshold > 0 && len(b.buf) >= b.threshold {
		if err := b.flush(ctx); err != nil {
			b.abort()

			return err
		}
	}

	return nil
}

// Commit flushes the remaining buffered statements and closes the batch.
//
// A batch with nothing buffered commits without any round trip; exiting an
// empty batch scope is free. On flush failure the batch is aborted: the
// failed chunk is discarded rather than retried, keeping delivery at most
// once per chunk.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - error: types.ErrBatchClosed after a terminal state; the flush error
func (b *Batch) Commit(ctx context.Context) error {
	if b.state != batchOpen {
		return types.ErrBatchClosed
	}

	if len(b.buf) == 0 {
		b.state = batchFlushed

		return nil
	}

	if err := b.flush(ctx); err != nil {
		b.abort()

		return err
	}

	b.state = batchFlushed

	return nil
}

// Discard drops all buffered statements and closes the batch without sending
// anything. Discarding an already-terminal batch is a no-op.
func (b *Batch) Discard() {
	if b.state != batchOpen {
		return
	}

	b.abort()
}

// flush sends the buffered chunk as one wire message. The buffer is detached
// before the send, so a failed chunk is never resent.
func (b *Batch) flush(ctx context.Context) error {
	stmts := b.buf
	b.buf = nil

	return b.ks.executeBatch(ctx, types.BatchSpec{
		Kind:       b.kind,
		Statements: stmts,
	}, b.cons)
}

func (b *Batch) abort() {
	b.buf = nil
	b.state = batchAborted
}

// Batched runs fn inside a batch scope.
//
// Statements the callback appends are buffered (flushing at the auto-apply
// threshold, if set) and committed when fn returns nil. When fn returns an
// error or panics, the buffered statements are discarded and nothing further
// is sent; a panic is re-raised after the discard.
//
// Parameters:
//   - ctx: Context for flushes and the final commit
//   - fn: Callback receiving the open batch
//   - opts: Batch options
//
// Returns:
//   - error: fn's error, or the commit error
func (k *Keyspace) Batched(ctx context.Context, fn func(b *Batch) error, opts ...BatchOption) (err error) {
	b := k.NewBatch(opts...)

	defer func() {
		if r := recover(); r != nil {
			b.Discard()
			panic(r)
		}
		if err != nil {
			b.Discard()

			return
		}
		err = b.Commit(ctx)
	}()

	err = fn(b)

	return err
}
