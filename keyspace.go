package cequel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// Keyspace is the shared handle through which all cluster operations run.
//
// A Keyspace owns at most one live connection at a time, built lazily on
// first use and rebuilt after a connection-level failure invalidates it. The
// handle is safe for concurrent use and intended to be shared process-wide;
// all goroutines executing through it see the same cached connection.
type Keyspace struct {
	cfg       *Config
	connector cql.Connector
	logger    types.Logger
	metrics   types.MetricsCollector

	// mu guards conn and gen. gen increments on every successful build, so a
	// stale invalidation (racing against a rebuild another goroutine already
	// performed) can be recognized and dropped.
	mu   sync.Mutex
	conn cql.Conn
	gen  uint64

	closed atomic.Bool
}

// New creates a keyspace handle bound to the given connector.
//
// No connection is established here; the first operation triggers the
// connect. Constructing a handle is therefore cheap and never performs I/O.
//
// Parameters:
//   - connector: Driver adapter building live connections
//   - opts: Configuration options
//
// Returns:
//   - *Keyspace: The keyspace handle
//   - error: types.ErrNilConnector when connector is nil
func New(connector cql.Connector, opts ...Option) (*Keyspace, error) {
	if connector == nil {
		return nil, types.ErrNilConnector
	}

	cfg := newConfig(opts...)

	return &Keyspace{
		cfg:       cfg,
		connector: connector,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
	}, nil
}

// Name returns the configured keyspace name.
func (k *Keyspace) Name() string {
	return k.cfg.keyspace
}

// Config returns the resolved configuration.
func (k *Keyspace) Config() *Config {
	return k.cfg
}

// current returns the cached connection, building one if none exists.
//
// The returned generation identifies the connection instance; callers pass it
// back to invalidate so that only a failure observed on the current
// connection triggers a teardown.
func (k *Keyspace) current(ctx context.Context) (cql.Conn, uint64, error) {
	if k.closed.Load() {
		return nil, 0, types.ErrKeyspaceClosed
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.conn != nil {
		return k.conn, k.gen, nil
	}

	conn, err := k.connector.Connect(ctx, k.cfg.cqlOptions())
	if err != nil {
		return nil, 0, err
	}

	k.conn = conn
	k.gen++
	k.logger.Debug("connection established",
		"keyspace", k.cfg.keyspace,
		"generation", k.gen,
	)

	return k.conn, k.gen, nil
}

// invalidate discards the cached connection identified by gen.
//
// When several goroutines observe a failure on the same connection, only the
// first teardown wins; the rest see a generation mismatch and return without
// touching the replacement another goroutine may already be using.
func (k *Keyspace) invalidate(gen uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.conn == nil || k.gen != gen {
		return
	}

	k.conn.Close()
	k.conn = nil
	k.metrics.IncConnectionRebuildTotal()
	k.logger.Warn("connection invalidated",
		"keyspace", k.cfg.keyspace,
		"generation", gen,
	)
}

// Exists checks whether the configured keyspace is defined on the cluster.
//
// An unknown keyspace is a normal false result, not an error; only transport
// failures are returned. The check runs over a dedicated probe connection
// with no keyspace bound, because binding an unknown keyspace would fail the
// session creation itself and make the question unanswerable.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - bool: true if the keyspace exists
//   - error: Transport failure
func (k *Keyspace) Exists(ctx context.Context) (bool, error) {
	if k.closed.Load() {
		return false, types.ErrKeyspaceClosed
	}

	opts := k.cfg.cqlOptions()
	opts.Keyspace = ""

	conn, err := k.connector.Connect(ctx, opts)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	return conn.KeyspaceExists(ctx, k.cfg.keyspace)
}

// Close releases the cached connection and marks the handle closed.
//
// Close is idempotent. Operations after Close fail with
// types.ErrKeyspaceClosed.
func (k *Keyspace) Close() {
	if !k.closed.CompareAndSwap(false, true) {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.conn != nil {
		k.conn.Close()
		k.conn = nil
	}
}
