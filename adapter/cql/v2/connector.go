package v2

import (
	"context"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// Connector builds gocql v2 sessions from resolved connect-time options.
//
// A Connector is stateless and safe for concurrent use; every Connect call
// builds a fresh cluster configuration and session.
type Connector struct {
	configure []func(*gocql.ClusterConfig)
}

// Compile-time assertion that Connector implements cql.Connector.
var _ cql.Connector = (*Connector)(nil)

// Option configures a Connector.
type Option func(*Connector)

// WithClusterConfigure registers a hook that runs against the assembled
// gocql.ClusterConfig before the session is created.
//
// Hooks run in registration order, after all portable options have been
// applied.
//
// Parameters:
//   - fn: Hook receiving the cluster configuration
//
// Returns:
//   - Option: Configuration option
func WithClusterConfigure(fn func(*gocql.ClusterConfig)) Option {
	return func(c *Connector) {
		c.configure = append(c.configure, fn)
	}
}

// NewConnector creates a gocql v2 connector.
//
// Parameters:
//   - opts: Optional connector options
//
// Returns:
//   - *Connector: A connector implementing cql.Connector
func NewConnector(opts ...Option) *Connector {
	c := &Connector{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Connect builds a gocql v2 session from the resolved options.
func (c *Connector) Connect(_ context.Context, opts cql.Options) (cql.Conn, error) {
	if len(opts.Hosts) == 0 {
		return nil, types.ErrNoHosts
	}

	cluster := buildCluster(opts)
	for _, fn := range c.configure {
		fn(cluster)
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, &types.ConnectionError{Cause: err}
	}

	return &conn{session: session}, nil
}

// conn wraps a gocql v2 session.
type conn struct {
	session *gocql.Session
}

// Compile-time assertion that conn implements cql.Conn.
var _ cql.Conn = (*conn)(nil)

// Execute sends a single statement using the v2 driver's context-native API.
func (c *conn) Execute(ctx context.Context, stmt types.Statement, cons *types.Consistency) error {
	query := c.session.Query(stmt.Query(), stmt.Args()...)
	if cons != nil {
		query = query.Consistency(gocql.Consistency(*cons))
	}

	return translateErr(query.ExecContext(ctx))
}

// Query sends a single read statement and returns the row iterator.
//
// The driver reports a failed round trip only through Iter.Close, so a
// zero-row first page is closed immediately to tell an empty result from a
// dead connection; the failure then surfaces here, where the caller's
// recovery path can see it.
func (c *conn) Query(ctx context.Context, stmt types.Statement, cons *types.Consistency) (cql.Rows, error) {
	query := c.session.Query(stmt.Query(), stmt.Args()...)
	if cons != nil {
		query = query.Consistency(gocql.Consistency(*cons))
	}

	iter := query.IterContext(ctx)
	if iter.NumRows() == 0 {
		if err := iter.Close(); err != nil {
			return nil, translateErr(err)
		}

		return emptyRows{}, nil
	}

	return &rows{iter: iter}, nil
}

// ExecuteBatch sends the spec's statements as one wire message.
func (c *conn) ExecuteBatch(ctx context.Context, spec types.BatchSpec, cons *types.Consistency) error {
	batch := c.session.Batch(gocql.BatchType(spec.Kind))
	for _, stmt := range spec.Statements {
		batch = batch.Query(stmt.Query(), stmt.Args()...)
	}
	if cons != nil {
		batch = batch.Consistency(gocql.Consistency(*cons))
	}

	return translateErr(batch.ExecContext(ctx))
}

// KeyspaceExists checks whether the named keyspace is known to the cluster.
func (c *conn) KeyspaceExists(ctx context.Context, keyspace string) (bool, error) {
	var name string

	err := c.session.Query(
		`SELECT keyspace_name FROM system_schema.keyspaces WHERE keyspace_name = ?`,
		keyspace,
	).ScanContext(ctx, &name)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}

	return false, translateErr(err)
}

// Close terminates the session.
func (c *conn) Close() {
	c.session.Close()
}

// rows wraps a gocql v2 iterator.
type rows struct {
	iter *gocql.Iter
}

// Scan reads the next row.
func (r *rows) Scan(dest ...any) bool {
	return r.iter.Scan(dest...)
}

// MapScan reads the next row into a map.
func (r *rows) MapScan(m map[string]any) bool {
	return r.iter.MapScan(m)
}

// SliceMap reads all remaining rows into a slice of maps.
func (r *rows) SliceMap() ([]map[string]any, error) {
	return r.iter.SliceMap()
}

// PageState returns the pagination token.
func (r *rows) PageState() []byte {
	return r.iter.PageState()
}

// NumRows returns the number of rows in the current page.
func (r *rows) NumRows() int {
	return r.iter.NumRows()
}

// Close closes the iterator.
func (r *rows) Close() error {
	return translateErr(r.iter.Close())
}
