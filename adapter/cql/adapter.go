package cql

import (
	"context"

	"github.com/Galeria-Kaufhof/cequel/policy"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// Type aliases for convenience - re-export from types package.
type (
	BatchKind   = types.BatchKind
	Consistency = types.Consistency
	Statement   = types.Statement
)

// Re-export batch kind constants for convenience.
const (
	LoggedBatch   = types.LoggedBatch
	UnloggedBatch = types.UnloggedBatch
	CounterBatch  = types.CounterBatch
)

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Options carries the fully resolved connect-time configuration.
//
// The keyspace handle builds one Options value from its ConnectionConfig and
// the policy builder each time a connection is (re)built, and hands it to the
// Connector. Nullable fields use pointers so that "explicitly zero" remains
// distinguishable from "unset".
type Options struct {
	// Hosts are the cluster contact points.
	Hosts []string

	// Port is the native-protocol port. Zero means the driver default.
	Port int

	// Keyspace is the target keyspace name.
	Keyspace string

	// Username and Password enable password authentication when non-empty.
	Username string
	Password string

	// SSL enables TLS. The certificate fields below are only consulted when
	// SSL is true.
	SSL        bool
	ServerCert string
	ClientCert string
	PrivateKey string
	Passphrase string

	// Datacenter is the local datacenter hint, nil when unset.
	Datacenter *string

	// ConnectionsPerRemoteNode is the per-node connection pool size,
	// nil when unset.
	ConnectionsPerRemoteNode *int

	// Policy is the composed load-balancing descriptor, nil for the cluster
	// default.
	Policy policy.Descriptor

	// Consistency is the session default consistency level, nil for the
	// driver default.
	Consistency *types.Consistency

	// Driver holds options not recognized by the core, passed through
	// opaquely to the underlying client builder. Connectors interpret the
	// keys they know and ignore the rest.
	Driver map[string]any
}

// Connector builds live connections from resolved options.
//
// Both real driver adapters (v1, v2) and test fakes implement this contract.
// The keyspace handle calls Connect lazily on first use and again after each
// invalidation.
type Connector interface {
	// Connect establishes a connection to the cluster.
	//
	// Connection-level failures must be reported as *types.ConnectionError.
	//
	// Parameters:
	//   - ctx: Context for the connection attempt
	//   - opts: Fully resolved connect-time options
	//
	// Returns:
	//   - Conn: A live connection handle
	//   - error: Connection failure
	Connect(ctx context.Context, opts Options) (Conn, error)
}

// Conn is a live connection to the cluster.
//
// A Conn is shared by all callers of the keyspace handle that owns it and
// must be safe for concurrent use. Implementations translate their driver's
// connection-loss conditions into *types.ConnectionError so the executor can
// distinguish them from query-semantic errors.
type Conn interface {
	// Execute sends a single statement at the given consistency level.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - stmt: The statement to execute
	//   - cons: Resolved consistency level, nil for the session default
	//
	// Returns:
	//   - error: nil on success; *types.ConnectionError on transport failure;
	//     the driver error unchanged on query-semantic failure
	Execute(ctx context.Context, stmt types.Statement, cons *types.Consistency) error

	// Query sends a single read statement and returns the row iterator.
	//
	// A failure on the initial round trip must be reported here, with the
	// taxonomy of Execute, even when the underlying driver only surfaces it
	// through the iterator — callers rely on it to trigger recovery.
	// Failures during later page fetches are reported by Rows.Close, with
	// connection loss translated into *types.ConnectionError there as well.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - stmt: The statement to execute
	//   - cons: Resolved consistency level, nil for the session default
	//
	// Returns:
	//   - Rows: Driver-level row iterator
	//   - error: Initial round-trip failure, same taxonomy as Execute
	Query(ctx context.Context, stmt types.Statement, cons *types.Consistency) (Rows, error)

	// ExecuteBatch sends all statements of the spec as one atomic wire
	// message of the spec's kind.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - spec: Batch kind plus ordered statements
	//   - cons: Batch-wide consistency level, nil for the session default
	//
	// Returns:
	//   - error: Same taxonomy as Execute
	ExecuteBatch(ctx context.Context, spec types.BatchSpec, cons *types.Consistency) error

	// KeyspaceExists checks whether the named keyspace is known to the
	// cluster.
	//
	// "Keyspace not found" is a normal false result, never an error; only
	// genuine transport failures are returned.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - keyspace: The keyspace name to look up
	//
	// Returns:
	//   - bool: true if the keyspace exists
	//   - error: *types.ConnectionError on transport failure
	KeyspaceExists(ctx context.Context, keyspace string) (bool, error)

	// Close terminates the connection.
	Close()
}

// Rows is a driver-level row iterator returned by Conn.Query.
type Rows interface {
	// Scan reads the next row into dest, returning false when exhausted.
	Scan(dest ...any) bool

	// MapScan reads the next row into the map, returning false when exhausted.
	MapScan(m map[string]any) bool

	// SliceMap reads all remaining rows into a slice of maps.
	SliceMap() ([]map[string]any, error)

	// PageState returns the pagination token for resuming iteration.
	PageState() []byte

	// NumRows returns the number of rows in the current page.
	NumRows() int

	// Close closes the iterator and returns any error from iteration.
	Close() error
}
