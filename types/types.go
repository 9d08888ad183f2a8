package types

import "errors"

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Consistency levels matching the wire protocol (and gocql).
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// String returns the CQL name of the consistency level.
func (c Consistency) String() string {
	switch c {
	case Any:
		return "ANY"
	case One:
		return "ONE"
	case Two:
		return "TWO"
	case Three:
		return "THREE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case EachQuorum:
		return "EACH_QUORUM"
	case Serial:
		return "SERIAL"
	case LocalSerial:
		return "LOCAL_SERIAL"
	case LocalOne:
		return "LOCAL_ONE"
	default:
		return "UNKNOWN"
	}
}

// BatchKind represents the kind of batch statement sent on the wire.
type BatchKind byte

// Batch kinds matching the wire protocol (and gocql).
//
// A logged batch is atomic across partitions and durability-tracked at higher
// overhead. An unlogged batch skips the batch log; it carries no atomicity
// guarantee across partitions and is typically used when all statements share
// a partition key. A counter batch groups counter updates, which cannot be
// mixed with regular mutations.
const (
	LoggedBatch   BatchKind = 0
	UnloggedBatch BatchKind = 1
	CounterBatch  BatchKind = 2
)

// String returns a human-readable name for the batch kind.
func (k BatchKind) String() string {
	switch k {
	case LoggedBatch:
		return "logged"
	case UnloggedBatch:
		return "unlogged"
	case CounterBatch:
		return "counter"
	default:
		return "unknown"
	}
}

// Statement is a single CQL operation with an optional per-statement
// consistency level override.
//
// A Statement is an immutable value: WithConsistency returns a copy, and
// accessors never expose internal state for mutation. Construct one with
// NewStatement and hand it to Keyspace.Execute, Keyspace.Query, or Batch.Add.
type Statement struct {
	query   string
	args    []any
	cons    Consistency
	hasCons bool
}

// NewStatement creates a Statement for the given CQL text and bound values.
//
// Parameters:
//   - query: CQL statement with ? placeholders
//   - args: Values to bind to placeholders
//
// Returns:
//   - Statement: An immutable statement value
func NewStatement(query string, args ...any) Statement {
	return Statement{query: query, args: append([]any(nil), args...)}
}

// WithConsistency returns a copy of the statement carrying an explicit
// consistency level override.
//
// Inside a batch, an override that differs from the batch-wide level is a
// configuration error detected at append time.
//
// Parameters:
//   - c: Consistency level for this statement only
//
// Returns:
//   - Statement: A new statement with the override set
func (s Statement) WithConsistency(c Consistency) Statement {
	s.cons = c
	s.hasCons = true

	return s
}

// Query returns the CQL text.
func (s Statement) Query() string {
	return s.query
}

// Args returns a copy of the bound values, so callers cannot mutate the
// statement through the returned slice.
func (s Statement) Args() []any {
	return append([]any(nil), s.args...)
}

// Consistency returns the per-statement consistency override, if one is set.
//
// Returns:
//   - Consistency: The override level (zero value when unset)
//   - bool: true if an override was set via WithConsistency
func (s Statement) Consistency() (Consistency, bool) {
	return s.cons, s.hasCons
}

// BatchSpec is the fully resolved form of one batch flush: the wire-level
// kind plus the ordered statements sent as a single message.
type BatchSpec struct {
	// Kind selects the wire-level batch marker (logged, unlogged, counter).
	Kind BatchKind

	// Statements are the buffered statements, in append order.
	Statements []Statement
}

// Sentinel errors for common failure scenarios.
var (
	// ErrConsistencyConflict indicates a statement-level consistency override
	// inside a batch that cannot be honored. Surfaced via *ConfigError.
	ErrConsistencyConflict = errors.New("cequel: statement consistency conflicts with batch consistency")

	// ErrKeyspaceClosed indicates an operation was attempted on a closed keyspace handle.
	ErrKeyspaceClosed = errors.New("cequel: keyspace is closed")

	// ErrBatchClosed indicates an append, commit, or flush was attempted on a
	// batch that already reached a terminal state (flushed or aborted).
	ErrBatchClosed = errors.New("cequel: batch is closed")

	// ErrNilConnector indicates that a nil connector was provided.
	ErrNilConnector = errors.New("cequel: connector cannot be nil")

	// ErrNoHosts indicates that no contact point was configured.
	ErrNoHosts = errors.New("cequel: no hosts configured")
)

// ConfigError is raised synchronously, before any network I/O, when a batch
// contains conflicting consistency levels.
//
// It is never retried and always surfaces to the caller; the batch that
// produced it is aborted with zero statements sent.
type ConfigError struct {
	// Query is the CQL text of the offending statement.
	Query string

	// StatementConsistency is the override carried by the statement.
	StatementConsistency Consistency

	// BatchConsistency is the batch-wide level, valid only when
	// BatchConsistencySet is true.
	BatchConsistency    Consistency
	BatchConsistencySet bool
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.BatchConsistencySet {
		return "cequel: statement consistency " + e.StatementConsistency.String() +
			" conflicts with batch consistency " + e.BatchConsistency.String()
	}

	return "cequel: statement consistency " + e.StatementConsistency.String() +
		" cannot be honored inside a batch with no batch-wide consistency"
}

// Unwrap returns ErrConsistencyConflict for errors.Is compatibility.
func (e *ConfigError) Unwrap() error {
	return ErrConsistencyConflict
}

// ConnectionError is a transport-level failure indicating the cached
// connection handle is no longer usable.
//
// Driver adapters translate their connection-loss conditions into this type.
// The executor intercepts it for exactly one invalidate-and-retry cycle; a
// second consecutive occurrence propagates to the caller.
type ConnectionError struct {
	// Cause is the underlying driver error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return "cequel: connection failure: " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
//
// Query-semantic errors (bad syntax, unsupported consistency, etc.) are never
// ConnectionErrors and are never retried.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError

	return errors.As(err, &connErr)
}
