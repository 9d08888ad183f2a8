package testutil

import (
	"context"
	"sync"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// MockConnector is a controllable cql.Connector for tests.
//
// By default every Connect returns a fresh MockConn. Set ConnectFunc to
// inject failures or hand out prepared connections.
type MockConnector struct {
	mu sync.Mutex

	// ConnectFunc overrides the default behavior when non-nil.
	ConnectFunc func(ctx context.Context, opts cql.Options) (cql.Conn, error)

	connectCalls int
	lastOptions  cql.Options
	conns        []*MockConn
}

// Compile-time assertion that MockConnector implements cql.Connector.
var _ cql.Connector = (*MockConnector)(nil)

// Connect records the call and delegates to ConnectFunc when set.
func (m *MockConnector) Connect(ctx context.Context, opts cql.Options) (cql.Conn, error) {
	m.mu.Lock()
	m.connectCalls++
	m.lastOptions = opts
	fn := m.ConnectFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, opts)
	}

	conn := NewMockConn()

	m.mu.Lock()
	m.conns = append(m.conns, conn)
	m.mu.Unlock()

	return conn, nil
}

// ConnectCalls returns how many times Connect was invoked.
func (m *MockConnector) ConnectCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.connectCalls
}

// LastOptions returns the options passed to the most recent Connect.
func (m *MockConnector) LastOptions() cql.Options {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastOptions
}

// Conns returns the connections handed out by the default Connect behavior,
// in creation order.
func (m *MockConnector) Conns() []*MockConn {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*MockConn(nil), m.conns...)
}

// ExecuteCall records one Execute or Query invocation on a MockConn.
type ExecuteCall struct {
	Stmt types.Statement
	Cons *types.Consistency
}

// BatchCall records one ExecuteBatch invocation on a MockConn.
type BatchCall struct {
	Spec types.BatchSpec
	Cons *types.Consistency
}

// MockConn is a controllable cql.Conn for tests.
//
// Each method records its call and delegates to the corresponding Func field
// when set; the zero behavior succeeds.
type MockConn struct {
	mu sync.Mutex

	ExecuteFunc        func(ctx context.Context, stmt types.Statement, cons *types.Consistency) error
	QueryFunc          func(ctx context.Context, stmt types.Statement, cons *types.Consistency) (cql.Rows, error)
	ExecuteBatchFunc   func(ctx context.Context, spec types.BatchSpec, cons *types.Consistency) error
	KeyspaceExistsFunc func(ctx context.Context, keyspace string) (bool, error)

	executeCalls []ExecuteCall
	queryCalls   []ExecuteCall
	batchCalls   []BatchCall
	closeCalls   int
}

// Compile-time assertion that MockConn implements cql.Conn.
var _ cql.Conn = (*MockConn)(nil)

// NewMockConn creates a MockConn whose zero behavior succeeds.
func NewMockConn() *MockConn {
	return &MockConn{}
}

// Execute records the call and delegates to ExecuteFunc when set.
func (m *MockConn) Execute(ctx context.Context, stmt types.Statement, cons *types.Consistency) error {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, ExecuteCall{Stmt: stmt, Cons: cons})
	fn := m.ExecuteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, stmt, cons)
	}

	return nil
}

// Query records the call and delegates to QueryFunc when set.
func (m *MockConn) Query(ctx context.Context, stmt types.Statement, cons *types.Consistency) (cql.Rows, error) {
	m.mu.Lock()
	m.queryCalls = append(m.queryCalls, ExecuteCall{Stmt: stmt, Cons: cons})
	fn := m.QueryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, stmt, cons)
	}

	return &MockRows{}, nil
}

// ExecuteBatch records the call and delegates to ExecuteBatchFunc when set.
func (m *MockConn) ExecuteBatch(ctx context.Context, spec types.BatchSpec, cons *types.Consistency) error {
	m.mu.Lock()
	m.batchCalls = append(m.batchCalls, BatchCall{Spec: spec, Cons: cons})
	fn := m.ExecuteBatchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, spec, cons)
	}

	return nil
}

// KeyspaceExists delegates to KeyspaceExistsFunc when set; the zero behavior
// reports the keyspace as existing.
func (m *MockConn) KeyspaceExists(ctx context.Context, keyspace string) (bool, error) {
	m.mu.Lock()
	fn := m.KeyspaceExistsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, keyspace)
	}

	return true, nil
}

// Close records the call.
func (m *MockConn) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeCalls++
}

// ExecuteCalls returns the recorded Execute invocations.
func (m *MockConn) ExecuteCalls() []ExecuteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]ExecuteCall(nil), m.executeCalls...)
}

// QueryCalls returns the recorded Query invocations.
func (m *MockConn) QueryCalls() []ExecuteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]ExecuteCall(nil), m.queryCalls...)
}

// BatchCalls returns the recorded ExecuteBatch invocations.
func (m *MockConn) BatchCalls() []BatchCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]BatchCall(nil), m.batchCalls...)
}

// CloseCalls returns how many times Close was invoked.
func (m *MockConn) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closeCalls
}

// MockRows is a canned cql.Rows backed by a slice of row maps.
type MockRows struct {
	// Rows are returned in order by MapScan and SliceMap.
	Rows []map[string]any

	// CloseErr is returned by Close.
	CloseErr error

	idx int
}

// Compile-time assertion that MockRows implements cql.Rows.
var _ cql.Rows = (*MockRows)(nil)

// Scan is not modeled for canned rows; it always reports exhaustion.
func (r *MockRows) Scan(_ ...any) bool {
	return false
}

// MapScan copies the next row into m, returning false when exhausted.
func (r *MockRows) MapScan(m map[string]any) bool {
	if r.idx >= len(r.Rows) {
		return false
	}
	for k, v := range r.Rows[r.idx] {
		m[k] = v
	}
	r.idx++

	return true
}

// SliceMap returns all remaining rows.
func (r *MockRows) SliceMap() ([]map[string]any, error) {
	rest := append([]map[string]any(nil), r.Rows[r.idx:]...)
	r.idx = len(r.Rows)

	return rest, nil
}

// PageState returns nil; canned rows are a single page.
func (r *MockRows) PageState() []byte {
	return nil
}

// NumRows returns the total number of canned rows.
func (r *MockRows) NumRows() int {
	return len(r.Rows)
}

// Close returns CloseErr.
func (r *MockRows) Close() error {
	return r.CloseErr
}
