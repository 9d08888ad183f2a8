package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatementImmutability(t *testing.T) {
	base := NewStatement(`SELECT * FROM posts WHERE id = ?`, 1)

	_, ok := base.Consistency()
	require.False(t, ok)

	override := base.WithConsistency(Quorum)
	cons, ok := override.Consistency()
	require.True(t, ok)
	require.Equal(t, Quorum, cons)

	// The original is untouched.
	_, ok = base.Consistency()
	require.False(t, ok)
	require.Equal(t, base.Query(), override.Query())
	require.Equal(t, base.Args(), override.Args())
}

func TestStatementArgsDetached(t *testing.T) {
	source := []any{1, "original"}
	stmt := NewStatement(`INSERT INTO posts (id, title) VALUES (?, ?)`, source...)

	// Mutating the caller's slice after construction must not reach the
	// statement.
	source[1] = "mutated"
	require.Equal(t, []any{1, "original"}, stmt.Args())

	// Nor can the statement be mutated through the accessor's return value.
	got := stmt.Args()
	got[0] = 99
	require.Equal(t, []any{1, "original"}, stmt.Args())
}

func TestConfigErrorTaxonomy(t *testing.T) {
	withBatch := &ConfigError{
		Query:                `INSERT INTO posts (id) VALUES (1)`,
		StatementConsistency: One,
		BatchConsistency:     Quorum,
		BatchConsistencySet:  true,
	}
	require.ErrorIs(t, withBatch, ErrConsistencyConflict)
	require.Contains(t, withBatch.Error(), "ONE")
	require.Contains(t, withBatch.Error(), "QUORUM")

	withoutBatch := &ConfigError{StatementConsistency: All}
	require.ErrorIs(t, withoutBatch, ErrConsistencyConflict)
	require.Contains(t, withoutBatch.Error(), "no batch-wide consistency")
}

func TestConnectionErrorTaxonomy(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ConnectionError{Cause: cause}

	require.ErrorIs(t, err, cause)
	require.True(t, IsConnectionError(err))
	require.True(t, IsConnectionError(errors.Join(errors.New("context"), err)))

	require.False(t, IsConnectionError(nil))
	require.False(t, IsConnectionError(errors.New("syntax error")))
	require.False(t, IsConnectionError(ErrConsistencyConflict))
}
