package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tccassandra "github.com/testcontainers/testcontainers-go/modules/cassandra"
)

// CassandraImage is the container image used for integration tests.
const CassandraImage = "cassandra:4.1"

// CassandraContainer wraps a disposable single-node cluster for integration
// tests.
type CassandraContainer struct {
	Container *tccassandra.CassandraContainer

	// Host and Port point at the mapped native-protocol endpoint.
	Host string
	Port int
}

// StartCassandra starts a single-node Cassandra container and registers its
// teardown with the test.
//
// The helper skips the test in short mode, so unit runs never pay the
// container startup cost.
//
// Parameters:
//   - t: The test to bind the container lifetime to
//
// Returns:
//   - *CassandraContainer: The running container and its endpoint
func StartCassandra(t *testing.T) *CassandraContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tccassandra.Run(ctx, CassandraImage)
	if err != nil {
		t.Fatalf("failed to start cassandra container: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to resolve container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "9042/tcp")
	if err != nil {
		t.Fatalf("failed to resolve mapped port: %v", err)
	}

	return &CassandraContainer{
		Container: container,
		Host:      host,
		Port:      port.Int(),
	}
}

// TempKeyspaceName returns a unique keyspace name safe for use as a CQL
// identifier. Each test gets its own keyspace so runs never interfere.
func TempKeyspaceName() string {
	return "cequel_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// KeyspaceCQL returns a CREATE KEYSPACE statement suitable for a single-node
// test cluster.
func KeyspaceCQL(name string) string {
	return fmt.Sprintf(
		`CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}`,
		name,
	)
}
