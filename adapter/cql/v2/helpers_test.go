package v2

import (
	"errors"
	"testing"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/stretchr/testify/require"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/policy"
	"github.com/Galeria-Kaufhof/cequel/types"
)

func TestBuildClusterMirrorsV1Surface(t *testing.T) {
	numConns := 2
	cons := types.Quorum

	cluster := buildCluster(cql.Options{
		Hosts:                    []string{"10.0.0.1"},
		Port:                     9043,
		Keyspace:                 "myapp",
		Username:                 "cassandra",
		Password:                 "secret",
		SSL:                      true,
		ServerCert:               "/certs/ca.pem",
		ConnectionsPerRemoteNode: &numConns,
		Consistency:              &cons,
		Policy:                   policy.Build("dc1", nil),
	})

	require.Equal(t, 9043, cluster.Port)
	require.Equal(t, "myapp", cluster.Keyspace)
	require.Equal(t, 2, cluster.NumConns)
	require.Equal(t, gocql.Quorum, cluster.Consistency)
	require.NotNil(t, cluster.SslOpts)
	require.Equal(t, "/certs/ca.pem", cluster.SslOpts.CaPath)
	require.NotNil(t, cluster.PoolConfig.HostSelectionPolicy)
}

func TestTranslateErrClassification(t *testing.T) {
	require.True(t, types.IsConnectionError(translateErr(gocql.ErrNoConnections)))

	semantic := errors.New("unconfigured table posts")
	require.Same(t, semantic, translateErr(semantic))
}

func TestConnectRejectsEmptyHosts(t *testing.T) {
	_, err := NewConnector().Connect(t.Context(), cql.Options{})
	require.ErrorIs(t, err, types.ErrNoHosts)
}
