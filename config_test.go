package cequel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Galeria-Kaufhof/cequel/policy"
	"github.com/Galeria-Kaufhof/cequel/types"
)

func TestConfigDefaults(t *testing.T) {
	cfg := newConfig()

	require.NotNil(t, cfg.logger)
	require.NotNil(t, cfg.metrics)
	require.Empty(t, cfg.Hosts())
	require.Zero(t, cfg.Port())

	_, ok := cfg.Datacenter()
	require.False(t, ok)

	_, ok = cfg.ConnectionsPerRemoteNode()
	require.False(t, ok)

	_, ok = cfg.DefaultConsistency()
	require.False(t, ok)

	_, ok = cfg.TLS()
	require.False(t, ok)
}

func TestConfigNilLoggerAndMetricsKeepDefaults(t *testing.T) {
	cfg := newConfig(WithLogger(nil), WithMetrics(nil))

	require.NotNil(t, cfg.logger)
	require.NotNil(t, cfg.metrics)
}

func TestConfigTLSRoundTrip(t *testing.T) {
	cfg := newConfig(WithTLS(TLSConfig{
		ServerCert: "/certs/ca.pem",
		ClientCert: "/certs/client.pem",
		PrivateKey: "/certs/client.key",
		Passphrase: "sekrit",
	}))

	tls, ok := cfg.TLS()
	require.True(t, ok)
	require.Equal(t, "/certs/ca.pem", tls.ServerCert)
	require.Equal(t, "/certs/client.pem", tls.ClientCert)
	require.Equal(t, "/certs/client.key", tls.PrivateKey)
	require.Equal(t, "sekrit", tls.Passphrase)

	opts := cfg.cqlOptions()
	require.True(t, opts.SSL)
	require.Equal(t, "/certs/ca.pem", opts.ServerCert)
	require.Equal(t, "/certs/client.pem", opts.ClientCert)
	require.Equal(t, "/certs/client.key", opts.PrivateKey)
	require.Equal(t, "sekrit", opts.Passphrase)
}

func TestConfigTLSDisabledByDefault(t *testing.T) {
	opts := newConfig().cqlOptions()
	require.False(t, opts.SSL)
	require.Empty(t, opts.ServerCert)
}

func TestConfigUnsetVersusExplicitZero(t *testing.T) {
	// Unset stays unset on the wire options.
	opts := newConfig().cqlOptions()
	require.Nil(t, opts.Datacenter)
	require.Nil(t, opts.ConnectionsPerRemoteNode)

	// An explicit zero survives as a pointer to zero, distinguishable from
	// "not configured".
	cfg := newConfig(WithConnectionsPerRemoteNode(0), WithDatacenter(""))

	n, ok := cfg.ConnectionsPerRemoteNode()
	require.True(t, ok)
	require.Zero(t, n)

	dc, ok := cfg.Datacenter()
	require.True(t, ok)
	require.Empty(t, dc)

	opts = cfg.cqlOptions()
	require.NotNil(t, opts.ConnectionsPerRemoteNode)
	require.Zero(t, *opts.ConnectionsPerRemoteNode)
}

func TestConfigPolicyComposition(t *testing.T) {
	// A datacenter alone composes token-aware over DC-aware round-robin.
	opts := newConfig(WithDatacenter("dc1")).cqlOptions()
	ta, ok := opts.Policy.(policy.TokenAware)
	require.True(t, ok)
	dcrr, ok := ta.Fallback.(policy.DCAwareRoundRobin)
	require.True(t, ok)
	require.Equal(t, "dc1", dcrr.Datacenter)

	// An explicit policy wins over the datacenter-derived composition.
	explicit := policy.DCAwareRoundRobin{Datacenter: "dc2"}
	opts = newConfig(WithDatacenter("dc1"), WithLoadBalancingPolicy(explicit)).cqlOptions()
	require.Equal(t, explicit, opts.Policy)

	// Neither yields nil, leaving the driver default in place.
	require.Nil(t, newConfig().cqlOptions().Policy)
}

func TestConfigDriverOptions(t *testing.T) {
	cfg := newConfig(
		WithDriverOption("timeout", 2*time.Second),
		WithDriverOption("proto_version", 4),
	)

	opts := cfg.cqlOptions()
	require.Equal(t, 2*time.Second, opts.Driver["timeout"])
	require.Equal(t, 4, opts.Driver["proto_version"])
}

func TestConfigHostsCopied(t *testing.T) {
	hosts := []string{"10.0.0.1", "10.0.0.2"}
	cfg := newConfig(WithHosts(hosts...))

	hosts[0] = "mutated"
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Hosts())

	got := cfg.Hosts()
	got[0] = "mutated"
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Hosts())
}

func TestConfigCredentialsAndKeyspace(t *testing.T) {
	cfg := newConfig(
		WithKeyspace("myapp"),
		WithCredentials("cassandra", "secret"),
		WithPort(9043),
		WithDefaultConsistency(types.LocalQuorum),
	)

	opts := cfg.cqlOptions()
	require.Equal(t, "myapp", opts.Keyspace)
	require.Equal(t, "cassandra", opts.Username)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 9043, opts.Port)
	require.NotNil(t, opts.Consistency)
	require.Equal(t, types.LocalQuorum, *opts.Consistency)
}
