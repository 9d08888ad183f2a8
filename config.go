package cequel

import (
	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/internal/logging"
	"github.com/Galeria-Kaufhof/cequel/internal/metrics"
	"github.com/Galeria-Kaufhof/cequel/policy"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// TLSConfig holds the certificate material used when TLS is enabled.
//
// All fields are file paths to PEM-encoded material. The fields are only
// consulted when TLS is enabled via WithTLS; outside that, they are inert.
type TLSConfig struct {
	// ServerCert is the CA certificate used to verify the server.
	ServerCert string

	// ClientCert and PrivateKey enable client certificate authentication.
	ClientCert string
	PrivateKey string

	// Passphrase decrypts the private key, for drivers that accept one.
	Passphrase string
}

// Config holds the resolved connection configuration for a keyspace handle.
//
// A Config is immutable once built; all fields are set through functional
// options at construction time and read through accessors afterwards.
// Optional numeric and string fields that must distinguish "explicitly zero"
// from "unset" are stored as pointers.
type Config struct {
	hosts    []string
	port     int
	keyspace string

	username string
	password string

	tls *TLSConfig

	datacenter         *string
	connsPerRemoteNode *int

	policy      policy.Descriptor
	consistency *types.Consistency

	logger    types.Logger
	metrics   types.MetricsCollector
	driverOpt map[string]any
}

// Option is a functional option for configuring a keyspace handle.
type Option func(*Config)

// newConfig creates a Config with defaults applied, then applies options.
func newConfig(opts ...Option) *Config {
	cfg := &Config{
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithHosts sets the cluster contact points.
//
// At least one host is required before the first operation; connecting with
// none configured fails with types.ErrNoHosts.
//
// Parameters:
//   - hosts: Cluster contact points, IP or hostname
//
// Returns:
//   - Option: Configuration option
func WithHosts(hosts ...string) Option {
	return func(c *Config) {
		c.hosts = append([]string(nil), hosts...)
	}
}

// WithPort sets the native-protocol port. Zero leaves the driver default.
func WithPort(port int) Option {
	return func(c *Config) {
		c.port = port
	}
}

// WithKeyspace sets the keyspace all operations target.
func WithKeyspace(keyspace string) Option {
	return func(c *Config) {
		c.keyspace = keyspace
	}
}

// WithCredentials enables password authentication.
//
// Parameters:
//   - username: Authentication username
//   - password: Authentication password
//
// Returns:
//   - Option: Configuration option
func WithCredentials(username, password string) Option {
	return func(c *Config) {
		c.username = username
		c.password = password
	}
}

// WithTLS enables TLS using the given certificate material.
//
// Parameters:
//   - tls: Certificate file paths
//
// Returns:
//   - Option: Configuration option
func WithTLS(tls TLSConfig) Option {
	return func(c *Config) {
		c.tls = &tls
	}
}

// WithDatacenter sets the local datacenter.
//
// When set and no explicit load-balancing policy is configured, requests are
// routed token-aware with a datacenter-aware round-robin fallback. Leaving it
// unset keeps the driver's default policy.
//
// Parameters:
//   - datacenter: Local datacenter name
//
// Returns:
//   - Option: Configuration option
func WithDatacenter(datacenter string) Option {
	return func(c *Config) {
		c.datacenter = &datacenter
	}
}

// WithConnectionsPerRemoteNode sets the per-node connection pool size.
//
// An explicit zero is passed to the driver as zero; only leaving the option
// out entirely keeps the driver default.
//
// Parameters:
//   - n: Connections to open per remote node
//
// Returns:
//   - Option: Configuration option
func WithConnectionsPerRemoteNode(n int) Option {
	return func(c *Config) {
		c.connsPerRemoteNode = &n
	}
}

// WithLoadBalancingPolicy sets an explicit load-balancing policy descriptor,
// overriding the datacenter-derived composition.
//
// Parameters:
//   - desc: Policy descriptor, typically policy.TokenAware or policy.Custom
//
// Returns:
//   - Option: Configuration option
func WithLoadBalancingPolicy(desc policy.Descriptor) Option {
	return func(c *Config) {
		c.policy = desc
	}
}

// WithDefaultConsistency sets the session-wide default consistency level
// applied when neither a statement nor a batch carries its own.
func WithDefaultConsistency(cons types.Consistency) Option {
	return func(c *Config) {
		c.consistency = &cons
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger types.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *Config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// WithDriverOption sets a single passthrough option the core does not model.
//
// Connectors interpret the keys they recognize (for gocql: "timeout",
// "connect_timeout", "proto_version", "page_size",
// "disable_initial_host_lookup") and ignore the rest.
//
// Parameters:
//   - key: Driver option name
//   - value: Driver option value
//
// Returns:
//   - Option: Configuration option
func WithDriverOption(key string, value any) Option {
	return func(c *Config) {
		if c.driverOpt == nil {
			c.driverOpt = make(map[string]any)
		}
		c.driverOpt[key] = value
	}
}

// Hosts returns a copy of the configured contact points.
func (c *Config) Hosts() []string {
	return append([]string(nil), c.hosts...)
}

// Port returns the configured port, zero when unset.
func (c *Config) Port() int {
	return c.port
}

// Keyspace returns the configured keyspace name.
func (c *Config) Keyspace() string {
	return c.keyspace
}

// Username returns the configured authentication username.
func (c *Config) Username() string {
	return c.username
}

// TLS returns the TLS configuration and whether TLS is enabled.
func (c *Config) TLS() (TLSConfig, bool) {
	if c.tls == nil {
		return TLSConfig{}, false
	}

	return *c.tls, true
}

// Datacenter returns the local datacenter and whether one was set.
func (c *Config) Datacenter() (string, bool) {
	if c.datacenter == nil {
		return "", false
	}

	return *c.datacenter, true
}

// ConnectionsPerRemoteNode returns the pool size and whether one was set.
func (c *Config) ConnectionsPerRemoteNode() (int, bool) {
	if c.connsPerRemoteNode == nil {
		return 0, false
	}

	return *c.connsPerRemoteNode, true
}

// DefaultConsistency returns the session default consistency and whether one
// was set.
func (c *Config) DefaultConsistency() (types.Consistency, bool) {
	if c.consistency == nil {
		return 0, false
	}

	return *c.consistency, true
}

// cqlOptions resolves the configuration into the connect-time options handed
// to the connector, composing the load-balancing policy along the way.
func (c *Config) cqlOptions() cql.Options {
	opts := cql.Options{
		Hosts:                    c.Hosts(),
		Port:                     c.port,
		Keyspace:                 c.keyspace,
		Username:                 c.username,
		Password:                 c.password,
		Datacenter:               c.datacenter,
		ConnectionsPerRemoteNode: c.connsPerRemoteNode,
		Consistency:              c.consistency,
		Driver:                   c.driverOpt,
	}

	if c.tls != nil {
		opts.SSL = true
		opts.ServerCert = c.tls.ServerCert
		opts.ClientCert = c.tls.ClientCert
		opts.PrivateKey = c.tls.PrivateKey
		opts.Passphrase = c.tls.Passphrase
	}

	dc := ""
	if c.datacenter != nil {
		dc = *c.datacenter
	}
	opts.Policy = policy.Build(dc, c.policy)

	return opts
}
