package v1

import (
	"errors"
	"net"
	"time"

	"github.com/gocql/gocql"

	"github.com/Galeria-Kaufhof/cequel/adapter/cql"
	"github.com/Galeria-Kaufhof/cequel/policy"
	"github.com/Galeria-Kaufhof/cequel/types"
)

// buildCluster assembles a gocql.ClusterConfig from resolved options.
func buildCluster(opts cql.Options) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(opts.Hosts...)

	if opts.Port > 0 {
		cluster.Port = opts.Port
	}
	if opts.Keyspace != "" {
		cluster.Keyspace = opts.Keyspace
	}
	if opts.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: opts.Username,
			Password: opts.Password,
		}
	}
	if opts.SSL {
		// gocql reads key material from PEM files; an encrypted private key
		// must be decrypted before use, so Passphrase has no direct mapping
		// here and is carried for drivers that accept one.
		cluster.SslOpts = &gocql.SslOptions{
			CaPath:   opts.ServerCert,
			CertPath: opts.ClientCert,
			KeyPath:  opts.PrivateKey,
		}
	}
	if opts.ConnectionsPerRemoteNode != nil {
		cluster.NumConns = *opts.ConnectionsPerRemoteNode
	}
	if opts.Consistency != nil {
		cluster.Consistency = gocql.Consistency(*opts.Consistency)
	}
	if p := hostPolicy(opts.Policy); p != nil {
		cluster.PoolConfig.HostSelectionPolicy = p
	}

	applyDriverOptions(cluster, opts.Driver)

	return cluster
}

// hostPolicy translates a policy descriptor into a gocql host-selection
// policy. A nil descriptor yields nil, leaving the driver default in place.
func hostPolicy(desc policy.Descriptor) gocql.HostSelectionPolicy {
	switch d := desc.(type) {
	case nil:
		return nil
	case policy.TokenAware:
		fallback := hostPolicy(d.Fallback)
		if fallback == nil {
			fallback = gocql.RoundRobinHostPolicy()
		}

		return gocql.TokenAwareHostPolicy(fallback)
	case policy.DCAwareRoundRobin:
		return gocql.DCAwareRoundRobinPolicy(d.Datacenter)
	case policy.Custom:
		if p, ok := d.Policy.(gocql.HostSelectionPolicy); ok {
			return p
		}

		return nil
	default:
		return nil
	}
}

// applyDriverOptions applies passthrough options this driver recognizes.
// Unknown keys are ignored; they may target a different driver adapter.
func applyDriverOptions(cluster *gocql.ClusterConfig, driver map[string]any) {
	for key, value := range driver {
		switch key {
		case "timeout":
			if d, ok := value.(time.Duration); ok {
				cluster.Timeout = d
			}
		case "connect_timeout":
			if d, ok := value.(time.Duration); ok {
				cluster.ConnectTimeout = d
			}
		case "proto_version":
			if n, ok := value.(int); ok {
				cluster.ProtoVersion = n
			}
		case "page_size":
			if n, ok := value.(int); ok {
				cluster.PageSize = n
			}
		case "disable_initial_host_lookup":
			if b, ok := value.(bool); ok {
				cluster.DisableInitialHostLookup = b
			}
		}
	}
}

// emptyRows is returned for a successful query whose first page had no rows;
// the underlying iterator is already closed by then.
type emptyRows struct{}

func (emptyRows) Scan(_ ...any) bool                  { return false }
func (emptyRows) MapScan(_ map[string]any) bool       { return false }
func (emptyRows) SliceMap() ([]map[string]any, error) { return nil, nil }
func (emptyRows) PageState() []byte                   { return nil }
func (emptyRows) NumRows() int                        { return 0 }
func (emptyRows) Close() error                        { return nil }

// isNotFound reports whether err is gocql's "zero rows" scan result.
func isNotFound(err error) bool {
	return errors.Is(err, gocql.ErrNotFound)
}

// isConnectionLoss reports whether err indicates the session's connections
// are unusable, as opposed to the cluster rejecting the statement.
func isConnectionLoss(err error) bool {
	if errors.Is(err, gocql.ErrNoConnections) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

// translateErr wraps connection-loss conditions in *types.ConnectionError so
// the executor can distinguish them from query-semantic errors, which pass
// through unchanged.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if isConnectionLoss(err) {
		return &types.ConnectionError{Cause: err}
	}

	return err
}
