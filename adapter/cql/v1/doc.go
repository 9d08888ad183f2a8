// Package v1 implements the cql.Connector contract on top of gocql v1
// (github.com/gocql/gocql).
//
// The connector is the single choke point where all connect-time options
// converge into a gocql.ClusterConfig: contact points, credentials, TLS
// material, per-node pool size, the composed load-balancing policy, and the
// opaque driver passthrough map. Driver-specific tuning beyond the portable
// surface goes through WithClusterConfigure.
//
//	connector := v1.NewConnector()
//	ks, err := cequel.New(connector,
//	    cequel.WithHosts("127.0.0.1"),
//	    cequel.WithKeyspace("myapp"),
//	    cequel.WithDatacenter("dc1"),
//	)
package v1
