// Package v2 implements the cql.Connector contract on top of gocql v2
// (github.com/apache/cassandra-gocql-driver/v2).
//
// The v2 driver carries contexts natively, so statements and batches run
// through ExecContext, ScanContext, and IterContext instead of the v1
// WithContext wrapper. Everything else mirrors the v1 adapter: the same
// portable option surface, the same policy translation, and the same
// connection-loss classification.
//
//	connector := v2.NewConnector()
//	ks, err := cequel.New(connector,
//	    cequel.WithHosts("127.0.0.1"),
//	    cequel.WithKeyspace("myapp"),
//	)
package v2
