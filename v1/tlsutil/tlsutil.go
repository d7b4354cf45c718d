// Package tlsutil builds client-side *tls.Config values from PEM files, for
// the Redis and Kafka clients.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// Options describes a client TLS setup. Empty paths are skipped.
type Options struct {
	CACertPath         string
	ClientCertPath     string
	ClientKeyPath      string
	ServerName         string
	InsecureSkipVerify bool
}

// ClientConfig loads the CA pool and client key pair named by o. A client
// certificate without its key, or the reverse, is an error.
func ClientConfig(o Options) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         o.ServerName,
		InsecureSkipVerify: o.InsecureSkipVerify,
	}

	if o.CACertPath != "" {
		pem, err := os.ReadFile(o.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("reading CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", o.CACertPath)
		}
		cfg.RootCAs = pool
	}

	switch {
	case o.ClientCertPath != "" && o.ClientKeyPath != "":
		cert, err := tls.LoadX509KeyPair(o.ClientCertPath, o.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("loading client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	case o.ClientCertPath != "" || o.ClientKeyPath != "":
		return nil, errors.New("client cert and key must be set together")
	}

	return cfg, nil
}
