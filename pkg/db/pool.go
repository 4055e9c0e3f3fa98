package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Lead traffic is a handful of inserts per minute; these bound the pool when
// the config leaves it open
const (
	defaultMaxConns   = 10
	defaultMinConns   = 1
	healthCheckPeriod = 30 * time.Second
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 30 * time.Minute
)

// PoolConfig is the DATABASE_URL plus pool limits; zero limits take the defaults
type PoolConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// NewPool opens the lead store pool and pings it
func NewPool(ctx context.Context, poolCfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(poolCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	tlsConfig, err := configureTLS(poolCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		config.ConnConfig.TLSConfig = tlsConfig
	}
	applyLimits(config, poolCfg)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func applyLimits(config *pgxpool.Config, poolCfg PoolConfig) {
	config.MaxConns = poolCfg.MaxConns
	if config.MaxConns <= 0 {
		config.MaxConns = defaultMaxConns
	}
	config.MinConns = poolCfg.MinConns
	if config.MinConns <= 0 || config.MinConns > config.MaxConns {
		config.MinConns = defaultMinConns
	}
	config.HealthCheckPeriod = healthCheckPeriod
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime
}

// configureTLS returns a config pinned to the DATABASE_CA_CERT bundle, or nil to
// let pgx apply sslmode with the system roots
func configureTLS(databaseURL string) (*tls.Config, error) {
	certPath := os.Getenv("DATABASE_CA_CERT")
	if certPath == "" || !wantsTLS(databaseURL) {
		return nil, nil
	}

	caPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate from %s: %w", certPath, err)
	}

	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to append CA certificate to pool")
	}

	tlsConfig := &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
		// set when the certificate is issued for a different host name
		ServerName: os.Getenv("DATABASE_TLS_SERVER_NAME"),
	}
	return tlsConfig, nil
}

// wantsTLS reports whether the URL's sslmode requires an encrypted connection
func wantsTLS(databaseURL string) bool {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return false
	}
	switch u.Query().Get("sslmode") {
	case "require", "verify-ca", "verify-full":
		return true
	}
	return false
}

