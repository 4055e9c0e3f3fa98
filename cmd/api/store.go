package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/internal/database/postgres"
	"github.com/edushetra/edushetra-api/internal/database/supabase"
	"github.com/edushetra/edushetra-api/internal/repository"
	"github.com/edushetra/edushetra-api/pkg/db"
	"github.com/edushetra/edushetra-api/pkg/httpclient"
	"github.com/edushetra/edushetra-api/pkg/logger"
)

// openStore builds the lead store selected by STORE_DRIVER. The returned close
// func is always non-nil on success.
func openStore(ctx context.Context, cfg *config.Config, httpClient httpclient.Client) (*repository.LeadRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := db.NewPool(ctx, db.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database pool: %w", err)
		}
		client := postgres.NewClient(pool)
		logger.Info("Lead store selected", zap.String("driver", cfg.Store.Driver), zap.Int32("max_conns", cfg.Database.MaxConns))
		return repository.NewLeadRepository(client, config.StoreDriverPostgres), client.Close, nil

	case config.StoreDriverSupabase:
		client := supabase.NewClient(supabase.Config{
			URL:        cfg.Supabase.URL,
			ServiceKey: cfg.Supabase.ServiceKey,
			Schema:     cfg.Supabase.Schema,
		}, httpClient)
		logger.Info("Lead store selected", zap.String("driver", cfg.Store.Driver), zap.String("schema", cfg.Supabase.Schema))
		return repository.NewLeadRepository(client, config.StoreDriverSupabase), func() {}, nil

	case config.StoreDriverLog:
		logger.Warn("STORE_DRIVER=log: submissions are logged and discarded")
		return repository.NewLeadRepository(repository.NewLogStore(), config.StoreDriverLog), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
