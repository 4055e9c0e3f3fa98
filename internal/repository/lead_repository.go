package repository

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/tracing"
)

// LeadRepository guards a driver with the table whitelist and traces every write.
// It makes exactly one attempt per call.
type LeadRepository struct {
	store  LeadStore
	driver string
}

// NewLeadRepository creates a lead repository on top of a storage driver
func NewLeadRepository(store LeadStore, driver string) *LeadRepository {
	return &LeadRepository{store: store, driver: driver}
}

// Insert writes row into table. Unknown tables fail before the driver is called.
func (r *LeadRepository) Insert(ctx context.Context, table Table, row Row) (string, error) {
	if _, err := ParseTable(string(table)); err != nil {
		return "", err
	}
	if len(row) == 0 {
		return "", fmt.Errorf("insert into %s: empty row", table)
	}

	ctx, span := tracing.StartSpan(ctx, "store.insert",
		attribute.String("store.driver", r.driver),
		attribute.String("store.table", string(table)),
		attribute.Int("store.columns", len(row)),
	)

	id, err := r.store.Insert(ctx, table, row)
	tracing.EndSpan(span, err)
	if err != nil {
		logger.Error("Lead insert failed",
			zap.String("driver", r.driver),
			zap.String("table", string(table)),
			zap.Error(err))
		return "", err
	}

	logger.Info("Lead stored",
		zap.String("driver", r.driver),
		zap.String("table", string(table)),
		zap.String("record_id", id))
	return id, nil
}

// Ping checks the underlying store
func (r *LeadRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// ListRecent reads rows back when the driver supports it
func (r *LeadRepository) ListRecent(ctx context.Context, table Table, limit int) (*Listing, error) {
	if _, err := ParseTable(string(table)); err != nil {
		return nil, err
	}
	lister, ok := r.store.(LeadLister)
	if !ok {
		return nil, fmt.Errorf("store driver %q cannot list rows", r.driver)
	}
	return lister.ListRecent(ctx, table, limit)
}
